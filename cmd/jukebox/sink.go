package jukebox

import (
	"context"
	"errors"
	"time"
)

var (
	ErrAudioUnavailable  = errors.New("audio output not available in this build")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrNothingLoaded     = errors.New("no source loaded")
)

// Source is one assignment of a locator to the output. Every load gets a
// fresh ID so events from an earlier load can be told apart.
type Source struct {
	ID      uint64
	Locator string
}

type EventKind int

const (
	EventTimeUpdate EventKind = iota
	EventDurationKnown
	EventBuffering
	EventResumed
	EventEnded
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventTimeUpdate:
		return "time-update"
	case EventDurationKnown:
		return "duration-known"
	case EventBuffering:
		return "buffering"
	case EventResumed:
		return "resumed"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	}
	return "unknown"
}

// Event is a notification from the output about the source with ID Source.
type Event struct {
	Source   uint64
	Kind     EventKind
	Position time.Duration
	Duration time.Duration
	Err      error
}

// Sink is the single audio output the engine drives. Implementations need
// not be safe for concurrent use; the engine serializes calls.
type Sink interface {
	// Load replaces whatever is loaded with src, paused at the start.
	Load(ctx context.Context, src Source) error
	// Play starts or resumes the loaded source.
	Play(ctx context.Context) error
	Pause() error
	Seek(pos time.Duration) error
	// SetVolume takes a level in [0,1].
	SetVolume(v float64) error
	Events() <-chan Event
	Close() error
}

var _ Sink = (*SpeakerSink)(nil)
