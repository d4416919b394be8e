//go:build !((linux && cgo) || windows || darwin)

package jukebox

import (
	"context"
	"sync"
	"time"
)

// AudioAvailable indicates whether audio playback is supported in this build.
// Audio requires CGO for native sound libraries.
const AudioAvailable = false

// SpeakerSink stands in for the audio device in builds without cgo. Every
// load fails, so the engine settles on paused with an error to show.
type SpeakerSink struct {
	events chan Event
	once   sync.Once
}

func NewSpeakerSink(time.Duration) *SpeakerSink {
	return &SpeakerSink{events: make(chan Event)}
}

func (s *SpeakerSink) Events() <-chan Event { return s.events }

func (s *SpeakerSink) Load(context.Context, Source) error { return ErrAudioUnavailable }

func (s *SpeakerSink) Play(context.Context) error { return ErrAudioUnavailable }

func (s *SpeakerSink) Pause() error { return nil }

func (s *SpeakerSink) Seek(time.Duration) error { return nil }

func (s *SpeakerSink) SetVolume(float64) error { return nil }

func (s *SpeakerSink) Close() error {
	s.once.Do(func() { close(s.events) })
	return nil
}
