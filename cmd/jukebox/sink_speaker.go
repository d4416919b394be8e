//go:build (linux && cgo) || windows || darwin

package jukebox

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// AudioAvailable indicates whether audio playback is supported in this build.
const AudioAvailable = true

// SpeakerSink plays local mp3 and wav files on the default audio device.
type SpeakerSink struct {
	mu sync.Mutex

	initialized bool
	sampleRate  beep.SampleRate
	pollEvery   time.Duration

	src      Source
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	level    float64
	queued   bool // ctrl is on the speaker mixer
	stopPoll chan struct{}

	events chan Event
	closed bool
}

// NewSpeakerSink creates a sink that reports progress every pollEvery.
func NewSpeakerSink(pollEvery time.Duration) *SpeakerSink {
	if pollEvery <= 0 {
		pollEvery = 250 * time.Millisecond
	}
	return &SpeakerSink{
		sampleRate: beep.SampleRate(44100),
		pollEvery:  pollEvery,
		level:      1,
		events:     make(chan Event, 64),
	}
}

func (s *SpeakerSink) Events() <-chan Event {
	return s.events
}

// Load decodes the file behind src and leaves it paused at the start.
func (s *SpeakerSink) Load(ctx context.Context, src Source) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.unloadLocked()

	path := strings.TrimPrefix(src.Locator, "file://")
	streamer, format, err := decodeFile(path)
	if err != nil {
		return err
	}

	s.src = src
	s.streamer = streamer
	s.format = format
	s.ctrl = &beep.Ctrl{Streamer: beep.Resample(4, format.SampleRate, s.sampleRate, streamer), Paused: true}
	s.volume = &effects.Volume{Streamer: s.ctrl, Base: 2}
	applyLevel(s.volume, s.level)

	s.emitLocked(Event{Source: src.ID, Kind: EventDurationKnown, Duration: format.SampleRate.D(streamer.Len())})

	s.stopPoll = make(chan struct{})
	go s.poll(src.ID, s.stopPoll)
	return nil
}

// Play starts the loaded source, putting it back on the speaker if it had
// played to the end.
func (s *SpeakerSink) Play(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streamer == nil {
		return ErrNothingLoaded
	}
	if err := s.initSpeakerLocked(); err != nil {
		return err
	}

	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()

	if !s.queued {
		id := s.src.ID
		s.queued = true
		speaker.Play(beep.Seq(s.volume, beep.Callback(func() {
			// Run in a separate goroutine; the callback holds the speaker lock
			go s.finished(id)
		})))
	}
	return nil
}

func (s *SpeakerSink) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctrl != nil {
		speaker.Lock()
		s.ctrl.Paused = true
		speaker.Unlock()
	}
	return nil
}

func (s *SpeakerSink) Seek(pos time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.streamer == nil {
		return nil
	}

	samples := s.format.SampleRate.N(pos)
	samples = max(0, min(samples, s.streamer.Len()-1))

	speaker.Lock()
	defer speaker.Unlock()
	return s.streamer.Seek(samples)
}

func (s *SpeakerSink) SetVolume(v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.level = v
	if s.volume != nil {
		speaker.Lock()
		applyLevel(s.volume, v)
		speaker.Unlock()
	}
	return nil
}

func (s *SpeakerSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.unloadLocked()
	s.closed = true
	close(s.events)
	return nil
}

func (s *SpeakerSink) initSpeakerLocked() error {
	if s.initialized {
		return nil
	}
	if err := speaker.Init(s.sampleRate, s.sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	s.initialized = true
	return nil
}

// unloadLocked drops the current source and its progress poller.
func (s *SpeakerSink) unloadLocked() {
	if s.stopPoll != nil {
		close(s.stopPoll)
		s.stopPoll = nil
	}
	if s.initialized {
		speaker.Clear()
	}
	if s.streamer != nil {
		s.streamer.Close()
		s.streamer = nil
	}
	s.ctrl = nil
	s.volume = nil
	s.queued = false
	s.src = Source{}
}

func (s *SpeakerSink) finished(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.src.ID != id {
		return
	}
	s.queued = false
	s.emitLocked(Event{Source: id, Kind: EventEnded})
}

func (s *SpeakerSink) poll(id uint64, stop <-chan struct{}) {
	ticker := time.NewTicker(s.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			if s.src.ID != id || s.streamer == nil {
				s.mu.Unlock()
				return
			}
			speaker.Lock()
			pos := s.streamer.Position()
			paused := s.ctrl.Paused
			speaker.Unlock()
			if !paused {
				s.emitLocked(Event{Source: id, Kind: EventTimeUpdate, Position: s.format.SampleRate.D(pos)})
			}
			s.mu.Unlock()
		case <-stop:
			return
		}
	}
}

// emitLocked never blocks. Progress updates give way first when the reader
// falls behind, so state changes still get through.
func (s *SpeakerSink) emitLocked(ev Event) {
	if s.closed {
		return
	}
	if ev.Kind == EventTimeUpdate && len(s.events) > cap(s.events)/2 {
		return
	}
	select {
	case s.events <- ev:
	default:
	}
}

func decodeFile(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, err
	}
	return streamer, format, nil
}

// applyLevel maps a linear [0,1] level onto the exponential volume effect.
func applyLevel(v *effects.Volume, level float64) {
	v.Silent = level <= 0
	if level > 0 {
		v.Volume = math.Log2(level)
	}
}
