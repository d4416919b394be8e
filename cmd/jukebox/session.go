package jukebox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var errSuperseded = errors.New("superseded by a newer source")

// session owns the sink. Only one source holds the output at a time; a
// start whose source is no longer the latest requested one is dropped
// before it touches the sink.
type session struct {
	mu     sync.Mutex
	sink   Sink
	loaded uint64 // source currently on the sink, 0 if none
	latest atomic.Uint64
}

func newSession(sink Sink) *session {
	return &session{sink: sink}
}

// request marks id as the source the output should end up on.
func (s *session) request(id uint64) {
	s.latest.Store(id)
}

func (s *session) superseded(id uint64) bool {
	return s.latest.Load() != id
}

// start hands the output to src: pause what is there, load, then play. It
// reports whether src got loaded, which can be true even when playing failed.
func (s *session) start(ctx context.Context, src Source) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.superseded(src.ID) {
		return false, errSuperseded
	}
	if s.loaded != 0 {
		_ = s.sink.Pause()
	}
	s.loaded = 0
	if err := s.sink.Load(ctx, src); err != nil {
		return false, fmt.Errorf("load %s: %w", src.Locator, err)
	}
	s.loaded = src.ID
	if s.superseded(src.ID) {
		return true, errSuperseded
	}
	if err := s.sink.Play(ctx); err != nil {
		return true, fmt.Errorf("play %s: %w", src.Locator, err)
	}
	return true, nil
}

func (s *session) resume(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded != id {
		return ErrNothingLoaded
	}
	return s.sink.Play(ctx)
}

func (s *session) pause(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded != id {
		return nil
	}
	return s.sink.Pause()
}

// pauseAny silences the output whatever is loaded.
func (s *session) pauseAny() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded == 0 {
		return nil
	}
	return s.sink.Pause()
}

func (s *session) seek(id uint64, pos time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded != id {
		return nil
	}
	return s.sink.Seek(pos)
}

func (s *session) setVolume(v float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sink.SetVolume(v)
}

func (s *session) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = 0
	return s.sink.Close()
}
