package play

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gigurra/glass/cmd/jukebox"
)

// fakePlayer records the intents the screen issues.
type fakePlayer struct {
	mu      sync.Mutex
	calls   []string
	shuffle bool
	repeat  bool
	err     error
}

func (f *fakePlayer) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakePlayer) Toggle(context.Context) error   { return f.record("toggle") }
func (f *fakePlayer) Next(context.Context) error     { return f.record("next") }
func (f *fakePlayer) Previous(context.Context) error { return f.record("previous") }
func (f *fakePlayer) Stop() error                    { return f.record("stop") }

func (f *fakePlayer) Seek(pos time.Duration) error {
	return f.record("seek:" + pos.String())
}

func (f *fakePlayer) SetVolume(v float64) error {
	return f.record(fmt.Sprintf("volume:%.2f", v))
}

func (f *fakePlayer) ToggleShuffle() bool {
	f.shuffle = !f.shuffle
	_ = f.record("shuffle")
	return f.shuffle
}

func (f *fakePlayer) ToggleRepeat() bool {
	f.repeat = !f.repeat
	_ = f.record("repeat")
	return f.repeat
}

func (f *fakePlayer) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// silentSink accepts everything and never reports progress.
type silentSink struct {
	events chan jukebox.Event
	once   sync.Once
}

func newSilentSink() *silentSink {
	return &silentSink{events: make(chan jukebox.Event)}
}

func (s *silentSink) Load(context.Context, jukebox.Source) error { return nil }
func (s *silentSink) Play(context.Context) error                 { return nil }
func (s *silentSink) Pause() error                               { return nil }
func (s *silentSink) Seek(time.Duration) error                   { return nil }
func (s *silentSink) SetVolume(float64) error                    { return nil }
func (s *silentSink) Events() <-chan jukebox.Event               { return s.events }

func (s *silentSink) Close() error {
	s.once.Do(func() { close(s.events) })
	return nil
}
