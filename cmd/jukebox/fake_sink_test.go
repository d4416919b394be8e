package jukebox

import (
	"context"
	"sync"
	"time"
)

// fakeSink records what the engine asks of the output.
type fakeSink struct {
	mu       sync.Mutex
	calls    []string
	loads    []Source
	volume   float64
	failLoad map[string]error
	failPlay error

	// blockLoad holds Load for a locator until the channel is closed;
	// loading receives the locator when such a Load begins.
	blockLoad map[string]chan struct{}
	loading   chan string

	events    chan Event
	closeOnce sync.Once
}

func newFakeSink() *fakeSink {
	return &fakeSink{
		failLoad:  map[string]error{},
		blockLoad: map[string]chan struct{}{},
		loading:   make(chan string, 8),
		events:    make(chan Event, 16),
	}
}

func (f *fakeSink) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeSink) Load(ctx context.Context, src Source) error {
	f.mu.Lock()
	block := f.blockLoad[src.Locator]
	err := f.failLoad[src.Locator]
	f.mu.Unlock()

	if block != nil {
		f.loading <- src.Locator
		<-block
	}
	f.record("load:" + src.Locator)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.loads = append(f.loads, src)
	f.mu.Unlock()
	return nil
}

func (f *fakeSink) Play(ctx context.Context) error {
	f.record("play")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failPlay
}

func (f *fakeSink) Pause() error {
	f.record("pause")
	return nil
}

func (f *fakeSink) Seek(pos time.Duration) error {
	f.record("seek:" + pos.String())
	return nil
}

func (f *fakeSink) SetVolume(v float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volume = v
	return nil
}

func (f *fakeSink) Events() <-chan Event {
	return f.events
}

func (f *fakeSink) Close() error {
	f.closeOnce.Do(func() { close(f.events) })
	return nil
}

func (f *fakeSink) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeSink) resetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *fakeSink) lastSource() Source {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.loads) == 0 {
		return Source{}
	}
	return f.loads[len(f.loads)-1]
}

func (f *fakeSink) Volume() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.volume
}
