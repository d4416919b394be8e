// Package jukebox is the playback engine: it decides what plays next, keeps
// the history of what played, and drives a single audio output.
package jukebox

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gigurra/glass/cmd/library"
)

var ErrClosed = errors.New("jukebox is closed")

// DefaultRestartThreshold is how far into a track Previous restarts it
// instead of going back.
const DefaultRestartThreshold = 3 * time.Second

// Catalog is the read side of the track catalog the engine navigates.
type Catalog interface {
	Tracks() []library.Track
	Get(id string) (library.Track, bool)
}

type Options struct {
	Logger           *slog.Logger
	HistorySize      int
	RestartThreshold time.Duration
	Volume           float64
	// Rand drives shuffle. Nil uses the global source.
	Rand *rand.Rand
	// OnPlayed is called once per track start for local tracks, outside any
	// engine lock.
	OnPlayed func(id string)
}

// Jukebox plays tracks from a catalog through a Sink.
type Jukebox struct {
	mu sync.Mutex

	catalog      Catalog
	session      *session
	log          *slog.Logger
	onPlayed     func(id string)
	restartAfter time.Duration

	// Navigation
	queue   []string // explicit queue snapshot, nil means whole catalog
	history *History
	bag     *ShuffleBag
	shuffle bool
	repeat  bool

	// Playback state
	current    *library.Track
	phase      Phase
	volume     float64
	position   time.Duration
	duration   time.Duration
	lastErr    string
	playbackID uint64 // Incremented on every source change, used to ignore stale events and starts
	loadedID   uint64 // playbackID whose source made it onto the sink
	startingID uint64 // playbackID whose start is still in flight

	subs   subscribers
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

// New creates an engine and starts consuming sink events.
func New(catalog Catalog, sink Sink, opts Options) *Jukebox {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.RestartThreshold <= 0 {
		opts.RestartThreshold = DefaultRestartThreshold
	}
	ctx, cancel := context.WithCancel(context.Background())
	j := &Jukebox{
		catalog:      catalog,
		session:      newSession(sink),
		log:          opts.Logger,
		onPlayed:     opts.OnPlayed,
		restartAfter: opts.RestartThreshold,
		history:      NewHistory(opts.HistorySize),
		bag:          NewShuffleBag(opts.Rand),
		phase:        PhaseIdle,
		volume:       clampVolume(opts.Volume),
		ctx:          ctx,
		cancel:       cancel,
		done:         make(chan struct{}),
	}
	if err := j.session.setVolume(j.volume); err != nil {
		j.log.Warn("failed to set initial volume", "error", err)
	}
	go j.pumpEvents(sink.Events())
	return j
}

// Subscribe returns a subscription primed with the current snapshot.
func (j *Jukebox) Subscribe() *Subscription {
	return j.subs.add(j.Snapshot)
}

// Snapshot returns the current state. The current track is re-read from the
// catalog so edits are visible immediately.
func (j *Jukebox) Snapshot() Snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.snapshotLocked()
}

func (j *Jukebox) snapshotLocked() Snapshot {
	snap := Snapshot{
		Status:   j.phase.Status(),
		Phase:    j.phase,
		Volume:   j.volume,
		Position: j.position,
		Duration: j.duration,
		Shuffle:  j.shuffle,
		Repeat:   j.repeat,
		History:  j.history.IDs(),
		Queue:    append([]string(nil), j.queue...),
		Err:      j.lastErr,
	}
	if j.current != nil {
		t := *j.current
		if fresh, ok := j.catalog.Get(t.ID); ok {
			t = fresh
		}
		snap.Track = &t
	}
	return snap
}

func (j *Jukebox) publish() {
	j.subs.publish(j.Snapshot)
}

// Persisted exports the state worth keeping across restarts.
func (j *Jukebox) Persisted() Persisted {
	j.mu.Lock()
	defer j.mu.Unlock()
	p := Persisted{
		Volume:  j.volume,
		Shuffle: j.shuffle,
		Repeat:  j.repeat,
		Queue:   append([]string(nil), j.queue...),
		History: j.history.IDs(),
	}
	if j.current != nil {
		p.Current = j.current.ID
	}
	return p
}

// Restore applies previously persisted state. The saved current track is
// selected and paused; nothing is loaded until the first Play.
func (j *Jukebox) Restore(p Persisted) error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return ErrClosed
	}
	j.volume = clampVolume(p.Volume)
	j.shuffle = p.Shuffle
	j.repeat = p.Repeat
	j.queue = append([]string(nil), p.Queue...)
	j.history.Reset(p.History)
	j.bag.Clear()
	j.playbackID++
	j.session.request(j.playbackID)
	j.current = nil
	j.phase = PhaseIdle
	j.position, j.duration = 0, 0
	j.lastErr = ""
	if t, ok := j.catalog.Get(p.Current); ok && p.Current != "" {
		j.current = &t
		j.phase = PhasePaused
		j.duration = t.Duration
	}
	volume := j.volume
	j.mu.Unlock()

	if err := j.session.setVolume(volume); err != nil {
		j.log.Warn("failed to restore volume", "error", err)
	}
	j.publish()
	return nil
}

// Close stops event processing, releases the output and closes all
// subscriptions.
func (j *Jukebox) Close() error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return nil
	}
	j.closed = true
	j.playbackID++
	j.session.request(j.playbackID)
	j.mu.Unlock()

	j.cancel()
	err := j.session.close()
	<-j.done
	j.subs.closeAll()
	return err
}

func (j *Jukebox) pumpEvents(events <-chan Event) {
	defer close(j.done)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			j.handleEvent(ev)
		case <-j.ctx.Done():
			return
		}
	}
}

func (j *Jukebox) handleEvent(ev Event) {
	j.mu.Lock()
	if ev.Source != j.playbackID || j.current == nil {
		j.mu.Unlock()
		return
	}

	switch ev.Kind {
	case EventTimeUpdate:
		j.position = j.clampPosition(ev.Position)
	case EventDurationKnown:
		j.duration = max(0, ev.Duration)
		j.position = j.clampPosition(j.position)
	case EventBuffering:
		if j.phase == PhasePlaying {
			j.phase = PhaseBuffering
		}
	case EventResumed:
		if j.phase == PhaseBuffering || j.phase == PhaseLoading {
			j.phase = PhasePlaying
		}
	case EventError:
		j.phase = PhasePaused
		if ev.Err != nil {
			j.lastErr = ev.Err.Error()
		}
		j.log.Warn("playback error", "track", j.current.ID, "error", ev.Err)
	case EventEnded:
		id := ev.Source
		j.mu.Unlock()
		j.advance(id)
		return
	}
	j.mu.Unlock()
	j.publish()
}

// advance moves on after source id played to the end.
func (j *Jukebox) advance(id uint64) {
	moved, err := j.next(j.ctx, id)
	if err != nil || moved {
		return
	}

	j.mu.Lock()
	if id != j.playbackID {
		j.mu.Unlock()
		return
	}
	j.current = nil
	j.phase = PhaseIdle
	j.position = 0
	j.mu.Unlock()
	j.publish()
}

func (j *Jukebox) clampPosition(pos time.Duration) time.Duration {
	pos = max(0, pos)
	if j.duration > 0 {
		pos = min(pos, j.duration)
	}
	return pos
}

func clampVolume(v float64) float64 {
	return min(1, max(0, v))
}
