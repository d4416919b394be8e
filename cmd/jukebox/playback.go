package jukebox

import (
	"context"
	"errors"
	"time"

	"github.com/gigurra/glass/cmd/library"
)

// transition is a source change decided under the lock and carried out
// after it is released.
type transition struct {
	src    Source
	load   bool   // false when the track has nothing playable
	played string // track id to report through OnPlayed
}

// Play starts track, or toggles pause when it is already the current track.
func (j *Jukebox) Play(ctx context.Context, track library.Track) error {
	return j.play(ctx, track, nil, false)
}

// PlayFrom is Play with a new explicit queue. An empty queue means the whole
// catalog. The shuffle bag starts over.
func (j *Jukebox) PlayFrom(ctx context.Context, track library.Track, queue []library.Track) error {
	return j.play(ctx, track, trackIDs(queue), true)
}

func (j *Jukebox) play(ctx context.Context, track library.Track, queue []string, replaceQueue bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return ErrClosed
	}
	if replaceQueue {
		j.queue = queue
		j.bag.Clear()
	}
	if j.current != nil && j.current.ID == track.ID {
		j.mu.Unlock()
		return j.Toggle(ctx)
	}
	tr := j.switchLocked(track, true)
	j.mu.Unlock()

	j.run(ctx, tr)
	return nil
}

// Toggle pauses a playing track and resumes a paused one. A selected track
// that was never loaded (restored at startup, or failed to start) is loaded
// from the beginning.
func (j *Jukebox) Toggle(ctx context.Context) error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return ErrClosed
	}
	if j.current == nil {
		j.mu.Unlock()
		return nil
	}
	id := j.playbackID

	if j.phase != PhasePaused && j.phase != PhaseIdle {
		j.phase = PhasePaused
		// a pending start re-pauses itself when it settles
		starting := j.startingLocked()
		j.mu.Unlock()
		if !starting {
			if err := j.session.pause(id); err != nil {
				j.log.Warn("failed to pause", "error", err)
			}
		}
		j.publish()
		return nil
	}

	if j.startingLocked() {
		// run settles on playing once the load completes
		j.phase = PhaseLoading
		j.mu.Unlock()
		j.publish()
		return nil
	}

	if !j.loadedLocked() {
		tr := j.switchLocked(*j.current, false)
		j.mu.Unlock()
		j.run(ctx, tr)
		return nil
	}

	j.phase = PhasePlaying
	j.lastErr = ""
	j.mu.Unlock()
	j.publish()
	if err := j.session.resume(ctx, id); err != nil {
		j.failed(id, err)
	}
	return nil
}

// Next moves forward: the same track again in repeat mode, a shuffle draw in
// shuffle mode, the following queue entry otherwise. Without a current track
// or with nothing to play it does nothing.
func (j *Jukebox) Next(ctx context.Context) error {
	_, err := j.next(ctx, 0)
	return err
}

// next advances from source from, or from whatever is current when from is
// 0. It does nothing once from has been replaced.
func (j *Jukebox) next(ctx context.Context, from uint64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return false, ErrClosed
	}
	if j.current == nil || (from != 0 && from != j.playbackID) {
		j.mu.Unlock()
		return false, nil
	}
	queue := resolveQueue(j.catalog.Tracks(), j.queue)
	if len(queue) == 0 {
		j.mu.Unlock()
		return false, nil
	}

	if j.repeat {
		j.rewindLocked(ctx, true)
		return true, nil
	}

	tr := j.switchLocked(j.pickNextLocked(queue), true)
	j.mu.Unlock()
	j.run(ctx, tr)
	return true, nil
}

// Previous restarts the current track once it has played past the restart
// threshold. Before that it goes back through the history, or to the
// preceding queue entry when the history is empty.
func (j *Jukebox) Previous(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return ErrClosed
	}
	if j.current == nil {
		j.mu.Unlock()
		return nil
	}

	if j.position > j.restartAfter {
		j.rewindLocked(ctx, false)
		return nil
	}

	if t, ok := j.popHistoryLocked(); ok {
		tr := j.switchLocked(t, false)
		j.mu.Unlock()
		j.run(ctx, tr)
		return nil
	}

	queue := resolveQueue(j.catalog.Tracks(), j.queue)
	if len(queue) == 0 {
		j.mu.Unlock()
		return nil
	}
	tr := j.switchLocked(sequentialPrev(queue, j.current.ID), false)
	j.mu.Unlock()
	j.run(ctx, tr)
	return nil
}

// Seek moves within the current track. Positions are clamped to the track.
func (j *Jukebox) Seek(pos time.Duration) error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return ErrClosed
	}
	if j.current == nil {
		j.mu.Unlock()
		return nil
	}
	j.position = j.clampPosition(pos)
	pos = j.position
	id := j.playbackID
	j.mu.Unlock()

	j.publish()
	return j.session.seek(id, pos)
}

// SetVolume sets the output level, clamped to [0,1].
func (j *Jukebox) SetVolume(v float64) error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return ErrClosed
	}
	j.volume = clampVolume(v)
	v = j.volume
	j.mu.Unlock()

	j.publish()
	return j.session.setVolume(v)
}

// ToggleShuffle flips shuffle mode and returns the new setting.
func (j *Jukebox) ToggleShuffle() bool {
	j.mu.Lock()
	on := !j.shuffle
	j.mu.Unlock()
	j.SetShuffle(on)
	return on
}

// SetShuffle turns shuffle mode on or off. Turning it on starts a fresh bag
// on the next Next.
func (j *Jukebox) SetShuffle(on bool) {
	j.mu.Lock()
	if on && !j.shuffle {
		j.bag.Clear()
	}
	j.shuffle = on
	j.mu.Unlock()
	j.publish()
}

// ToggleRepeat flips repeat-one mode and returns the new setting.
func (j *Jukebox) ToggleRepeat() bool {
	j.mu.Lock()
	j.repeat = !j.repeat
	on := j.repeat
	j.mu.Unlock()
	j.publish()
	return on
}

// SetRepeat turns repeat-one mode on or off.
func (j *Jukebox) SetRepeat(on bool) {
	j.mu.Lock()
	j.repeat = on
	j.mu.Unlock()
	j.publish()
}

// Stop silences the output and clears the current track, for example when
// that track is removed from the catalog.
func (j *Jukebox) Stop() error {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return ErrClosed
	}
	j.playbackID++
	j.session.request(j.playbackID)
	j.current = nil
	j.phase = PhaseIdle
	j.position, j.duration = 0, 0
	j.lastErr = ""
	j.mu.Unlock()

	err := j.session.pauseAny()
	j.publish()
	return err
}

// switchLocked makes track current. Only forward moves pass remember, so the
// outgoing track enters the history exactly once per transition.
func (j *Jukebox) switchLocked(track library.Track, remember bool) transition {
	if remember && j.current != nil {
		j.history.Push(j.current.ID)
	}
	j.playbackID++
	j.session.request(j.playbackID)

	t := track
	j.current = &t
	j.position = 0
	j.duration = track.Duration
	j.lastErr = ""

	locator := track.PlayableLocator()
	if locator == "" {
		j.phase = PhasePaused
		j.lastErr = "track has no playable source"
		return transition{}
	}

	j.phase = PhaseLoading
	j.startingID = j.playbackID
	tr := transition{src: Source{ID: j.playbackID, Locator: locator}, load: true}
	if track.IsLocal() {
		tr.played = track.ID
	}
	return tr
}

// run carries out a transition: publish the optimistic state, hand the
// output to the new source, then settle on playing or paused. Results for a
// superseded source are discarded.
func (j *Jukebox) run(ctx context.Context, tr transition) {
	j.publish()
	if !tr.load {
		return
	}
	if tr.played != "" && j.onPlayed != nil {
		j.onPlayed(tr.played)
	}

	loaded, err := j.session.start(ctx, tr.src)
	if errors.Is(err, errSuperseded) {
		return
	}

	j.mu.Lock()
	if tr.src.ID != j.playbackID {
		j.mu.Unlock()
		return
	}
	j.startingID = 0
	if loaded {
		j.loadedID = tr.src.ID
	}
	repause := false
	switch {
	case err != nil:
		j.phase = PhasePaused
		j.lastErr = err.Error()
		j.log.Warn("failed to start track", "track", j.current.ID, "error", err)
	case j.phase == PhaseLoading:
		j.phase = PhasePlaying
	case j.phase == PhasePaused:
		repause = true
	}
	j.mu.Unlock()

	if repause {
		if err := j.session.pause(tr.src.ID); err != nil {
			j.log.Warn("failed to pause", "error", err)
		}
	}
	j.publish()
}

// rewindLocked restarts the current track from zero. With resume set the
// output is started as well, which also covers a source that just ended.
// It releases the lock.
func (j *Jukebox) rewindLocked(ctx context.Context, resume bool) {
	if j.startingLocked() {
		// the pending load starts at zero anyway
		if resume {
			j.phase = PhaseLoading
		}
		j.mu.Unlock()
		j.publish()
		return
	}
	if !j.loadedLocked() {
		tr := j.switchLocked(*j.current, false)
		j.mu.Unlock()
		j.run(ctx, tr)
		return
	}

	id := j.playbackID
	j.position = 0
	if resume {
		j.phase = PhasePlaying
		j.lastErr = ""
	}
	j.mu.Unlock()

	j.publish()
	if err := j.session.seek(id, 0); err != nil {
		j.log.Warn("failed to rewind", "error", err)
	}
	if resume {
		if err := j.session.resume(ctx, id); err != nil {
			j.failed(id, err)
		}
	}
}

func (j *Jukebox) pickNextLocked(queue []library.Track) library.Track {
	if !j.shuffle {
		return sequentialNext(queue, j.current.ID)
	}
	// The bag may hold ids that left the queue since it was filled; those
	// are skipped, and an exhausted bag is refilled once.
	for range 2 {
		if j.bag.Len() == 0 {
			j.bag.Refill(trackIDs(queue), j.current.ID)
		}
		for {
			id, ok := j.bag.Draw()
			if !ok {
				break
			}
			if i := indexOfTrack(queue, id); i >= 0 {
				return queue[i]
			}
		}
	}
	return sequentialNext(queue, j.current.ID)
}

// popHistoryLocked pops the history and resolves the id against the whole
// catalog. One entry for a deleted track is skipped; a second one gives up.
func (j *Jukebox) popHistoryLocked() (library.Track, bool) {
	for range 2 {
		id, ok := j.history.Pop()
		if !ok {
			return library.Track{}, false
		}
		if t, ok := j.catalog.Get(id); ok {
			return t, true
		}
		j.log.Debug("skipping history entry for missing track", "id", id)
	}
	return library.Track{}, false
}

// startingLocked reports whether the current source is still being loaded.
func (j *Jukebox) startingLocked() bool {
	return j.startingID != 0 && j.startingID == j.playbackID
}

func (j *Jukebox) loadedLocked() bool {
	return j.loadedID != 0 && j.loadedID == j.playbackID
}

// failed records a transport failure for source id, if it is still current.
func (j *Jukebox) failed(id uint64, err error) {
	j.mu.Lock()
	if id != j.playbackID || j.current == nil {
		j.mu.Unlock()
		return
	}
	j.phase = PhasePaused
	j.lastErr = err.Error()
	j.log.Warn("playback failed", "track", j.current.ID, "error", err)
	j.mu.Unlock()
	j.publish()
}
