package jukebox

import (
	"slices"
	"time"

	"github.com/gigurra/glass/cmd/library"
)

// Phase is the engine's internal playback state.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseLoading   Phase = "loading"
	PhasePlaying   Phase = "playing"
	PhasePaused    Phase = "paused"
	PhaseBuffering Phase = "buffering"
)

// Status is what a UI shows. Loading is reported as playing.
type Status string

const (
	StatusPaused    Status = "paused"
	StatusPlaying   Status = "playing"
	StatusBuffering Status = "buffering"
)

func (p Phase) Status() Status {
	switch p {
	case PhasePlaying, PhaseLoading:
		return StatusPlaying
	case PhaseBuffering:
		return StatusBuffering
	}
	return StatusPaused
}

// Snapshot is an immutable view of the engine published after every change.
type Snapshot struct {
	Track    *library.Track // nil when nothing is selected
	Status   Status
	Phase    Phase
	Volume   float64
	Position time.Duration
	Duration time.Duration // 0 until known
	Shuffle  bool
	Repeat   bool
	History  []string // oldest first
	Queue    []string // explicit queue, empty means whole catalog
	Err      string   // last playback failure, cleared on the next track change
}

// Playing reports whether the UI should show a playing indicator.
func (s Snapshot) Playing() bool {
	return s.Status != StatusPaused
}

// Progress is the elapsed fraction in [0,1], 0 while the duration is unknown.
func (s Snapshot) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return min(1, float64(s.Position)/float64(s.Duration))
}

func (s Snapshot) clone() Snapshot {
	s.History = slices.Clone(s.History)
	s.Queue = slices.Clone(s.Queue)
	if s.Track != nil {
		t := *s.Track
		s.Track = &t
	}
	return s
}

// Persisted is the part of the engine state that survives restarts.
type Persisted struct {
	Volume  float64  `json:"volume"`
	Shuffle bool     `json:"shuffle"`
	Repeat  bool     `json:"repeat"`
	Queue   []string `json:"queue,omitempty"`
	Current string   `json:"current,omitempty"`
	History []string `json:"history,omitempty"`
}
