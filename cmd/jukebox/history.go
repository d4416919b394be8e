package jukebox

import "slices"

// DefaultHistorySize bounds how many previously played tracks are remembered.
const DefaultHistorySize = 100

// History is a bounded stack of previously played track ids. When full, the
// oldest entry is dropped.
type History struct {
	ids []string
	max int
}

func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultHistorySize
	}
	return &History{max: max}
}

// Push records id as the most recent entry.
func (h *History) Push(id string) {
	h.ids = append(h.ids, id)
	if over := len(h.ids) - h.max; over > 0 {
		h.ids = slices.Delete(h.ids, 0, over)
	}
}

// Pop removes and returns the most recent entry.
func (h *History) Pop() (string, bool) {
	if len(h.ids) == 0 {
		return "", false
	}
	last := h.ids[len(h.ids)-1]
	h.ids = h.ids[:len(h.ids)-1]
	return last, true
}

func (h *History) Len() int { return len(h.ids) }

// IDs returns the entries oldest first.
func (h *History) IDs() []string { return slices.Clone(h.ids) }

// Reset replaces the contents, keeping only the newest entries that fit.
func (h *History) Reset(ids []string) {
	h.ids = nil
	for _, id := range ids {
		h.Push(id)
	}
}
