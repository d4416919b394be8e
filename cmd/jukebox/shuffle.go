package jukebox

import (
	"math/rand/v2"
	"slices"
)

// ShuffleBag hands out every id of a queue once, in random order, before any
// id repeats.
type ShuffleBag struct {
	ids []string
	rng *rand.Rand
}

// NewShuffleBag creates an empty bag. A nil rng uses the global source.
func NewShuffleBag(rng *rand.Rand) *ShuffleBag {
	return &ShuffleBag{rng: rng}
}

// Refill loads the bag with ids minus exclude (the track playing now). A
// queue holding only exclude still yields that one id.
func (b *ShuffleBag) Refill(ids []string, exclude string) {
	b.ids = slices.DeleteFunc(slices.Clone(ids), func(id string) bool { return id == exclude })
	if len(b.ids) == 0 && slices.Contains(ids, exclude) {
		b.ids = []string{exclude}
	}
}

// Draw removes and returns a random id.
func (b *ShuffleBag) Draw() (string, bool) {
	if len(b.ids) == 0 {
		return "", false
	}
	i := b.intN(len(b.ids))
	id := b.ids[i]
	b.ids[i] = b.ids[len(b.ids)-1]
	b.ids = b.ids[:len(b.ids)-1]
	return id, true
}

func (b *ShuffleBag) Len() int { return len(b.ids) }

func (b *ShuffleBag) Clear() { b.ids = nil }

func (b *ShuffleBag) intN(n int) int {
	if b.rng != nil {
		return b.rng.IntN(n)
	}
	return rand.IntN(n)
}
