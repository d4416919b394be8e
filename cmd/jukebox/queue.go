package jukebox

import (
	"slices"

	"github.com/gigurra/glass/cmd/library"
	"github.com/samber/lo"
)

// resolveQueue returns the tracks navigation works over: the explicit queue
// when one is set, otherwise the whole catalog. Explicit entries are looked
// up in the catalog so edits show through and deleted tracks drop out; if
// none survive the catalog is used instead.
func resolveQueue(catalog []library.Track, explicit []string) []library.Track {
	if len(explicit) == 0 {
		return catalog
	}
	byID := lo.KeyBy(catalog, func(t library.Track) string { return t.ID })
	resolved := lo.FilterMap(explicit, func(id string, _ int) (library.Track, bool) {
		t, ok := byID[id]
		return t, ok
	})
	if len(resolved) == 0 {
		return catalog
	}
	return resolved
}

func trackIDs(tracks []library.Track) []string {
	return lo.Map(tracks, func(t library.Track, _ int) string { return t.ID })
}

func indexOfTrack(tracks []library.Track, id string) int {
	return slices.IndexFunc(tracks, func(t library.Track) bool { return t.ID == id })
}

// sequentialNext is the track after id, wrapping. An id not in the queue
// continues from the start.
func sequentialNext(queue []library.Track, id string) library.Track {
	i := indexOfTrack(queue, id)
	if i < 0 {
		return queue[0]
	}
	return queue[(i+1)%len(queue)]
}

// sequentialPrev is the track before id, wrapping. An id not in the queue
// continues from the end.
func sequentialPrev(queue []library.Track, id string) library.Track {
	i := indexOfTrack(queue, id)
	if i < 0 {
		return queue[len(queue)-1]
	}
	return queue[(i-1+len(queue))%len(queue)]
}
