package library

import (
	"strings"

	"github.com/samber/lo"
)

// Selection narrows the catalog the way the list and play commands take it
// from flags. Zero fields do not filter.
type Selection struct {
	Query  string
	Artist string
	Album  string
	Liked  bool
}

// Empty reports whether the selection keeps every track.
func (s Selection) Empty() bool {
	return strings.TrimSpace(s.Query) == "" && s.Artist == "" && s.Album == "" && !s.Liked
}

// Apply returns the matching tracks in catalog order.
func (s Selection) Apply(c *Catalog) []Track {
	keep := []func(Track) bool{}
	if s.Artist != "" {
		keep = append(keep, credits(s.Artist))
	}
	if s.Album != "" {
		keep = append(keep, onAlbum(s.Album))
	}
	if s.Liked {
		keep = append(keep, func(t Track) bool { return t.Liked })
	}
	return lo.Filter(c.Search(s.Query), func(t Track, _ int) bool {
		return lo.EveryBy(keep, func(f func(Track) bool) bool { return f(t) })
	})
}
