package library

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/samber/lo"
)

var (
	ErrTrackNotFound = errors.New("track not found")
	ErrDuplicateID   = errors.New("duplicate track id")
	ErrMissingID     = errors.New("track has no id")
	ErrAmbiguousID   = errors.New("ambiguous track id")
)

// SortOrder selects how the catalog orders its tracks.
type SortOrder string

const (
	SortByTitle SortOrder = "title"
	SortByAdded SortOrder = "added"
	SortByPlays SortOrder = "plays"
)

// Catalog is the ordered set of known tracks. It is safe for concurrent use
// and every read returns copies, so callers never see a later mutation.
type Catalog struct {
	mu     sync.RWMutex
	tracks []Track
}

// NewCatalog creates a catalog holding tracks in the given order.
func NewCatalog(tracks ...Track) *Catalog {
	c := &Catalog{}
	for _, t := range tracks {
		_ = c.add(t)
	}
	return c
}

// Len returns the number of tracks.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tracks)
}

// Tracks returns all tracks in catalog order.
func (c *Catalog) Tracks() []Track {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.tracks)
}

// Get returns the track with the given id.
func (c *Catalog) Get(id string) (Track, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := c.indexOf(id)
	if i < 0 {
		return Track{}, false
	}
	return c.tracks[i], true
}

// Resolve finds a track by its full id or a unique id prefix.
func (c *Catalog) Resolve(ref string) (Track, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Track{}, ErrMissingID
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexOf(ref); i >= 0 {
		return c.tracks[i], nil
	}
	found := lo.Filter(c.tracks, func(t Track, _ int) bool { return strings.HasPrefix(t.ID, ref) })
	switch len(found) {
	case 0:
		return Track{}, fmt.Errorf("%w: %s", ErrTrackNotFound, ref)
	case 1:
		return found[0], nil
	}
	return Track{}, fmt.Errorf("%w: %s matches %d tracks", ErrAmbiguousID, ref, len(found))
}

// HasPath reports whether a track imported from path is already present.
func (c *Catalog) HasPath(path string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return lo.ContainsBy(c.tracks, func(t Track) bool { return t.Path != "" && t.Path == path })
}

// Add appends tracks. Tracks whose id is already present are rejected and
// reported through the returned error; the rest are still added.
func (c *Catalog) Add(tracks ...Track) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var errs []error
	for _, t := range tracks {
		if err := c.add(t); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Catalog) add(t Track) error {
	if t.ID == "" {
		return ErrMissingID
	}
	if c.indexOf(t.ID) >= 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateID, t.ID)
	}
	c.tracks = append(c.tracks, t)
	return nil
}

// Update applies fn to the stored track and returns the result. The id
// cannot be changed.
func (c *Catalog) Update(id string, fn func(t *Track)) (Track, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return Track{}, ErrTrackNotFound
	}
	t := c.tracks[i]
	fn(&t)
	t.ID = id
	c.tracks[i] = t
	return t, nil
}

// ToggleLike flips the liked flag.
func (c *Catalog) ToggleLike(id string) (Track, error) {
	return c.Update(id, func(t *Track) { t.Liked = !t.Liked })
}

// IncrementPlayCount records one more play of the track.
func (c *Catalog) IncrementPlayCount(id string) error {
	_, err := c.Update(id, func(t *Track) { t.PlayCount++ })
	return err
}

// Delete removes the track.
func (c *Catalog) Delete(id string) (Track, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return Track{}, ErrTrackNotFound
	}
	removed := c.tracks[i]
	c.tracks = slices.Delete(c.tracks, i, i+1)
	return removed, nil
}

// Sort reorders the catalog in place. Unknown orders leave it untouched.
func (c *Catalog) Sort(order SortOrder) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tracks = SortTracks(c.tracks, order)
}

// Search returns tracks whose title, artist or album contain query,
// ignoring case. An empty query matches everything.
func (c *Catalog) Search(query string) []Track {
	q := strings.ToLower(strings.TrimSpace(query))
	return c.filter(func(t Track) bool { return q == "" || t.matches(q) })
}

// ByArtist returns tracks crediting the named artist, alone or among others.
func (c *Catalog) ByArtist(name string) []Track {
	return c.filter(credits(name))
}

// ByAlbum returns the tracks of an album.
func (c *Catalog) ByAlbum(name string) []Track {
	return c.filter(onAlbum(name))
}

// Favorites returns the liked tracks.
func (c *Catalog) Favorites() []Track {
	return c.filter(func(t Track) bool { return t.Liked })
}

// Albums lists album names in first-seen order.
func (c *Catalog) Albums() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return lo.Uniq(lo.Map(c.tracks, func(t Track, _ int) string { return t.Album }))
}

// Artists lists individual artist names in first-seen order.
func (c *Catalog) Artists() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return lo.Uniq(lo.FlatMap(c.tracks, func(t Track, _ int) []string { return t.Artists() }))
}

func (c *Catalog) filter(keep func(Track) bool) []Track {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return lo.Filter(c.tracks, func(t Track, _ int) bool { return keep(t) })
}

func (c *Catalog) indexOf(id string) int {
	return slices.IndexFunc(c.tracks, func(t Track) bool { return t.ID == id })
}

// SortTracks returns a sorted copy of tracks. Unknown orders keep the input order.
func SortTracks(tracks []Track, order SortOrder) []Track {
	out := slices.Clone(tracks)
	switch order {
	case SortByTitle:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Title) < strings.ToLower(out[j].Title)
		})
	case SortByAdded:
		sort.SliceStable(out, func(i, j int) bool { return out[i].AddedAt.After(out[j].AddedAt) })
	case SortByPlays:
		sort.SliceStable(out, func(i, j int) bool { return out[i].PlayCount > out[j].PlayCount })
	}
	return out
}

func credits(artist string) func(Track) bool {
	return func(t Track) bool {
		return lo.ContainsBy(t.Artists(), func(a string) bool { return strings.EqualFold(a, artist) })
	}
}

func onAlbum(album string) func(Track) bool {
	return func(t Track) bool { return strings.EqualFold(t.Album, album) }
}
