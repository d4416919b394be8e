// Package library holds the track catalog: the records, their persistence and
// the ways tracks get into it (file import, directory watching).
package library

import (
	"strings"
	"time"
)

// SourceKind tells where a track's audio comes from.
type SourceKind string

const (
	SourceLocal SourceKind = "local"
	SourceWeb   SourceKind = "web"
)

const (
	DefaultArtist = "Unknown Artist"
	DefaultAlbum  = "Local Import"
)

// Track is one playable item in the catalog.
type Track struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Artist    string        `json:"artist"`
	Album     string        `json:"album"`
	Year      string        `json:"year,omitempty"`
	Cover     string        `json:"cover,omitempty"`
	Locator   string        `json:"locator,omitempty"` // stream URL or file path, may be derived from Path
	Path      string        `json:"path,omitempty"`
	Source    SourceKind    `json:"source,omitempty"`
	Liked     bool          `json:"liked,omitempty"`
	PlayCount int           `json:"play_count,omitempty"`
	Lyrics    string        `json:"lyrics,omitempty"`
	AddedAt   time.Time     `json:"added_at"`
	Duration  time.Duration `json:"duration,omitempty"`
}

// IsLocal reports whether the track is backed by a file on this machine.
// Tracks with no source recorded are treated as local.
func (t Track) IsLocal() bool {
	return t.Source != SourceWeb
}

// PlayableLocator returns what should be handed to the audio output, or ""
// when the track has nothing playable.
func (t Track) PlayableLocator() string {
	if t.Locator != "" {
		return t.Locator
	}
	return t.Path
}

// Artists splits the artist field into individual names.
func (t Track) Artists() []string {
	return SplitArtists(t.Artist)
}

// Label is the "artist - title" line used for display and the clipboard.
func (t Track) Label() string {
	if t.Artist == "" {
		return t.Title
	}
	return t.Artist + " - " + t.Title
}

// matches reports whether query (already lowercased) appears in the title,
// artist or album.
func (t Track) matches(query string) bool {
	return strings.Contains(strings.ToLower(t.Title), query) ||
		strings.Contains(strings.ToLower(t.Artist), query) ||
		strings.Contains(strings.ToLower(t.Album), query)
}
