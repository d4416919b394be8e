package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const storeVersion = 1

type storeFile struct {
	Version int     `json:"version"`
	Tracks  []Track `json:"tracks"`
}

// Load reads a catalog from path. A missing file yields an empty catalog.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewCatalog(), nil
		}
		return nil, err
	}

	var f storeFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	tracks := make([]Track, 0, len(f.Tracks))
	for _, t := range f.Tracks {
		if t, ok := normalizeLoaded(t); ok {
			tracks = append(tracks, t)
		}
	}
	return NewCatalog(tracks...), nil
}

// Save writes the catalog to path, replacing the file atomically.
func Save(path string, c *Catalog) error {
	tracks := c.Tracks()
	for i := range tracks {
		tracks[i] = normalizeSaved(tracks[i])
	}

	data, err := json.MarshalIndent(storeFile{Version: storeVersion, Tracks: tracks}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// normalizeLoaded fills in whichever of path and locator is missing for local
// tracks and drops records that point at nothing.
func normalizeLoaded(t Track) (Track, bool) {
	if t.ID == "" {
		return t, false
	}
	if t.IsLocal() {
		if t.Path == "" && strings.HasPrefix(t.Locator, "file://") {
			t.Path = strings.TrimPrefix(t.Locator, "file://")
		}
		if t.Path != "" {
			t.Locator = t.Path
		}
	}
	return t, t.PlayableLocator() != ""
}

// normalizeSaved keeps only the path for local files; the locator is
// re-derived on load.
func normalizeSaved(t Track) Track {
	if t.IsLocal() && t.Path != "" {
		t.Locator = ""
	}
	return t
}
