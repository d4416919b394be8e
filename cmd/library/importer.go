package library

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/google/uuid"
)

var ErrNotAudio = errors.New("not an audio file")

var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".flac": true,
	".ogg":  true,
	".m4a":  true,
	".aac":  true,
}

// IsAudioFile reports whether path looks like something the importer accepts.
func IsAudioFile(path string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(path))]
}

// Importer turns audio files into catalog tracks.
type Importer struct {
	// CoverDir receives extracted cover art. Empty disables extraction.
	CoverDir string

	now   func() time.Time
	newID func() string
}

func NewImporter(coverDir string) *Importer {
	return &Importer{
		CoverDir: coverDir,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// ImportFile reads tags from the file at path and builds a track from them.
// Files without readable tags still import, with the title taken from the
// file name.
func (im *Importer) ImportFile(path string) (Track, error) {
	if !IsAudioFile(path) {
		return Track{}, fmt.Errorf("%s: %w", path, ErrNotAudio)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Track{}, err
	}

	f, err := os.Open(abs)
	if err != nil {
		return Track{}, err
	}
	defer f.Close()

	now := im.now()
	t := Track{
		ID:      im.newID(),
		Title:   strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs)),
		Artist:  DefaultArtist,
		Album:   DefaultAlbum,
		Year:    strconv.Itoa(now.Year()),
		Path:    abs,
		Locator: abs,
		Source:  SourceLocal,
		AddedAt: now,
	}

	m, err := tag.ReadFrom(f)
	if err != nil {
		slog.Debug("no tags read", "path", abs, "error", err)
		return t, nil
	}
	if v := strings.TrimSpace(m.Title()); v != "" {
		t.Title = v
	}
	if v := strings.TrimSpace(m.Artist()); v != "" {
		t.Artist = v
	}
	if v := strings.TrimSpace(m.Album()); v != "" {
		t.Album = v
	}
	if m.Year() > 0 {
		t.Year = strconv.Itoa(m.Year())
	}
	t.Lyrics = m.Lyrics()
	if pic := m.Picture(); pic != nil && len(pic.Data) > 0 && im.CoverDir != "" {
		cover, err := im.writeCover(t.ID, pic)
		if err != nil {
			slog.Warn("failed to write cover art", "path", abs, "error", err)
		} else {
			t.Cover = cover
		}
	}
	return t, nil
}

// ImportPaths imports every audio file under the given files and directories.
// Paths already known to skip are left out. Per-file failures are collected
// and do not stop the walk.
func (im *Importer) ImportPaths(paths []string, skip func(path string) bool) ([]Track, error) {
	var tracks []Track
	var errs []error

	importOne := func(p string) {
		if abs, err := filepath.Abs(p); err == nil && skip != nil && skip(abs) {
			return
		}
		t, err := im.ImportFile(p)
		if err != nil {
			errs = append(errs, err)
			return
		}
		tracks = append(tracks, t)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !info.IsDir() {
			importOne(root)
			continue
		}
		err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				errs = append(errs, err)
				return nil
			}
			if d.IsDir() || !IsAudioFile(p) {
				return nil
			}
			importOne(p)
			return nil
		})
		if err != nil {
			errs = append(errs, err)
		}
	}
	return tracks, errors.Join(errs...)
}

func (im *Importer) writeCover(id string, pic *tag.Picture) (string, error) {
	ext := strings.TrimPrefix(pic.Ext, ".")
	if ext == "" {
		ext = "jpg"
	}
	if err := os.MkdirAll(im.CoverDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(im.CoverDir, id+"."+ext)
	if err := os.WriteFile(path, pic.Data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
