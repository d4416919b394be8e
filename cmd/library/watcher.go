package library

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher imports audio files as they appear in a directory.
type Watcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	importer *Importer
	catalog  *Catalog
	onAdded  func(Track)
	settle   time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher watches dir and adds new audio files to catalog. onAdded, if
// not nil, is called for each imported track.
func NewWatcher(dir string, importer *Importer, catalog *Catalog, onAdded func(Track)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	return &Watcher{
		dir:      dir,
		watcher:  fsw,
		importer: importer,
		catalog:  catalog,
		onAdded:  onAdded,
		settle:   100 * time.Millisecond,
		done:     make(chan struct{}),
	}, nil
}

// Start processes events until Stop is called.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				// let the writer finish before reading tags
				time.Sleep(w.settle)
				w.handle(event.Name)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("library watcher error", "dir", w.dir, "error", err)
		case <-w.done:
			return
		}
	}
}

// StartAsync runs Start in a background goroutine.
func (w *Watcher) StartAsync() {
	go w.Start()
}

// Stop ends watching. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.watcher.Close()
	})
}

func (w *Watcher) handle(path string) {
	if !IsAudioFile(path) || w.catalog.HasPath(path) {
		return
	}
	t, err := w.importer.ImportFile(path)
	if err != nil {
		slog.Warn("failed to import new file", "path", path, "error", err)
		return
	}
	if err := w.catalog.Add(t); err != nil {
		slog.Warn("failed to add new file", "path", path, "error", err)
		return
	}
	slog.Info("imported new file", "path", path, "id", t.ID)
	if w.onAdded != nil {
		w.onAdded(t)
	}
}
