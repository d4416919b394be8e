package play

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gigurra/glass/cmd/jukebox"
)

// loadState reads the playback state saved by the previous session. ok is
// false when there is none.
func loadState(path string) (state jukebox.Persisted, ok bool, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return jukebox.Persisted{}, false, nil
		}
		return jukebox.Persisted{}, false, err
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return jukebox.Persisted{}, false, fmt.Errorf("parse %s: %w", path, err)
	}
	return state, true, nil
}

func saveState(path string, state jukebox.Persisted) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
