package common

import (
	"os"
	"path/filepath"
)

// StateDir is where glass keeps its library, playback state, config and log
// (~/.glass, or $GLASS_HOME when set).
func StateDir() string {
	if dir := os.Getenv("GLASS_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".glass")
}

func LibraryPath() string {
	return filepath.Join(StateDir(), "library.json")
}

func PlaybackStatePath() string {
	return filepath.Join(StateDir(), "playback.json")
}

func LogPath() string {
	return filepath.Join(StateDir(), "glass.log")
}

// CoverDir holds cover art extracted on import.
func CoverDir() string {
	return filepath.Join(CacheDir(), "covers")
}

func CacheDir() string {
	return filepath.Join(cacheHome(), "glass")
}

// https://specifications.freedesktop.org/basedir/latest/#variables
func cacheHome() string {
	dir := os.Getenv("XDG_CACHE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".cache")
	}
	return dir
}
