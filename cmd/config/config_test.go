package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	t.Setenv("GLASS_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Playback.HistorySize != 100 || cfg.Playback.RestartThreshold() != 3*time.Second {
		t.Errorf("playback defaults = %+v", cfg.Playback)
	}
	if cfg.Notifications.Enabled {
		t.Error("notifications should default to off")
	}
}

func TestLoad_FillsMissingFields(t *testing.T) {
	t.Setenv("GLASS_HOME", t.TempDir())
	raw := `{"music_dir":"/music","playback":{"history_size":10},"notifications":{"enabled":true}}`
	if err := os.WriteFile(ConfigPath(), []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MusicDir != "/music" || cfg.Playback.HistorySize != 10 {
		t.Errorf("explicit values lost: %+v %+v", cfg, cfg.Playback)
	}
	if cfg.Playback.Volume != 0.8 || cfg.Playback.PollInterval() != 250*time.Millisecond {
		t.Errorf("defaults not applied: %+v", cfg.Playback)
	}
	if !cfg.Notifications.Enabled || cfg.Notifications.Cooldown() != 2*time.Second {
		t.Errorf("notifications = %+v", cfg.Notifications)
	}
}

func TestSaveLoad(t *testing.T) {
	t.Setenv("GLASS_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.MusicDir = "/srv/music"
	cfg.Playback.Volume = 0.5
	if err := Save(cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.MusicDir != "/srv/music" || loaded.Playback.Volume != 0.5 {
		t.Errorf("loaded = %+v %+v", loaded, loaded.Playback)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	t.Setenv("GLASS_HOME", t.TempDir())
	if err := os.WriteFile(ConfigPath(), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil {
		t.Error("expected parse error")
	}
}
