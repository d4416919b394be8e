// Package config provides configuration loading for glass.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gigurra/glass/cmd/common"
)

// Config represents the glass configuration file structure.
type Config struct {
	// MusicDir is watched for new files by `glass play --watch`.
	MusicDir      string              `json:"music_dir,omitempty"`
	Playback      *PlaybackConfig     `json:"playback,omitempty"`
	Notifications *NotificationConfig `json:"notifications,omitempty"`
}

// PlaybackConfig tunes the player.
type PlaybackConfig struct {
	// Volume is used when there is no saved playback state.
	Volume             float64 `json:"volume"`
	HistorySize        int     `json:"history_size"`
	RestartThresholdMs int     `json:"restart_threshold_ms"`
	PollIntervalMs     int     `json:"poll_interval_ms"`
}

// NotificationConfig holds settings for now-playing desktop notifications.
type NotificationConfig struct {
	Enabled         bool `json:"enabled"`
	CooldownSeconds int  `json:"cooldown_seconds,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Playback: &PlaybackConfig{
			Volume:             0.8,
			HistorySize:        100,
			RestartThresholdMs: 3000,
			PollIntervalMs:     250,
		},
		Notifications: &NotificationConfig{
			Enabled:         false,
			CooldownSeconds: 2,
		},
	}
}

// ConfigPath returns the path to the config file (~/.glass/config.json).
func ConfigPath() string {
	return filepath.Join(common.StateDir(), "config.json")
}

// Load loads the config from ~/.glass/config.json.
// Returns default config if file doesn't exist.
func Load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Apply defaults for missing sections and fields
	defaults := DefaultConfig()
	if config.Playback == nil {
		config.Playback = defaults.Playback
	} else {
		if config.Playback.Volume <= 0 || config.Playback.Volume > 1 {
			config.Playback.Volume = defaults.Playback.Volume
		}
		if config.Playback.HistorySize <= 0 {
			config.Playback.HistorySize = defaults.Playback.HistorySize
		}
		if config.Playback.RestartThresholdMs <= 0 {
			config.Playback.RestartThresholdMs = defaults.Playback.RestartThresholdMs
		}
		if config.Playback.PollIntervalMs <= 0 {
			config.Playback.PollIntervalMs = defaults.Playback.PollIntervalMs
		}
	}
	if config.Notifications == nil {
		config.Notifications = defaults.Notifications
	} else if config.Notifications.CooldownSeconds == 0 {
		config.Notifications.CooldownSeconds = defaults.Notifications.CooldownSeconds
	}

	return &config, nil
}

// Save saves the config to ~/.glass/config.json.
func Save(config *Config) error {
	if err := os.MkdirAll(common.StateDir(), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(), data, 0644)
}

func (c *PlaybackConfig) RestartThreshold() time.Duration {
	return time.Duration(c.RestartThresholdMs) * time.Millisecond
}

func (c *PlaybackConfig) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

func (c *NotificationConfig) Cooldown() time.Duration {
	if c == nil {
		return 0
	}
	return time.Duration(c.CooldownSeconds) * time.Second
}
