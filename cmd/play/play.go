package play

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gigurra/glass/cmd/common"
	"github.com/gigurra/glass/cmd/config"
	"github.com/gigurra/glass/cmd/jukebox"
	"github.com/gigurra/glass/cmd/library"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var (
	errEmptyLibrary = errors.New("library is empty, add music with `glass import <path>`")
	errNoMatches    = errors.New("no tracks match the given filters")
)

type Params struct {
	ID       string `pos:"true" optional:"true" help:"Track id or unique id prefix to start with"`
	Search   string `short:"s" optional:"true" help:"Only queue tracks whose title, artist or album contain this text"`
	Artist   string `long:"artist" optional:"true" help:"Only queue tracks crediting this artist"`
	Album    string `long:"album" optional:"true" help:"Only queue tracks from this album"`
	Liked    bool   `long:"liked" help:"Only queue liked tracks"`
	Shuffle  bool   `long:"shuffle" help:"Shuffle the queue"`
	Repeat   bool   `long:"repeat" help:"Repeat the current track"`
	Watch    bool   `short:"w" long:"watch" help:"Import audio files that appear in the configured music_dir while playing"`
	Notify   bool   `long:"notify" help:"Show a desktop notification when a track starts"`
	Fresh    bool   `long:"fresh" help:"Ignore the playback state saved by the previous session"`
	LogLevel string `long:"log-level" help:"Log level: debug, info, warn, error" default:"info"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "play",
		Short:       "Play the library in an interactive player",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := run(params); err != nil {
				fmt.Fprintf(os.Stderr, "play: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func run(params *Params) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	closeLog, err := common.SetupFileLogging(params.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	libPath := common.LibraryPath()
	catalog, err := library.Load(libPath)
	if err != nil {
		return fmt.Errorf("loading library: %w", err)
	}
	if catalog.Len() == 0 {
		return errEmptyLibrary
	}
	if !jukebox.AudioAvailable {
		slog.Warn("built without audio support, playback will fail")
	}

	jb := jukebox.New(catalog, jukebox.NewSpeakerSink(cfg.Playback.PollInterval()), jukebox.Options{
		Logger:           slog.Default(),
		HistorySize:      cfg.Playback.HistorySize,
		RestartThreshold: cfg.Playback.RestartThreshold(),
		Volume:           cfg.Playback.Volume,
		OnPlayed: func(id string) {
			if err := catalog.IncrementPlayCount(id); err != nil {
				slog.Warn("failed to count play", "id", id, "error", err)
			}
		},
	})
	defer jb.Close()

	statePath := common.PlaybackStatePath()
	if !params.Fresh {
		restore(jb, statePath)
	}
	if err := start(context.Background(), jb, catalog, params); err != nil {
		return err
	}

	if params.Watch {
		w, err := watchMusicDir(cfg.MusicDir, libPath, catalog)
		if err != nil {
			return err
		}
		defer w.Stop()
	}

	var onTrack func(library.Track)
	if params.Notify || cfg.Notifications.Enabled {
		onTrack = newNotifier(cfg.Notifications.Cooldown()).nowPlaying
	}

	sub := jb.Subscribe()
	defer sub.Close()

	if _, err := tea.NewProgram(newModel(jb, catalog, sub.C, onTrack), tea.WithAltScreen()).Run(); err != nil {
		return err
	}

	if err := saveState(statePath, jb.Persisted()); err != nil {
		slog.Error("failed to save playback state", "error", err)
	}
	return library.Save(libPath, catalog)
}

func restore(jb *jukebox.Jukebox, statePath string) {
	state, ok, err := loadState(statePath)
	if err != nil {
		slog.Warn("ignoring saved playback state", "error", err)
		return
	}
	if !ok {
		return
	}
	if err := jb.Restore(state); err != nil {
		slog.Warn("failed to restore playback state", "error", err)
	}
}

// start begins playback for the given flags. With no track or filter it
// continues the restored session, if there was one.
func start(ctx context.Context, jb *jukebox.Jukebox, catalog *library.Catalog, params *Params) error {
	if params.Shuffle {
		jb.SetShuffle(true)
	}
	if params.Repeat {
		jb.SetRepeat(true)
	}

	sel := library.Selection{Query: params.Search, Artist: params.Artist, Album: params.Album, Liked: params.Liked}
	if params.ID == "" && sel.Empty() && jb.Snapshot().Track != nil {
		return nil
	}

	queue := sel.Apply(catalog)
	if len(queue) == 0 {
		return errNoMatches
	}

	first := queue[0]
	switch {
	case params.ID != "":
		t, err := catalog.Resolve(params.ID)
		if err != nil {
			return err
		}
		first = t
	case params.Shuffle:
		first = lo.Sample(queue)
	}

	// A nil queue follows the whole catalog, including later imports.
	var explicit []library.Track
	if !sel.Empty() {
		explicit = queue
	}
	return jb.PlayFrom(ctx, first, explicit)
}

func watchMusicDir(dir, libPath string, catalog *library.Catalog) (*library.Watcher, error) {
	if dir == "" {
		return nil, errors.New("--watch needs music_dir set in " + config.ConfigPath())
	}
	w, err := library.NewWatcher(dir, library.NewImporter(common.CoverDir()), catalog, saveOnImport(libPath, catalog))
	if err != nil {
		return nil, err
	}
	w.StartAsync()
	return w, nil
}

// saveOnImport writes the library after each watched import, so new files
// are kept even if the player does not exit cleanly.
func saveOnImport(libPath string, catalog *library.Catalog) func(library.Track) {
	return func(library.Track) {
		if err := library.Save(libPath, catalog); err != nil {
			slog.Warn("failed to save library after import", "error", err)
		}
	}
}
