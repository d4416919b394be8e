package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/glass/cmd/common"
	"github.com/spf13/cobra"
)

type Params struct {
	MusicDir string `long:"music-dir" optional:"true" help:"Set the directory watched by 'glass play --watch'"`
	Notify   string `long:"notify" optional:"true" help:"Enable or disable now-playing notifications (on/off)"`
	Path     bool   `long:"path" help:"Only print the config file path"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "config",
		Short:       "Show or change glass settings",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			if err := Run(params, os.Stdout); err != nil {
				fmt.Fprintf(os.Stderr, "config: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

// Run prints the effective config, saving it first when a setting was given.
func Run(params *Params, stdout io.Writer) error {
	if params.Path {
		fmt.Fprintln(stdout, ConfigPath())
		return nil
	}

	cfg, err := Load()
	if err != nil {
		return err
	}

	changed := false
	if params.MusicDir != "" {
		dir, err := filepath.Abs(params.MusicDir)
		if err != nil {
			return err
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return fmt.Errorf("%s is not a directory", dir)
		}
		cfg.MusicDir = dir
		changed = true
	}
	switch params.Notify {
	case "":
	case "on", "true", "yes":
		cfg.Notifications.Enabled = true
		changed = true
	case "off", "false", "no":
		cfg.Notifications.Enabled = false
		changed = true
	default:
		return fmt.Errorf("--notify takes on or off, got %q", params.Notify)
	}

	if changed {
		if err := Save(cfg); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, string(data))
	return nil
}
