package track

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/GiGurra/cmder"
	"github.com/gigurra/glass/cmd/common"
	"github.com/gigurra/glass/cmd/library"
	"github.com/spf13/cobra"
)

type OpenParams struct {
	ID  string `pos:"true" help:"Track id or unique id prefix"`
	Dir bool   `long:"dir" help:"Open the folder containing the file instead of the file itself"`
}

// runOpener runs the platform opener; replaced in tests.
var runOpener = func(ctx context.Context, args ...string) error {
	return cmder.New(args...).
		WithAttemptTimeout(5 * time.Second).
		Run(ctx).Err
}

func OpenCmd() *cobra.Command {
	return boa.CmdT[OpenParams]{
		Use:         "open",
		Short:       "Open a track's file, folder or URL with the system default application",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *OpenParams, cmd *cobra.Command, args []string) {
			catalog, err := library.Load(common.LibraryPath())
			if err == nil {
				err = RunOpen(cmd.Context(), params, catalog, os.Stdout)
			}
			if err != nil {
				fmt.Fprintf(os.Stderr, "open: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

func RunOpen(ctx context.Context, params *OpenParams, catalog *library.Catalog, stdout io.Writer) error {
	t, err := catalog.Resolve(params.ID)
	if err != nil {
		return err
	}
	target := t.PlayableLocator()
	if target == "" {
		return errors.New("track has nothing to open")
	}
	if params.Dir {
		if !t.IsLocal() {
			return errors.New("--dir only works for local files")
		}
		target = filepath.Dir(target)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := runOpener(ctx, openerArgs(runtime.GOOS, target)...); err != nil {
		return fmt.Errorf("opening %s: %w", target, err)
	}
	fmt.Fprintf(stdout, "Opened %s\n", target)
	return nil
}

func openerArgs(goos, target string) []string {
	switch goos {
	case "darwin":
		return []string{"open", target}
	case "windows":
		return []string{"cmd", "/c", "start", "", target}
	}
	return []string{"xdg-open", target}
}
