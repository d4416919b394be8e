package track

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/glass/cmd/common"
	"github.com/gigurra/glass/cmd/library"
	"github.com/spf13/cobra"
)

type RmParams struct {
	IDs       []string `pos:"true" help:"Track ids or unique id prefixes"`
	KeepCover bool     `long:"keep-cover" help:"Keep extracted cover art on disk"`
}

func RmCmd() *cobra.Command {
	return boa.CmdT[RmParams]{
		Use:         "rm",
		Aliases:     []string{"remove", "delete"},
		Short:       "Remove tracks from the library (audio files are left alone)",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *RmParams, cmd *cobra.Command, args []string) {
			mutate("rm", func(c *library.Catalog) error { return RunRm(params, c, common.CoverDir(), os.Stdout) })
		},
	}.ToCobra()
}

// RunRm deletes tracks from catalog. Cover art is removed only when it lives
// under coverDir.
func RunRm(params *RmParams, catalog *library.Catalog, coverDir string, stdout io.Writer) error {
	for _, ref := range params.IDs {
		t, err := catalog.Resolve(ref)
		if err != nil {
			return err
		}
		if _, err := catalog.Delete(t.ID); err != nil {
			return err
		}
		if !params.KeepCover && ownedCover(t.Cover, coverDir) {
			if err := os.Remove(t.Cover); err != nil && !os.IsNotExist(err) {
				slog.Warn("failed to remove cover art", "path", t.Cover, "error", err)
			}
		}
		fmt.Fprintf(stdout, "Removed %s: %s\n", shortID(t.ID), t.Label())
	}
	return nil
}

func ownedCover(cover, coverDir string) bool {
	if cover == "" || coverDir == "" {
		return false
	}
	rel, err := filepath.Rel(coverDir, cover)
	return err == nil && !strings.HasPrefix(rel, "..") && !filepath.IsAbs(rel)
}
