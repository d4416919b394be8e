package track

import (
	"fmt"
	"io"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/glass/cmd/common"
	"github.com/gigurra/glass/cmd/library"
	"github.com/spf13/cobra"
)

type LyricsParams struct {
	ID    string `pos:"true" help:"Track id or unique id prefix"`
	File  string `pos:"true" optional:"true" help:"Plain or LRC lyrics file to attach (omit to print the current lyrics)"`
	Clear bool   `long:"clear" help:"Remove the track's lyrics"`
}

func LyricsCmd() *cobra.Command {
	return boa.CmdT[LyricsParams]{
		Use:         "lyrics",
		Short:       "Show, attach or clear a track's lyrics",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *LyricsParams, cmd *cobra.Command, args []string) {
			mutate("lyrics", func(c *library.Catalog) error { return RunLyrics(params, c, os.Stdout) })
		},
	}.ToCobra()
}

func RunLyrics(params *LyricsParams, catalog *library.Catalog, stdout io.Writer) error {
	t, err := catalog.Resolve(params.ID)
	if err != nil {
		return err
	}

	switch {
	case params.Clear:
		if _, err := catalog.Update(t.ID, func(t *library.Track) { t.Lyrics = "" }); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Cleared lyrics of %s\n", t.Label())
	case params.File != "":
		data, err := os.ReadFile(params.File)
		if err != nil {
			return err
		}
		raw := string(data)
		if _, err := catalog.Update(t.ID, func(t *library.Track) { t.Lyrics = raw }); err != nil {
			return err
		}
		if timed := library.ParseLyrics(raw); len(timed) > 0 {
			fmt.Fprintf(stdout, "Attached %d timed lines to %s\n", len(timed), t.Label())
		} else {
			fmt.Fprintf(stdout, "Attached lyrics to %s\n", t.Label())
		}
	case t.Lyrics == "":
		fmt.Fprintf(stdout, "%s has no lyrics\n", t.Label())
	default:
		fmt.Fprintln(stdout, t.Lyrics)
	}
	return nil
}
