package track

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/glass/cmd/common"
	"github.com/gigurra/glass/cmd/library"
	"github.com/spf13/cobra"
)

var errNothingToChange = errors.New("nothing to change, pass at least one of --title, --artist, --album, --year")

type EditParams struct {
	ID     string `pos:"true" help:"Track id or unique id prefix"`
	Title  string `long:"title" optional:"true" help:"New title"`
	Artist string `long:"artist" optional:"true" help:"New artist, several can be joined with ', ' or ' feat. '"`
	Album  string `long:"album" optional:"true" help:"New album"`
	Year   string `long:"year" optional:"true" help:"New release year"`
}

func EditCmd() *cobra.Command {
	return boa.CmdT[EditParams]{
		Use:         "edit",
		Short:       "Change a track's title, artist, album or year",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *EditParams, cmd *cobra.Command, args []string) {
			mutate("edit", func(c *library.Catalog) error { return RunEdit(params, c, os.Stdout) })
		},
	}.ToCobra()
}

func RunEdit(params *EditParams, catalog *library.Catalog, stdout io.Writer) error {
	title := strings.TrimSpace(params.Title)
	artist := strings.TrimSpace(params.Artist)
	album := strings.TrimSpace(params.Album)
	year := strings.TrimSpace(params.Year)
	if title == "" && artist == "" && album == "" && year == "" {
		return errNothingToChange
	}
	if year != "" {
		if _, err := strconv.Atoi(year); err != nil {
			return fmt.Errorf("invalid year %q", params.Year)
		}
	}

	t, err := catalog.Resolve(params.ID)
	if err != nil {
		return err
	}
	updated, err := catalog.Update(t.ID, func(t *library.Track) {
		if title != "" {
			t.Title = title
		}
		if artist != "" {
			t.Artist = artist
		}
		if album != "" {
			t.Album = album
		}
		if year != "" {
			t.Year = year
		}
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Updated %s: %s (%s, %s)\n", shortID(updated.ID), updated.Label(), updated.Album, updated.Year)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
