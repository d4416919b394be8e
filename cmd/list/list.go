package list

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/glass/cmd/common"
	"github.com/gigurra/glass/cmd/library"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type Params struct {
	Search  string `short:"s" optional:"true" help:"Only show tracks whose title, artist or album contain this text"`
	Artist  string `long:"artist" optional:"true" help:"Only show tracks crediting this artist"`
	Album   string `long:"album" optional:"true" help:"Only show tracks from this album"`
	Liked   bool   `long:"liked" help:"Only show liked tracks"`
	SortBy  string `long:"sort-by" optional:"true" help:"Sort by: title, added, plays (default is library order)"`
	Long    bool   `short:"l" help:"Show detailed output"`
	Limit   int    `short:"n" help:"Limit number of results (0 = no limit)" default:"0"`
	JSON    bool   `long:"json" help:"Output as JSON"`
	Count   bool   `short:"c" long:"count" help:"Only output the number of matching tracks"`
	Albums  bool   `long:"albums" help:"List album names instead of tracks"`
	Artists bool   `long:"artists" help:"List artist names instead of tracks"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "list",
		Aliases:     []string{"ls"},
		Short:       "List tracks in the library",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			catalog, err := library.Load(common.LibraryPath())
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading library: %v\n", err)
				os.Exit(1)
			}
			if exitCode := Run(params, catalog, os.Stdout, os.Stderr); exitCode != 0 {
				os.Exit(exitCode)
			}
		},
	}.ToCobra()
}

func Run(params *Params, catalog *library.Catalog, stdout, stderr io.Writer) int {
	if params.Albums {
		return printNames(stdout, catalog.Albums())
	}
	if params.Artists {
		return printNames(stdout, catalog.Artists())
	}

	sel := library.Selection{Query: params.Search, Artist: params.Artist, Album: params.Album, Liked: params.Liked}
	tracks := sel.Apply(catalog)

	if params.SortBy != "" {
		order := library.SortOrder(strings.ToLower(params.SortBy))
		switch order {
		case library.SortByTitle, library.SortByAdded, library.SortByPlays:
			tracks = library.SortTracks(tracks, order)
		default:
			fmt.Fprintf(stderr, "Unknown sort order %q (use title, added or plays)\n", params.SortBy)
			return 1
		}
	}

	if params.Count {
		fmt.Fprintf(stdout, "%d\n", len(tracks))
		return 0
	}
	if len(tracks) == 0 {
		fmt.Fprintln(stdout, "No tracks found")
		return 0
	}
	if params.Limit > 0 && params.Limit < len(tracks) {
		tracks = tracks[:params.Limit]
	}

	if params.JSON {
		data, err := json.MarshalIndent(tracks, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "Error marshaling JSON: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, string(data))
		return 0
	}

	RenderTable(stdout, tracks, params.Long, getTerminalWidth())
	return 0
}

func printNames(stdout io.Writer, names []string) int {
	for _, name := range names {
		fmt.Fprintln(stdout, name)
	}
	return 0
}

// getTerminalWidth returns the terminal width, or a default if unavailable
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120
	}
	return width
}

// RenderTable renders tracks as a table no wider than width.
func RenderTable(stdout io.Writer, tracks []library.Track, long bool, width int) {
	t := table.NewWriter()
	t.SetOutputMirror(stdout)
	t.SetStyle(table.StyleLight)
	t.SetAllowedRowLength(width)

	header := table.Row{"ID", "", "Title", "Artist", "Album"}
	if long {
		header = append(header, "Year", "Plays", "Length", "Location")
	}
	t.AppendHeader(header)

	// ID=8, like=1, borders/padding ~16
	fixed := 8 + 1 + 16
	if long {
		fixed += 4 + 5 + 7 + 6
	}
	textWidth := max(width-fixed, 30)
	titleWidth := textWidth * 2 / 5
	artistWidth := textWidth / 4
	albumWidth := textWidth / 5
	locationWidth := textWidth - titleWidth - artistWidth - albumWidth

	for _, tr := range tracks {
		like := ""
		if tr.Liked {
			like = "♥"
		}
		row := table.Row{
			shortID(tr.ID),
			like,
			common.Truncate(tr.Title, titleWidth),
			common.Truncate(tr.Artist, artistWidth),
			common.Truncate(tr.Album, albumWidth),
		}
		if long {
			length := ""
			if tr.Duration > 0 {
				length = common.FormatDuration(tr.Duration)
			}
			row = append(row, tr.Year, tr.PlayCount, length, common.TruncateLeft(tr.PlayableLocator(), locationWidth))
		}
		t.AppendRow(row)
	}

	t.Render()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
