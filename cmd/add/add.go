package add

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/glass/cmd/common"
	"github.com/gigurra/glass/cmd/library"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type Params struct {
	Paths  []string `pos:"true" optional:"true" help:"Audio files or directories to import (directories are walked recursively)"`
	URL    string   `long:"url" optional:"true" help:"Add a web stream or remote file instead of local files"`
	Title  string   `long:"title" optional:"true" help:"Title for a --url track"`
	Artist string   `long:"artist" optional:"true" help:"Artist for a --url track"`
	Album  string   `long:"album" optional:"true" help:"Album for a --url track"`
	DryRun bool     `short:"n" long:"dry-run" help:"Show what would be imported without saving"`
}

func Cmd() *cobra.Command {
	return boa.CmdT[Params]{
		Use:         "import",
		Aliases:     []string{"add"},
		Short:       "Import audio files into the library",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *Params, cmd *cobra.Command, args []string) {
			importer := library.NewImporter(common.CoverDir())
			if err := Run(params, common.LibraryPath(), importer, os.Stdout, os.Stderr); err != nil {
				fmt.Fprintf(os.Stderr, "import: %v\n", err)
				os.Exit(1)
			}
		},
	}.ToCobra()
}

// Run imports into the library stored at libPath. Files that fail to import
// are reported on stderr; the rest are still saved.
func Run(params *Params, libPath string, importer *library.Importer, stdout, stderr io.Writer) error {
	if len(params.Paths) == 0 && params.URL == "" {
		return errors.New("nothing to import, pass files, directories or --url")
	}

	catalog, err := library.Load(libPath)
	if err != nil {
		return fmt.Errorf("loading library: %w", err)
	}

	var tracks []library.Track
	if params.URL != "" {
		tracks = append(tracks, webTrack(params))
	}

	imported, importErr := importer.ImportPaths(params.Paths, catalog.HasPath)
	if importErr != nil {
		fmt.Fprintf(stderr, "Some files were not imported:\n%v\n", importErr)
	}
	tracks = append(tracks, imported...)

	if err := catalog.Add(tracks...); err != nil {
		return err
	}
	for _, t := range tracks {
		fmt.Fprintf(stdout, "+ %s  %s\n", t.ID[:min(8, len(t.ID))], t.Label())
	}
	fmt.Fprintf(stdout, "Imported %d track(s)\n", len(tracks))

	if params.DryRun || len(tracks) == 0 {
		return nil
	}
	return library.Save(libPath, catalog)
}

func webTrack(params *Params) library.Track {
	title := params.Title
	if title == "" {
		title = params.URL[strings.LastIndex(params.URL, "/")+1:]
	}
	artist := params.Artist
	if artist == "" {
		artist = library.DefaultArtist
	}
	album := params.Album
	if album == "" {
		album = library.DefaultAlbum
	}
	now := time.Now()
	return library.Track{
		ID:      uuid.NewString(),
		Title:   title,
		Artist:  artist,
		Album:   album,
		Year:    strconv.Itoa(now.Year()),
		Locator: params.URL,
		Source:  library.SourceWeb,
		AddedAt: now,
	}
}
