package track

import (
	"fmt"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/glass/cmd/common"
	"github.com/gigurra/glass/cmd/library"
	"github.com/spf13/cobra"
)

func Cmd() *cobra.Command {
	cmd := boa.CmdT[boa.NoParams]{
		Use:   "track",
		Short: "Edit, like, remove and open tracks in the library",
		SubCmds: []*cobra.Command{
			EditCmd(),
			LikeCmd(),
			RmCmd(),
			LyricsCmd(),
			OpenCmd(),
		},
	}.ToCobra()
	cmd.Aliases = []string{"tracks"}
	return cmd
}

// mutate loads the library, applies fn and saves the result if fn succeeded.
func mutate(name string, fn func(c *library.Catalog) error) {
	path := common.LibraryPath()
	catalog, err := library.Load(path)
	if err == nil {
		err = fn(catalog)
	}
	if err == nil {
		err = library.Save(path, catalog)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
		os.Exit(1)
	}
}
