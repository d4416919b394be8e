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

type LikeParams struct {
	IDs []string `pos:"true" help:"Track ids or unique id prefixes"`
}

func LikeCmd() *cobra.Command {
	return boa.CmdT[LikeParams]{
		Use:         "like",
		Short:       "Toggle the liked flag of tracks",
		ParamEnrich: common.DefaultParamEnricher(),
		RunFunc: func(params *LikeParams, cmd *cobra.Command, args []string) {
			mutate("like", func(c *library.Catalog) error { return RunLike(params, c, os.Stdout) })
		},
	}.ToCobra()
}

func RunLike(params *LikeParams, catalog *library.Catalog, stdout io.Writer) error {
	for _, ref := range params.IDs {
		t, err := catalog.Resolve(ref)
		if err != nil {
			return err
		}
		t, err = catalog.ToggleLike(t.ID)
		if err != nil {
			return err
		}
		mark := "♡"
		if t.Liked {
			mark = "♥"
		}
		fmt.Fprintf(stdout, "%s %s\n", mark, t.Label())
	}
	return nil
}
