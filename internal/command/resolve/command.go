package resolve

import (
	"fmt"

	"github.com/bornholm/mountns/internal/command/common"
	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Print the backend and backend relative path serving each given path",
		ArgsUsage: "<path> [path...]",
		Flags:     common.WithCommonFlags(),
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() == 0 {
				return errors.New("at least one path is required")
			}

			registry, err := common.GetRegistry(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			for _, p := range cCtx.Args().Slice() {
				backend, suffix, err := registry.Resolve(cCtx.Context, p)
				if err != nil {
					return errors.Wrapf(err, "could not resolve '%s'", p)
				}

				fmt.Fprintf(cCtx.App.Writer, "%s\t%s\t%s\n", p, filesystem.Describe(backend), suffix)
			}

			return nil
		},
	}
}
