package stat

import (
	"fmt"
	"time"

	"github.com/bornholm/mountns/internal/command/common"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

const flagHuman = "human"

func Command() *cli.Command {
	return &cli.Command{
		Name:      "stat",
		Usage:     "Describe each given path through the backend serving it",
		ArgsUsage: "<path> [path...]",
		Flags: common.WithCommonFlags(
			&cli.BoolFlag{
				Name:    flagHuman,
				Aliases: []string{"H"},
				Usage:   "Print sizes and modification times in a human readable form",
			},
		),
		Action: func(cCtx *cli.Context) error {
			if cCtx.NArg() == 0 {
				return errors.New("at least one path is required")
			}

			registry, err := common.GetRegistry(cCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			for _, p := range cCtx.Args().Slice() {
				fileInfo, err := registry.Stat(cCtx.Context, p)
				if err != nil {
					return errors.Wrapf(err, "could not stat '%s'", p)
				}

				size := fmt.Sprintf("%d", fileInfo.Size())
				modTime := fileInfo.ModTime().Format(time.RFC3339)

				if cCtx.Bool(flagHuman) {
					size = humanize.IBytes(uint64(fileInfo.Size()))
					modTime = humanize.Time(fileInfo.ModTime())
				}

				fmt.Fprintf(cCtx.App.Writer, "%s\t%s\t%s\t%s\n", p, fileInfo.Mode(), size, modTime)
			}

			return nil
		},
	}
}
