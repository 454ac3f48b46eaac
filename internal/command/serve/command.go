package serve

import (
	"log/slog"

	"github.com/bornholm/mountns/internal/command/common"
	"github.com/bornholm/mountns/internal/config"
	"github.com/bornholm/mountns/internal/setup"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

const flagAddress = "address"

func Command() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the mount table inspection api",
		Flags: common.WithCommonFlags(
			altsrc.NewStringFlag(&cli.StringFlag{
				Name:    flagAddress,
				Aliases: []string{"a"},
				Usage:   "Listening address, overrides MOUNTNS_HTTP_ADDRESS",
			}),
		),
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			conf, err := config.Parse()
			if err != nil {
				return errors.Wrap(err, "could not parse config")
			}

			if address := cCtx.String(flagAddress); address != "" {
				conf.HTTP.Address = address
			}

			if cCtx.IsSet(common.FlagCapacity) {
				conf.Mount.Capacity = cCtx.Int(common.FlagCapacity)
			}

			mounts, err := common.ParseMounts(cCtx.StringSlice(common.FlagMount))
			if err != nil {
				return errors.WithStack(err)
			}

			if conf.Mount.Table == nil {
				conf.Mount.Table = make(map[string]string, len(mounts))
			}

			for target, dsn := range mounts {
				conf.Mount.Table[target] = dsn
			}

			server, err := setup.NewHTTPServerFromConfig(ctx, conf)
			if err != nil {
				return errors.Wrap(err, "could not setup http server")
			}

			slog.InfoContext(ctx, "starting server", slog.String("address", conf.HTTP.Address))

			if err := server.Run(ctx); err != nil {
				return errors.Wrap(err, "could not run server")
			}

			return nil
		},
	}
}
