package common

import (
	"strings"

	"github.com/bornholm/mountns/internal/mount"
	"github.com/bornholm/mountns/internal/setup"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

const (
	FlagMount    = "mount"
	FlagCapacity = "capacity"
)

var (
	flagMount = altsrc.NewStringSliceFlag(&cli.StringSliceFlag{
		Name:    FlagMount,
		Aliases: []string{"m"},
		EnvVars: []string{"MOUNTNS_CLI_MOUNT"},
		Usage:   "Mount a backend, as 'target=dsn' (ie '/data=local:///srv/data'). Can be repeated",
	})
	flagCapacity = altsrc.NewIntFlag(&cli.IntFlag{
		Name:    FlagCapacity,
		EnvVars: []string{"MOUNTNS_CLI_CAPACITY"},
		Value:   mount.DefaultCapacity,
		Usage:   "Maximum number of simultaneous mounts",
	})
)

func WithCommonFlags(flags ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		flagMount,
		flagCapacity,
	}, flags...)
}

// ParseMounts parses 'target=dsn' pairs into a mount table.
func ParseMounts(rawMounts []string) (map[string]string, error) {
	table := make(map[string]string, len(rawMounts))

	for _, raw := range rawMounts {
		target, dsn, found := strings.Cut(raw, "=")
		if !found || target == "" || dsn == "" {
			return nil, errors.Wrapf(mount.ErrInvalidArgument, "could not parse mount '%s', expected 'target=dsn'", raw)
		}

		if _, exists := table[target]; exists {
			return nil, errors.Wrapf(mount.ErrAlreadyMounted, "mount '%s' declared twice", target)
		}

		table[target] = dsn
	}

	return table, nil
}

// GetRegistry initializes the process-wide mount table from the common
// flags.
func GetRegistry(cCtx *cli.Context) (*mount.Registry, error) {
	table, err := ParseMounts(cCtx.StringSlice(FlagMount))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	registry := mount.Init(mount.WithCapacity(cCtx.Int(FlagCapacity)))

	if err := setup.MountTable(cCtx.Context, registry, table); err != nil {
		return nil, errors.WithStack(err)
	}

	return registry, nil
}
