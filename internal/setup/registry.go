package setup

import (
	"context"
	"log/slog"
	"sort"

	"github.com/bornholm/mountns/internal/config"
	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/bornholm/mountns/internal/filesystem/backend"
	"github.com/bornholm/mountns/internal/mount"
	"github.com/pkg/errors"

	_ "github.com/bornholm/mountns/internal/filesystem/backend/ftp"
	_ "github.com/bornholm/mountns/internal/filesystem/backend/git"
	_ "github.com/bornholm/mountns/internal/filesystem/backend/local"
	_ "github.com/bornholm/mountns/internal/filesystem/backend/memory"
	_ "github.com/bornholm/mountns/internal/filesystem/backend/minio"
	_ "github.com/bornholm/mountns/internal/filesystem/backend/sftp"
	_ "github.com/bornholm/mountns/internal/filesystem/backend/smb"
	_ "github.com/bornholm/mountns/internal/filesystem/backend/webdav"
)

var getRegistryFromConfig = createFromConfigOnce(NewRegistryFromConfig)

// NewRegistryFromConfig initializes the process-wide mount table and mounts
// the configured backends on it.
func NewRegistryFromConfig(ctx context.Context, conf *config.Config) (*mount.Registry, error) {
	registry := mount.Init(mount.WithCapacity(conf.Mount.Capacity))

	if err := MountTable(ctx, registry, conf.Mount.Table); err != nil {
		return nil, errors.WithStack(err)
	}

	return registry, nil
}

// MountTable mounts every target=dsn pair of table on registry. Shorter
// targets are mounted first so that parent mounts exist when their children
// mount points are checked.
func MountTable(ctx context.Context, registry *mount.Registry, table map[string]string) error {
	targets := make([]string, 0, len(table))
	for target := range table {
		targets = append(targets, target)
	}

	sort.Slice(targets, func(i, j int) bool {
		if len(targets[i]) != len(targets[j]) {
			return len(targets[i]) < len(targets[j])
		}

		return targets[i] < targets[j]
	})

	for _, target := range targets {
		dsn := table[target]

		b, err := NewBackend(ctx, dsn)
		if err != nil {
			return errors.Wrapf(err, "could not create backend for '%s'", target)
		}

		if err := filesystem.Open(ctx, b); err != nil {
			return errors.Wrapf(err, "could not open backend for '%s'", target)
		}

		if err := registry.Mount(ctx, b, target); err != nil {
			closeBackend(ctx, b)
			return errors.Wrapf(err, "could not mount '%s' on '%s'", filesystem.Describe(b), target)
		}

		slog.InfoContext(ctx, "backend mounted", slog.String("target", target), slog.String("backend", filesystem.Describe(b)))
	}

	return nil
}

// NewBackend creates the backend described by dsn, decorated with debug
// logging.
func NewBackend(ctx context.Context, dsn string) (filesystem.Backend, error) {
	b, err := backend.New(dsn)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return filesystem.NewLogger(b, filesystem.SlogLogger(context.WithoutCancel(ctx))), nil
}

func closeBackend(ctx context.Context, b filesystem.Backend) {
	if err := filesystem.Close(b); err != nil {
		slog.WarnContext(ctx, "could not close backend", slog.String("backend", filesystem.Describe(b)), slog.Any("error", errors.WithStack(err)))
	}
}
