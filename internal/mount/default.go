package mount

import (
	"context"
	"os"
	"sync"
	"sync/atomic"

	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/pkg/errors"
)

var (
	initOnce        sync.Once
	defaultRegistry atomic.Pointer[Registry]
)

// Init creates the process-wide mount table. Only the first call applies its
// options; later calls return the existing table.
func Init(funcs ...OptionFunc) *Registry {
	initOnce.Do(func() {
		defaultRegistry.Store(New(funcs...))
	})

	return defaultRegistry.Load()
}

// Default returns the process-wide mount table.
func Default() (*Registry, error) {
	registry := defaultRegistry.Load()
	if registry == nil {
		return nil, errors.WithStack(ErrNotInitialized)
	}

	return registry, nil
}

func Resolve(ctx context.Context, p string) (filesystem.Backend, string, error) {
	registry, err := Default()
	if err != nil {
		return nil, "", errors.WithStack(err)
	}

	return registry.Resolve(ctx, p)
}

func Mount(ctx context.Context, backend filesystem.Backend, target string) error {
	registry, err := Default()
	if err != nil {
		return errors.WithStack(err)
	}

	return registry.Mount(ctx, backend, target)
}

func Unmount(ctx context.Context, target string) error {
	registry, err := Default()
	if err != nil {
		return errors.WithStack(err)
	}

	return registry.Unmount(ctx, target)
}

func Stat(ctx context.Context, p string) (os.FileInfo, error) {
	registry, err := Default()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return registry.Stat(ctx, p)
}
