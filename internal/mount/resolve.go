package mount

import (
	"context"
	"log/slog"

	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/bornholm/mountns/internal/vpath"
	"github.com/pkg/errors"
)

// Resolve returns the backend owning p and the fragment of p relative to
// that backend's root. The suffix of a path equal to its mount point is "/".
func (r *Registry) Resolve(ctx context.Context, p string) (backend filesystem.Backend, suffix string, err error) {
	defer func() {
		observe(ctx, OperationResolve, err, slog.String("path", p))
	}()

	return r.resolve(p)
}

func (r *Registry) resolve(p string) (filesystem.Backend, string, error) {
	normalized, err := r.normalize(p)
	if err != nil {
		return nil, "", errors.WithStack(err)
	}

	r.mu.Lock()
	backend, suffix := r.longestMatch(normalized)
	r.mu.Unlock()

	if backend == nil {
		return nil, "", errors.Wrapf(ErrNotFound, "no mount point covers '%s'", normalized)
	}

	return backend, suffix, nil
}

// longestMatch scans the table for the longest mount point covering p.
// Callers must hold r.mu.
func (r *Registry) longestMatch(p string) (filesystem.Backend, string) {
	var (
		matchLen int
		backend  filesystem.Backend
		suffix   string
	)

	for i := 0; i < r.count; i++ {
		entry := &r.entries[i]

		length := len(entry.Path)
		if length <= matchLen {
			continue
		}

		switch {
		case vpath.IsRoot(entry.Path):
			suffix = p

		case isPathPrefix(entry.Path, p):
			suffix = p[length:]
			if suffix == "" {
				suffix = vpath.Root
			}

		default:
			continue
		}

		matchLen = length
		backend = entry.Backend
	}

	return backend, suffix
}

// isPathPrefix reports whether prefix is p itself or one of its ancestors.
// A mount at /ab must never match /abcd.
func isPathPrefix(prefix, p string) bool {
	if len(p) < len(prefix) || p[:len(prefix)] != prefix {
		return false
	}

	return len(p) == len(prefix) || p[len(prefix)] == '/'
}
