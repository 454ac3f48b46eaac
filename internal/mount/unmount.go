package mount

import (
	"context"
	"log/slog"

	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/bornholm/mountns/internal/metrics"
	"github.com/pkg/errors"
)

// Unmount detaches the entry whose path is exactly target.
//
// The entry is always removed once found. A failing backend release is
// reported to the caller but does not restore the entry.
func (r *Registry) Unmount(ctx context.Context, target string) (err error) {
	defer func() {
		observe(ctx, OperationUnmount, err, slog.String("target", target))
	}()

	r.mu.Lock()
	defer r.mu.Unlock()

	normalized, err := r.normalize(target)
	if err != nil {
		return errors.WithStack(err)
	}

	idx := r.indexOf(normalized)
	if idx == -1 {
		return errors.Wrapf(ErrNotFound, "'%s' is not a mount point", normalized)
	}

	entry := r.entries[idx]

	last := r.count - 1
	r.entries[idx] = r.entries[last]
	r.entries[last] = Entry{}
	r.count--

	metrics.Mounts.Dec()

	if err := entry.Backend.Release(ctx); err != nil {
		return errors.Wrapf(err, "could not release backend '%s' mounted on '%s'", filesystem.Describe(entry.Backend), normalized)
	}

	return nil
}
