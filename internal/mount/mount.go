package mount

import (
	"context"
	"log/slog"

	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/bornholm/mountns/internal/metrics"
	"github.com/bornholm/mountns/internal/vpath"
	"github.com/pkg/errors"
)

// Mount attaches backend at target.
//
// The table is left untouched on every failure: an entry only becomes
// visible once the backend accepted the mount notification.
func (r *Registry) Mount(ctx context.Context, backend filesystem.Backend, target string) (err error) {
	defer func() {
		observe(ctx, OperationMount, err, slog.String("target", target))
	}()

	if backend == nil {
		return errors.Wrap(ErrInvalidArgument, "backend must not be nil")
	}

	if target == "" {
		return errors.Wrap(ErrInvalidArgument, "target must not be empty")
	}

	target, err = r.normalize(target)
	if err != nil {
		return errors.WithStack(err)
	}

	// The mount point is checked without holding the table lock: resolve
	// takes it itself.
	if !vpath.IsRoot(target) {
		if err := r.checkMountPoint(ctx, target); err != nil {
			return errors.WithStack(err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.exitHookInstalled {
		r.exit.RegisterOnce(exitHookKey, r.Cleanup)
		r.exitHookInstalled = true
	}

	if r.count == len(r.entries) {
		return errors.Wrapf(ErrExhausted, "could not mount '%s', %d entries in use", target, r.count)
	}

	if r.indexOf(target) != -1 {
		return errors.Wrapf(ErrAlreadyMounted, "'%s'", target)
	}

	if err := backend.Mount(ctx, target); err != nil {
		return errors.Wrapf(err, "backend '%s' refused mount on '%s'", filesystem.Describe(backend), target)
	}

	r.entries[r.count] = Entry{
		Path:    clonePath(target),
		Backend: backend,
		Flags:   0,
	}
	r.count++

	metrics.Mounts.Inc()

	return nil
}

// checkMountPoint ensures target is a directory on the backend currently
// serving it, if any.
func (r *Registry) checkMountPoint(ctx context.Context, target string) error {
	parent, suffix, err := r.resolve(target)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}

		return errors.WithStack(err)
	}

	fileInfo, err := parent.Stat(ctx, suffix)
	if err != nil {
		return errors.Wrapf(err, "could not stat mount point '%s'", target)
	}

	if !fileInfo.IsDir() {
		return errors.Wrapf(ErrNotADirectory, "mount point '%s'", target)
	}

	return nil
}
