package mount

import (
	"context"
	"os"

	"github.com/pkg/errors"
)

// Stat resolves p and describes it through its owning backend.
func (r *Registry) Stat(ctx context.Context, p string) (os.FileInfo, error) {
	backend, suffix, err := r.Resolve(ctx, p)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	fileInfo, err := backend.Stat(ctx, suffix)
	if err != nil {
		return nil, errors.Wrapf(err, "could not stat '%s'", p)
	}

	return fileInfo, nil
}
