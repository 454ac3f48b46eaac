package memory

import (
	"context"
	"os"
	"path"

	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// New returns a backend serving an in-memory tree. The tree is shared by
// every session of the backend.
func New(name string, dirs []string, files []string) (*filesystem.SessionBackend, error) {
	fs := afero.NewMemMapFs()

	for _, d := range dirs {
		if err := fs.MkdirAll(d, os.ModePerm); err != nil {
			return nil, errors.Wrapf(err, "could not create directory '%s'", d)
		}
	}

	for _, f := range files {
		if err := fs.MkdirAll(path.Dir(f), os.ModePerm); err != nil {
			return nil, errors.Wrapf(err, "could not create directory '%s'", path.Dir(f))
		}

		if err := afero.WriteFile(fs, f, nil, 0o644); err != nil {
			return nil, errors.Wrapf(err, "could not create file '%s'", f)
		}
	}

	if name == "" {
		name = "memory"
	}

	dial := func(ctx context.Context) (filesystem.Session, error) {
		return filesystem.NewAferoSession(fs), nil
	}

	return filesystem.NewSessionBackend("memory://"+name, dial), nil
}
