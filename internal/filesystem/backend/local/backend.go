package local

import (
	"context"
	"os"

	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// New returns a backend serving the host directory basePath.
func New(basePath string) *filesystem.SessionBackend {
	dial := func(ctx context.Context) (filesystem.Session, error) {
		fileInfo, err := os.Stat(basePath)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		if !fileInfo.IsDir() {
			return nil, errors.Errorf("'%s' is not a directory", basePath)
		}

		fs := afero.NewReadOnlyFs(afero.NewBasePathFs(afero.NewOsFs(), basePath))

		return filesystem.NewAferoSession(fs), nil
	}

	return filesystem.NewSessionBackend("local://"+basePath, dial)
}
