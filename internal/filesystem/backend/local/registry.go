package local

import (
	"net/url"

	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/bornholm/mountns/internal/filesystem/backend"
)

func init() {
	backend.RegisterBackendFactory("local", FromDSN)
}

// FromDSN creates a backend over a host directory. The host part is kept to
// allow relative paths, ie 'local://./data' or 'local:///srv/data'.
func FromDSN(dsn *url.URL) (filesystem.Backend, error) {
	return New(dsn.Host + "/" + backend.BasePath(dsn)), nil
}
