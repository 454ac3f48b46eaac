package memory

import (
	"net/url"

	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/bornholm/mountns/internal/filesystem/backend"
)

func init() {
	backend.RegisterBackendFactory("memory", FromDSN)
}

const (
	paramDirs  = "dirs"
	paramFiles = "files"
)

// FromDSN creates an in-memory backend, ie:
//
//	memory://scratch?dirs=/data,/etc&files=/etc/passwd
func FromDSN(dsn *url.URL) (filesystem.Backend, error) {
	params := backend.NewParams(dsn)

	backend, err := New(dsn.Host, params.List(paramDirs), params.List(paramFiles))
	if err != nil {
		return nil, err
	}

	return backend, nil
}
