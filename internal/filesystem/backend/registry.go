package backend

import (
	"net/url"
	"sort"

	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/pkg/errors"
)

var backendFactories = make(map[string]BackendFactory, 0)

type BackendFactory func(url *url.URL) (filesystem.Backend, error)

func RegisterBackendFactory(scheme string, factory BackendFactory) {
	backendFactories[scheme] = factory
}

// Schemes returns the registered DSN schemes, sorted.
func Schemes() []string {
	schemes := make([]string, 0, len(backendFactories))
	for scheme := range backendFactories {
		schemes = append(schemes, scheme)
	}

	sort.Strings(schemes)

	return schemes
}

func New(dsn string) (filesystem.Backend, error) {
	url, err := url.Parse(dsn)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	factory, exists := backendFactories[url.Scheme]
	if !exists {
		return nil, errors.Wrapf(ErrSchemeNotRegistered, "no driver associated with scheme '%s'", url.Scheme)
	}

	store, err := factory(url)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return store, nil
}
