package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

const Prefix = "MOUNTNS_"

type Config struct {
	Logger Logger `envPrefix:"LOGGER_"`
	HTTP   HTTP   `envPrefix:"HTTP_"`
	Mount  Mount  `envPrefix:"MOUNT_"`
}

func Parse() (*Config, error) {
	return ParseWithEnvironment(nil)
}

// ParseWithEnvironment parses the configuration from the given environment,
// or from the process environment if environ is nil.
func ParseWithEnvironment(environ map[string]string) (*Config, error) {
	conf, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix:      Prefix,
		Environment: environ,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &conf, nil
}
