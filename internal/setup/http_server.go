package setup

import (
	"context"

	"github.com/bornholm/mountns/internal/config"
	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/bornholm/mountns/internal/http"
	"github.com/bornholm/mountns/internal/http/handler/api"
	"github.com/bornholm/mountns/internal/http/handler/metrics"
	"github.com/bornholm/mountns/internal/http/middleware/ratelimit"
	"github.com/pkg/errors"
)

func NewHTTPServerFromConfig(ctx context.Context, conf *config.Config) (*http.Server, error) {
	registry, err := getRegistryFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.Wrap(err, "could not configure mount table from config")
	}

	newBackend := func(dsn string) (filesystem.Backend, error) {
		return NewBackend(ctx, dsn)
	}

	options := []http.OptionFunc{
		http.WithAddress(conf.HTTP.Address),
		http.WithBaseURL(conf.HTTP.BaseURL),
		http.WithAllowedOrigins(conf.HTTP.CORS.AllowedOrigins...),
		http.WithMount("/api/v1/", api.NewHandler(registry, newBackend)),
		http.WithMount("/metrics/", metrics.NewHandler()),
	}

	if auth := conf.HTTP.Auth; auth.Username != "" && auth.Password != "" {
		options = append(options, http.WithBasicAuth(auth.Username, auth.Password))
	}

	if rl := conf.HTTP.RateLimit; rl.Enabled {
		options = append(options, http.WithRateLimit(ratelimit.Options{
			Interval:  rl.Interval,
			MaxBurst:  rl.Burst,
			CacheSize: rl.CacheSize,
			CacheTTL:  rl.CacheTTL,
		}))
	}

	server := http.NewServer(options...)

	return server, nil
}
