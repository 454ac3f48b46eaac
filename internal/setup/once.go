package setup

import (
	"context"
	"sync"

	"github.com/bornholm/mountns/internal/config"
)

type fromConfigFunc[T any] func(ctx context.Context, conf *config.Config) (T, error)

// createFromConfigOnce memoizes the result of fn for each configuration.
func createFromConfigOnce[T any](fn fromConfigFunc[T]) fromConfigFunc[T] {
	type result struct {
		value T
		err   error
	}

	var (
		mu      sync.Mutex
		results = make(map[*config.Config]*result)
	)

	return func(ctx context.Context, conf *config.Config) (T, error) {
		mu.Lock()
		defer mu.Unlock()

		if r, exists := results[conf]; exists {
			return r.value, r.err
		}

		value, err := fn(ctx, conf)
		results[conf] = &result{value, err}

		return value, err
	}
}
