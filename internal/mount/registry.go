// Package mount implements the mount table: a bounded registry binding
// absolute paths of the unified namespace to the storage backends serving
// them.
//
// Every read or write of the table happens under a single mutex. Resolution
// picks the longest mount point that is a path-boundary prefix of the
// normalized input, so a mount at /a/b shadows /a for everything below /a/b
// and never matches /a/bcd.
package mount

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/bornholm/mountns/internal/atexit"
	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/bornholm/mountns/internal/metrics"
	"github.com/bornholm/mountns/internal/vpath"
	"github.com/pkg/errors"
)

const (
	DefaultCapacity = 8

	exitHookKey = "mount.table"
)

const (
	OperationResolve = "resolve"
	OperationMount   = "mount"
	OperationUnmount = "unmount"
)

// Entry binds a normalized absolute path to a borrowed backend handle. The
// registry never creates nor destroys backends, it only notifies them.
type Entry struct {
	Path    string
	Backend filesystem.Backend
	Flags   uint32
}

type Options struct {
	Capacity      int
	Normalizer    vpath.Normalizer
	ExitRegistrar atexit.Registrar
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Capacity:      DefaultCapacity,
		Normalizer:    vpath.NewCleaner(),
		ExitRegistrar: atexit.Default,
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithCapacity(capacity int) OptionFunc {
	return func(opts *Options) {
		opts.Capacity = capacity
	}
}

func WithNormalizer(normalizer vpath.Normalizer) OptionFunc {
	return func(opts *Options) {
		opts.Normalizer = normalizer
	}
}

func WithExitRegistrar(registrar atexit.Registrar) OptionFunc {
	return func(opts *Options) {
		opts.ExitRegistrar = registrar
	}
}

type Registry struct {
	mu sync.Mutex

	// entries has a fixed length equal to the capacity; live entries occupy
	// the compact range [0, count).
	entries []Entry
	count   int

	exitHookInstalled bool

	normalizer vpath.Normalizer
	exit       atexit.Registrar
}

// Len returns the number of live entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Cap returns the fixed capacity of the table.
func (r *Registry) Cap() int {
	return len(r.entries)
}

// List returns a snapshot of the live entries, in table order.
func (r *Registry) List() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]Entry, r.count)
	copy(entries, r.entries[:r.count])

	return entries
}

func (r *Registry) normalize(p string) (string, error) {
	normalized, err := r.normalizer.Normalize(p)
	if err != nil {
		if errors.Is(err, ErrInvalidPath) {
			return "", errors.WithStack(err)
		}

		return "", errors.Wrapf(ErrInvalidPath, "could not normalize '%s': %s", p, err)
	}

	if !vpath.IsAbs(normalized) {
		return "", errors.Wrapf(ErrInvalidPath, "normalized path '%s' is not absolute", normalized)
	}

	return normalized, nil
}

// indexOf returns the slot holding exactly p, or -1.
// Callers must hold r.mu.
func (r *Registry) indexOf(p string) int {
	for i := 0; i < r.count; i++ {
		if r.entries[i].Path == p {
			return i
		}
	}

	return -1
}

func observe(ctx context.Context, operation string, err error, attrs ...slog.Attr) {
	metrics.ObserveOperation(operation, err)

	if operation == OperationResolve {
		return
	}

	attrs = append(attrs, slog.String("operation", operation))

	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
		slog.LogAttrs(ctx, slog.LevelDebug, "mount table operation failed", attrs...)
		return
	}

	slog.LogAttrs(ctx, slog.LevelDebug, "mount table updated", attrs...)
}

func New(funcs ...OptionFunc) *Registry {
	opts := NewOptions(funcs...)

	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Registry{
		entries:    make([]Entry, capacity),
		normalizer: opts.Normalizer,
		exit:       opts.ExitRegistrar,
	}
}

func clonePath(p string) string {
	return strings.Clone(p)
}
