package vpath

import (
	"path"
	"strings"

	"github.com/pkg/errors"
)

const (
	Separator = "/"
	Root      = "/"
	PathMax   = 4096
)

// Normalizer turns an arbitrary path into its canonical absolute form.
type Normalizer interface {
	Normalize(p string) (string, error)
}

type NormalizerFunc func(p string) (string, error)

func (fn NormalizerFunc) Normalize(p string) (string, error) {
	return fn(p)
}

// SymlinkResolver rewrites a lexically clean absolute path into its
// symlink-free equivalent.
type SymlinkResolver func(p string) (string, error)

type Cleaner struct {
	workdir func() string
	resolve SymlinkResolver
}

type CleanerOptionFunc func(c *Cleaner)

func WithWorkdir(fn func() string) CleanerOptionFunc {
	return func(c *Cleaner) {
		c.workdir = fn
	}
}

func WithSymlinkResolver(resolve SymlinkResolver) CleanerOptionFunc {
	return func(c *Cleaner) {
		c.resolve = resolve
	}
}

// Normalize implements Normalizer.
func (c *Cleaner) Normalize(p string) (string, error) {
	if p == "" {
		return "", errors.Wrap(ErrInvalidPath, "empty path")
	}

	if strings.IndexByte(p, 0) != -1 {
		return "", errors.Wrapf(ErrInvalidPath, "path '%q' contains a nul byte", p)
	}

	if !IsAbs(p) {
		p = path.Join(c.workdir(), p)
	}

	p = path.Clean(p)

	if !IsAbs(p) {
		return "", errors.Wrapf(ErrInvalidPath, "could not make path '%s' absolute", p)
	}

	if c.resolve != nil {
		resolved, err := c.resolve(p)
		if err != nil {
			return "", errors.Wrapf(ErrInvalidPath, "could not resolve symlinks of '%s': %s", p, err)
		}

		p = path.Clean(resolved)
	}

	if len(p) >= PathMax {
		return "", errors.Wrapf(ErrInvalidPath, "path exceeds %d bytes", PathMax)
	}

	return p, nil
}

func NewCleaner(funcs ...CleanerOptionFunc) *Cleaner {
	c := &Cleaner{
		workdir: func() string { return Root },
	}
	for _, fn := range funcs {
		fn(c)
	}
	return c
}

var _ Normalizer = &Cleaner{}

var defaultCleaner = NewCleaner()

// Normalize cleans p with the default working directory ("/").
func Normalize(p string) (string, error) {
	return defaultCleaner.Normalize(p)
}

func IsAbs(p string) bool {
	return strings.HasPrefix(p, Separator)
}

func IsRoot(p string) bool {
	return p == Root
}
