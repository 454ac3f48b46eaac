package mount

import (
	"errors"

	"github.com/bornholm/mountns/internal/vpath"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidPath     = vpath.ErrInvalidPath
	ErrNotFound        = errors.New("no such mount")
	ErrNotADirectory   = errors.New("not a directory")
	ErrExhausted       = errors.New("mount table exhausted")
	ErrAlreadyMounted  = errors.New("already mounted")
	// ErrOutOfMemory is kept for errno translation parity: Go allocation
	// failures abort the process instead of surfacing an error.
	ErrOutOfMemory    = errors.New("out of memory")
	ErrNotInitialized = errors.New("mount table not initialized")
)
