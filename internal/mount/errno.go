//go:build unix

package mount

import (
	"os"

	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Errno translates a mount table error into the code reported by the
// syscall layer. A nil error maps to 0, an unknown one to EIO.
func Errno(err error) unix.Errno {
	if err == nil {
		return 0
	}

	if errno, ok := LookupErrno(err); ok {
		return errno
	}

	return unix.EIO
}

// LookupErrno returns the code matching err and whether err carries one,
// either as a mount table error or as a wrapped errno.
func LookupErrno(err error) (unix.Errno, bool) {
	if err == nil {
		return 0, false
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return unix.ENOENT, true
	case errors.Is(err, ErrExhausted), errors.Is(err, ErrOutOfMemory):
		return unix.ENOMEM, true
	case errors.Is(err, ErrAlreadyMounted):
		return unix.EEXIST, true
	case errors.Is(err, ErrNotADirectory):
		return unix.ENOTDIR, true
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, ErrInvalidPath):
		return unix.EINVAL, true
	case errors.Is(err, filesystem.ErrNotMounted):
		return unix.ENODEV, true
	}

	var errno unix.Errno
	if errors.As(err, &errno) {
		return errno, true
	}

	switch {
	case errors.Is(err, os.ErrNotExist):
		return unix.ENOENT, true
	case errors.Is(err, os.ErrPermission):
		return unix.EACCES, true
	}

	return 0, false
}
