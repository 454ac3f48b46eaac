//go:build unix

package mount

import (
	"os"
	"testing"

	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

func TestErrno(t *testing.T) {
	type testCase struct {
		Err      error
		Expected unix.Errno
	}

	testCases := []testCase{
		{Err: nil, Expected: 0},
		{Err: errors.Wrap(ErrNotFound, "'/x'"), Expected: unix.ENOENT},
		{Err: errors.WithStack(ErrExhausted), Expected: unix.ENOMEM},
		{Err: ErrOutOfMemory, Expected: unix.ENOMEM},
		{Err: errors.WithStack(ErrAlreadyMounted), Expected: unix.EEXIST},
		{Err: errors.WithStack(ErrNotADirectory), Expected: unix.ENOTDIR},
		{Err: ErrInvalidArgument, Expected: unix.EINVAL},
		{Err: errors.Wrap(ErrInvalidPath, "empty"), Expected: unix.EINVAL},
		{Err: errors.WithStack(filesystem.ErrNotMounted), Expected: unix.ENODEV},
		{Err: errors.Wrap(unix.EROFS, "backend refused"), Expected: unix.EROFS},
		{Err: &os.PathError{Op: "stat", Path: "/x", Err: os.ErrNotExist}, Expected: unix.ENOENT},
		{Err: errors.WithStack(os.ErrPermission), Expected: unix.EACCES},
		{Err: errors.New("unexpected"), Expected: unix.EIO},
	}

	for _, tc := range testCases {
		if e, g := tc.Expected, Errno(tc.Err); e != g {
			t.Errorf("Errno(%v): expected %v, got %v", tc.Err, e, g)
		}
	}
}

func TestLookupErrno(t *testing.T) {
	if _, ok := LookupErrno(errors.New("unexpected")); ok {
		t.Errorf("LookupErrno(unexpected): expected no errno")
	}

	if _, ok := LookupErrno(nil); ok {
		t.Errorf("LookupErrno(nil): expected no errno")
	}

	errno, ok := LookupErrno(errors.Wrap(ErrAlreadyMounted, "'/data'"))
	if !ok {
		t.Fatalf("LookupErrno(ErrAlreadyMounted): expected an errno")
	}

	if e, g := unix.EEXIST, errno; e != g {
		t.Errorf("LookupErrno(ErrAlreadyMounted): expected %v, got %v", e, g)
	}
}
