//go:build unix

package command

import "github.com/bornholm/mountns/internal/mount"

// exitCode reports the errno matching err, so that shell scripts can tell
// failures apart. Errors without a matching errno exit with 1.
func exitCode(err error) int {
	if errno, ok := mount.LookupErrno(err); ok && errno != 0 {
		return int(errno)
	}

	return 1
}
