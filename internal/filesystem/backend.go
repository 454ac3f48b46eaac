package filesystem

import (
	"context"
	"os"
)

// Backend is a storage implementation attached somewhere in the unified
// namespace.
//
// Mount and Release are invoked while the mount table lock is held: they must
// return promptly and never call back into the mount table. Connection setup
// belongs to Opener.Open or to the first Stat.
type Backend interface {
	// Mount notifies the backend that it is being attached at target.
	Mount(ctx context.Context, target string) error
	// Stat describes name, relative to the backend root.
	Stat(ctx context.Context, name string) (os.FileInfo, error)
	// Release notifies the backend that one of its mounts was removed.
	Release(ctx context.Context) error
}

// Opener is implemented by backends holding a connection that can be
// established ahead of a mount.
type Opener interface {
	Open(ctx context.Context) error
	// Close releases a connection opened by Open if the backend was never
	// mounted.
	Close() error
}

type unwrapper interface {
	Unwrap() Backend
}

func asOpener(b Backend) (Opener, bool) {
	for b != nil {
		if opener, ok := b.(Opener); ok {
			return opener, true
		}

		u, ok := b.(unwrapper)
		if !ok {
			return nil, false
		}

		b = u.Unwrap()
	}

	return nil, false
}

// Open establishes the connection of b, if it has one.
func Open(ctx context.Context, b Backend) error {
	opener, ok := asOpener(b)
	if !ok {
		return nil
	}

	return opener.Open(ctx)
}

// Close releases a connection opened by Open on a backend that could not be
// mounted.
func Close(b Backend) error {
	opener, ok := asOpener(b)
	if !ok {
		return nil
	}

	return opener.Close()
}
