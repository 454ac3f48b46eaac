package filesystem

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Session is a live handle on a storage backend, opened on first mount and
// closed when the last mount is released.
type Session interface {
	Stat(ctx context.Context, name string) (os.FileInfo, error)
	Close() error
}

type DialFunc func(ctx context.Context) (Session, error)

// SessionBackend is a reference counted Backend: its Session is dialed by
// Open, or lazily by the first Stat, and closed once every mount has been
// released. Mount and Release only update the reference count so that they
// never block the mount table.
type SessionBackend struct {
	name string
	dial DialFunc

	mu      sync.Mutex
	session Session
	refs    int
}

// Open dials the session if it is not established yet. It allows callers to
// surface connection errors before mounting the backend.
func (b *SessionBackend) Open(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.openLocked(ctx); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (b *SessionBackend) openLocked(ctx context.Context) (Session, error) {
	if b.session != nil {
		return b.session, nil
	}

	session, err := b.dial(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open session on '%s'", b.name)
	}

	b.session = session

	return session, nil
}

// Close closes a session opened by Open that was never mounted. It is a no-op
// while the backend is mounted.
func (b *SessionBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.refs > 0 || b.session == nil {
		return nil
	}

	return b.closeLocked()
}

func (b *SessionBackend) closeLocked() error {
	session := b.session
	b.session = nil

	if err := session.Close(); err != nil {
		return errors.Wrapf(err, "could not close session on '%s'", b.name)
	}

	return nil
}

// Mount implements Backend.
func (b *SessionBackend) Mount(ctx context.Context, target string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refs++

	return nil
}

// Stat implements Backend.
func (b *SessionBackend) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	session, err := b.getSession(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	fileInfo, err := session.Stat(ctx, name)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return fileInfo, nil
}

func (b *SessionBackend) getSession(ctx context.Context) (Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.refs == 0 {
		return nil, errors.WithStack(ErrNotMounted)
	}

	session, err := b.openLocked(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return session, nil
}

// Release implements Backend.
func (b *SessionBackend) Release(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.refs == 0 {
		return errors.WithStack(ErrNotMounted)
	}

	b.refs--

	if b.refs > 0 || b.session == nil {
		return nil
	}

	return b.closeLocked()
}

// Refs returns the number of mounts currently holding the backend.
func (b *SessionBackend) Refs() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.refs
}

func (b *SessionBackend) String() string {
	return b.name
}

func NewSessionBackend(name string, dial DialFunc) *SessionBackend {
	return &SessionBackend{
		name: name,
		dial: dial,
	}
}

var (
	_ Backend = &SessionBackend{}
	_ Opener  = &SessionBackend{}
)

type AferoSession struct {
	fs      afero.Fs
	closers []io.Closer
}

// Stat implements Session.
func (s *AferoSession) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	fileInfo, err := s.fs.Stat(name)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return fileInfo, nil
}

// Close implements Session. Closers are closed in reverse order and the
// first failure is returned.
func (s *AferoSession) Close() error {
	var firstErr error

	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = errors.WithStack(err)
		}
	}

	return firstErr
}

func (s *AferoSession) Fs() afero.Fs {
	return s.fs
}

func NewAferoSession(fs afero.Fs, closers ...io.Closer) *AferoSession {
	return &AferoSession{
		fs:      fs,
		closers: closers,
	}
}

var _ Session = &AferoSession{}

// Describe returns a human readable label for the given backend.
func Describe(b Backend) string {
	if stringer, ok := b.(fmt.Stringer); ok {
		return stringer.String()
	}

	return fmt.Sprintf("%T", b)
}
