package ftp

import (
	"context"
	"os"
	"path"
	"sync"

	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/bornholm/mountns/internal/filesystem/backend"
	"github.com/jlaffaye/ftp"
	"github.com/pkg/errors"
)

type Session struct {
	basePath string
	conn     *ftp.ServerConn
	closers  []func() error
	mu       sync.Mutex
}

// Stat implements filesystem.Session.
func (s *Session) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fileInfo, err := getFileInfo(s.conn, path.Join("/", s.basePath, name))
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return fileInfo, nil
}

// Close implements filesystem.Session.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error

	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

var _ filesystem.Session = &Session{}

// New returns a backend serving basePath on the ftp server at addr.
func New(addr string, basePath string, username, password string, options ...ftp.DialOption) *filesystem.SessionBackend {
	dial := func(ctx context.Context) (filesystem.Session, error) {
		options := append([]ftp.DialOption{
			ftp.DialWithContext(ctx),
		}, options...)

		conn, err := ftp.Dial(addr, options...)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		quit := backend.ReportingCloser(ctx, "could not quit ftp server", backend.CloserFunc(conn.Quit), backend.IgnoreClosed)

		session := &Session{
			basePath: basePath,
			conn:     conn,
			closers:  []func() error{quit.Close},
		}

		if username != "" && password != "" {
			if err := conn.Login(username, password); err != nil {
				_ = conn.Quit()
				return nil, errors.WithStack(err)
			}

			logout := backend.ReportingCloser(ctx, "could not logout from ftp server", backend.CloserFunc(conn.Logout), isNotImplementedErr, isBadCommand)
			session.closers = append(session.closers, logout.Close)
		}

		return session, nil
	}

	return filesystem.NewSessionBackend("ftp://"+addr+"/"+basePath, dial)
}
