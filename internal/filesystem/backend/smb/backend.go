package smb

import (
	"context"
	"net"
	"os"
	"path"
	"strings"
	"sync"

	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/bornholm/mountns/internal/filesystem/backend"
	"github.com/hirochachacha/go-smb2"
	"github.com/pkg/errors"
)

type Config struct {
	Initiator smb2.Initiator
	ShareName string
}

type Session struct {
	basePath string
	share    *smb2.Share
	closers  []func() error
	mu       sync.Mutex
}

// Stat implements filesystem.Session.
func (s *Session) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fileInfo, err := s.share.WithContext(ctx).Stat(sharePath(s.basePath, name))
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

// sharePath converts a slash separated backend path to a share relative one.
func sharePath(basePath string, name string) string {
	p := path.Join("/", basePath, name)
	return strings.TrimPrefix(p, "/")
}

// New returns a backend serving basePath on the given share of the smb
// server at addr.
func New(addr string, basePath string, config *Config) *filesystem.SessionBackend {
	dial := func(ctx context.Context) (filesystem.Session, error) {
		var netDialer net.Dialer

		conn, err := netDialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		dialer := &smb2.Dialer{
			Initiator: config.Initiator,
		}

		smbSession, err := dialer.DialContext(ctx, conn)
		if err != nil {
			_ = conn.Close()
			return nil, errors.WithStack(err)
		}

		share, err := smbSession.Mount(config.ShareName)
		if err != nil {
			_ = smbSession.Logoff()
			_ = conn.Close()
			return nil, errors.WithStack(err)
		}

		closeConn := backend.ReportingCloser(ctx, "could not close smb connection", conn, backend.IgnoreClosed)
		logoff := backend.ReportingCloser(ctx, "could not logout samba session", backend.CloserFunc(smbSession.Logoff), isContextError)
		umount := backend.ReportingCloser(ctx, "could not unmount samba share", backend.CloserFunc(share.Umount))

		return &Session{
			basePath: basePath,
			share:    share,
			closers:  []func() error{closeConn.Close, logoff.Close, umount.Close},
		}, nil
	}

	return filesystem.NewSessionBackend("smb://"+addr+"/"+config.ShareName+"/"+basePath, dial)
}

func isContextError(err error) bool {
	var contextErr *smb2.ContextError
	return errors.As(err, &contextErr)
}
