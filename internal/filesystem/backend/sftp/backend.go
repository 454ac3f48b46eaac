package sftp

import (
	"context"
	"net"

	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/bornholm/mountns/internal/filesystem/backend"
	"github.com/pkg/errors"
	"github.com/pkg/sftp"
	"github.com/spf13/afero"
	"github.com/spf13/afero/sftpfs"
	"golang.org/x/crypto/ssh"
)

// New returns a backend serving basePath on the sftp server at addr.
func New(addr string, basePath string, config *ssh.ClientConfig) *filesystem.SessionBackend {
	dial := func(ctx context.Context) (filesystem.Session, error) {
		var dialer net.Dialer

		conn, err := dialer.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, config)
		if err != nil {
			_ = conn.Close()
			return nil, errors.WithStack(err)
		}

		sshClient := ssh.NewClient(sshConn, chans, reqs)

		sftpClient, err := sftp.NewClient(sshClient)
		if err != nil {
			_ = sshClient.Close()
			return nil, errors.WithStack(err)
		}

		var fs afero.Fs = sftpfs.New(sftpClient)

		if basePath != "" {
			fs = afero.NewBasePathFs(fs, basePath)
		}

		session := filesystem.NewAferoSession(
			fs,
			backend.ReportingCloser(ctx, "could not close ssh connection", sshClient, backend.IgnoreClosed),
			backend.ReportingCloser(ctx, "could not close sftp connection", sftpClient, backend.IgnoreClosed),
		)

		return session, nil
	}

	return filesystem.NewSessionBackend("sftp://"+addr+"/"+basePath, dial)
}
