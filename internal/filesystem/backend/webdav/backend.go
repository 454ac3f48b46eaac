package webdav

import (
	"context"
	"io/fs"
	"net/http"
	"os"
	"path"
	"sync"
	"time"

	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/pkg/errors"
	"github.com/studio-b12/gowebdav"
)

type Config struct {
	Username string
	Password string
	Timeout  time.Duration
}

type Session struct {
	client *gowebdav.Client
	mu     sync.Mutex
}

// Stat implements filesystem.Session.
func (s *Session) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fileInfo, err := getFileInfo(s.client, name)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return fileInfo, nil
}

// Close implements filesystem.Session.
func (s *Session) Close() error {
	return nil
}

var _ filesystem.Session = &Session{}

// New returns a backend serving the webdav collection at url.
func New(url string, config *Config) *filesystem.SessionBackend {
	dial := func(ctx context.Context) (filesystem.Session, error) {
		authorizer := gowebdav.NewAutoAuth(config.Username, config.Password)
		client := gowebdav.NewAuthClient(url, authorizer)

		client.SetTimeout(config.Timeout)
		client.SetTransport(http.DefaultClient.Transport)

		if err := client.Connect(); err != nil {
			return nil, errors.Wrapf(wrapWebDavError(err), "could not connect to '%s'", url)
		}

		return &Session{client: client}, nil
	}

	return filesystem.NewSessionBackend(url, dial)
}

func getFileInfo(client *gowebdav.Client, path string) (os.FileInfo, error) {
	stat, err := client.Stat(path)
	if err != nil {
		// Targeted file is a directory
		if isWebDavErr(err, "PROPFIND", 200) {
			stat, err := client.Stat(gowebdav.FixSlashes(path))
			if err != nil {
				return nil, errors.WithStack(wrapWebDavError(err))
			}

			return fromFileInfo(path, stat), nil
		}

		if isWebDavErr(err, "PROPFIND", 404) {
			return nil, &os.PathError{
				Op:   "PROPFIND",
				Path: path,
				Err:  os.ErrNotExist,
			}
		}

		return nil, errors.WithStack(wrapWebDavError(err))
	}

	return fromFileInfo(path, stat), nil
}

func fromFileInfo(p string, stat fs.FileInfo) *filesystem.FileInfo {
	fileInfo := &filesystem.FileInfo{
		FileName:    stat.Name(),
		FileSize:    stat.Size(),
		FileMode:    stat.Mode(),
		FileModTime: stat.ModTime().UTC().Round(0),
		FileSys:     stat.Sys(),
	}

	if stat.IsDir() {
		fileInfo.FileMode |= fs.ModeDir
	}

	if fileInfo.FileName == "" {
		fileInfo.FileName = path.Base(p)
	}

	return fileInfo
}
