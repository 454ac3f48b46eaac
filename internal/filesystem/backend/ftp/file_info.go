package ftp

import (
	"io/fs"
	"os"
	"path"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/pkg/errors"
)

type FileInfo struct {
	entry *ftp.Entry
}

// IsDir implements fs.FileInfo.
func (i *FileInfo) IsDir() bool {
	return i.entry.Type == ftp.EntryTypeFolder
}

// ModTime implements fs.FileInfo.
func (i *FileInfo) ModTime() time.Time {
	return i.entry.Time
}

// Mode implements fs.FileInfo.
func (i *FileInfo) Mode() fs.FileMode {
	if i.IsDir() {
		return fs.ModeDir | fs.ModePerm
	}

	return fs.ModePerm
}

// Name implements fs.FileInfo.
func (i *FileInfo) Name() string {
	return i.entry.Name
}

// Size implements fs.FileInfo.
func (i *FileInfo) Size() int64 {
	return int64(i.entry.Size)
}

// Sys implements fs.FileInfo.
func (*FileInfo) Sys() any {
	return nil
}

var _ fs.FileInfo = &FileInfo{}

func getFileInfo(conn *ftp.ServerConn, p string) (*FileInfo, error) {
	// The root has no parent listing to find it in
	if p == "/" {
		if _, err := conn.List(p); err != nil {
			return nil, errors.WithStack(err)
		}

		return &FileInfo{&ftp.Entry{Name: "/", Type: ftp.EntryTypeFolder}}, nil
	}

	entry, err := conn.GetEntry(p)
	if err != nil && !isNotImplementedErr(err) && !isFileUnavailableErr(err) {
		return nil, errors.WithStack(err)
	}

	if entry != nil {
		return &FileInfo{entry}, nil
	}

	siblings, err := conn.List(path.Dir(p))
	if err != nil {
		if isFileUnavailableErr(err) {
			return nil, &os.PathError{Op: "stat", Path: p, Err: os.ErrNotExist}
		}

		return nil, errors.WithStack(err)
	}

	name := path.Base(p)

	for _, s := range siblings {
		if s != nil && s.Name == name {
			return &FileInfo{entry: s}, nil
		}
	}

	return nil, &os.PathError{Op: "stat", Path: p, Err: os.ErrNotExist}
}
