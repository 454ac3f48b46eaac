package filesystem

import (
	"io/fs"
	"time"
)

// FileInfo is a static fs.FileInfo, used by sessions whose protocol does not
// provide one.
type FileInfo struct {
	FileName    string
	FileSize    int64
	FileMode    fs.FileMode
	FileModTime time.Time
	FileSys     any
}

// IsDir implements fs.FileInfo.
func (fi *FileInfo) IsDir() bool {
	return fi.FileMode.IsDir()
}

// ModTime implements fs.FileInfo.
func (fi *FileInfo) ModTime() time.Time {
	return fi.FileModTime
}

// Mode implements fs.FileInfo.
func (fi *FileInfo) Mode() fs.FileMode {
	return fi.FileMode
}

// Name implements fs.FileInfo.
func (fi *FileInfo) Name() string {
	return fi.FileName
}

// Size implements fs.FileInfo.
func (fi *FileInfo) Size() int64 {
	return fi.FileSize
}

// Sys implements fs.FileInfo.
func (fi *FileInfo) Sys() any {
	return fi.FileSys
}

var _ fs.FileInfo = &FileInfo{}

func DirInfo(name string, modTime time.Time) *FileInfo {
	return &FileInfo{
		FileName:    name,
		FileMode:    fs.ModeDir | 0o755,
		FileModTime: modTime,
	}
}
