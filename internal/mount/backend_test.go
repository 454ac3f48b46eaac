package mount

import (
	"context"
	"io/fs"
	"os"
	"path"
	"sync"
	"time"

	"github.com/bornholm/mountns/internal/filesystem"
)

type fakeFileInfo struct {
	name  string
	isDir bool
}

func (i *fakeFileInfo) IsDir() bool        { return i.isDir }
func (i *fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (i *fakeFileInfo) Mode() fs.FileMode {
	if i.isDir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}
func (i *fakeFileInfo) Name() string { return path.Base(i.name) }
func (i *fakeFileInfo) Size() int64  { return 0 }
func (i *fakeFileInfo) Sys() any     { return nil }

type fakeBackend struct {
	name string

	mu       sync.Mutex
	files    map[string]bool
	anyDir   bool
	mounts   []string
	releases int

	mountErr   error
	releaseErr error
}

func newFakeBackend(name string, dirs ...string) *fakeBackend {
	files := map[string]bool{"/": true}
	for _, d := range dirs {
		files[d] = true
	}

	return &fakeBackend{
		name:   name,
		files:  files,
		mounts: make([]string, 0),
	}
}

func (b *fakeBackend) withFile(name string) *fakeBackend {
	b.files[name] = false
	return b
}

func (b *fakeBackend) Mount(ctx context.Context, target string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.mountErr != nil {
		return b.mountErr
	}

	b.mounts = append(b.mounts, target)

	return nil
}

func (b *fakeBackend) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	isDir, exists := b.files[name]
	if !exists {
		if b.anyDir {
			return &fakeFileInfo{name: name, isDir: true}, nil
		}

		return nil, &os.PathError{Op: "stat", Path: name, Err: os.ErrNotExist}
	}

	return &fakeFileInfo{name: name, isDir: isDir}, nil
}

func (b *fakeBackend) Release(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.releases++

	return b.releaseErr
}

func (b *fakeBackend) String() string {
	return b.name
}

func (b *fakeBackend) Releases() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.releases
}

var _ filesystem.Backend = &fakeBackend{}
