package minio

import (
	"context"
	"os"
	"path"
	"strings"
	"time"

	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

const (
	separator       = "/"
	defaultFileMode = 0o644
)

type Session struct {
	basePath string
	bucket   string
	client   *minio.Client
}

// Stat implements filesystem.Session.
func (s *Session) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	key := objectKey(s.basePath, name)

	fileInfo, err := stat(ctx, s.client, s.bucket, key)
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

// objectKey converts a slash separated backend path to an object key. The
// bucket root is the empty key.
func objectKey(basePath string, name string) string {
	p := path.Join(separator, basePath, name)
	return strings.TrimPrefix(p, separator)
}

// New returns a backend serving the objects of bucket found under basePath.
func New(client *minio.Client, bucket string, basePath string) *filesystem.SessionBackend {
	basePath = strings.Trim(basePath, separator)

	dial := func(ctx context.Context) (filesystem.Session, error) {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		if !exists {
			return nil, errors.Wrapf(os.ErrNotExist, "bucket '%s' does not exist", bucket)
		}

		return &Session{
			basePath: basePath,
			bucket:   bucket,
			client:   client,
		}, nil
	}

	return filesystem.NewSessionBackend("minio://"+client.EndpointURL().Host+"/"+path.Join(bucket, basePath), dial)
}

func stat(ctx context.Context, client *minio.Client, bucket string, name string) (os.FileInfo, error) {
	if name == "" {
		return filesystem.DirInfo(separator, time.Time{}), nil
	}

	stat, err := client.StatObject(ctx, bucket, name, minio.GetObjectOptions{})
	if err != nil {
		errRes := minio.ToErrorResponse(err)
		if errRes.Code == "NoSuchKey" {
			fileInfo, err := statDir(ctx, client, bucket, name)
			if err != nil {
				return nil, errors.WithStack(err)
			}

			return fileInfo, nil
		}

		return nil, errors.WithStack(err)
	}

	return &filesystem.FileInfo{
		FileName:    path.Base(name),
		FileSize:    stat.Size,
		FileMode:    defaultFileMode,
		FileModTime: stat.LastModified,
		FileSys:     stat,
	}, nil
}

// statDir looks for objects stored under name, which is then an implicit
// directory.
func statDir(ctx context.Context, client *minio.Client, bucket string, name string) (os.FileInfo, error) {
	prefix := name + separator

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	objects := client.ListObjects(ctx, bucket, minio.ListObjectsOptions{
		Prefix:  prefix,
		MaxKeys: 1,
	})

	for obj := range objects {
		if obj.Err != nil {
			return nil, errors.WithStack(obj.Err)
		}

		return filesystem.DirInfo(path.Base(name), obj.LastModified), nil
	}

	return nil, &os.PathError{Op: "stat", Path: name, Err: os.ErrNotExist}
}
