package minio

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bornholm/mountns/internal/filesystem/backend"
	"github.com/bornholm/mountns/internal/filesystem/testsuite"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"github.com/testcontainers/testcontainers-go"
	testminio "github.com/testcontainers/testcontainers-go/modules/minio"
)

func TestBackend(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container based test in short mode")
	}

	ctx := context.Background()

	const (
		minioUsername = "miniousername"
		minioPassword = "miniopassword"
	)

	minioContainer, err := testminio.Run(
		ctx, "minio/minio:RELEASE.2024-01-16T16-07-38Z",
		testminio.WithUsername(minioUsername),
		testminio.WithPassword(minioPassword),
	)
	defer func() {
		if err := testcontainers.TerminateContainer(minioContainer); err != nil {
			t.Fatalf("failed to terminate container: %+v", errors.WithStack(err))
		}
	}()
	if err != nil {
		t.Fatalf("failed to start container: %+v", errors.WithStack(err))
	}

	endpoint, err := minioContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("could not retrieve connection string: %+v", errors.WithStack(err))
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(minioUsername, minioPassword, ""),
		Secure: false,
	})
	if err != nil {
		t.Fatalf("failed to create minio client: %+v", errors.WithStack(err))
	}

	const (
		bucketName = "mountns"
	)

	if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
		t.Fatalf("failed to create minio bucket: %+v", errors.WithStack(err))
	}

	content := strings.NewReader("hello")
	if _, err := client.PutObject(ctx, bucketName, "data/hello.txt", content, content.Size(), minio.PutObjectOptions{}); err != nil {
		t.Fatalf("failed to put minio object: %+v", errors.WithStack(err))
	}

	dsn := fmt.Sprintf("minio://%s:%s@%s?bucket=%s&secure=false", minioUsername, minioPassword, endpoint, bucketName)

	testsuite.TestBackend(t, dsn)

	b, err := backend.New(dsn)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := b.Mount(ctx, "/"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	defer func() {
		if err := b.Release(ctx); err != nil {
			t.Errorf("%+v", errors.WithStack(err))
		}
	}()

	dirInfo, err := b.Stat(ctx, "/data")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !dirInfo.IsDir() {
		t.Errorf("expected '/data' to be an implicit directory")
	}

	fileInfo, err := b.Stat(ctx, "/data/hello.txt")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if fileInfo.IsDir() {
		t.Errorf("expected '/data/hello.txt' to be a file")
	}

	if e, g := int64(5), fileInfo.Size(); e != g {
		t.Errorf("fileInfo.Size(): expected %d, got %d", e, g)
	}
}

func TestObjectKey(t *testing.T) {
	type testCase struct {
		BasePath string
		Name     string
		Expected string
	}

	testCases := []testCase{
		{BasePath: "", Name: "/", Expected: ""},
		{BasePath: "", Name: "/a/b.txt", Expected: "a/b.txt"},
		{BasePath: "prefix", Name: "/", Expected: "prefix"},
		{BasePath: "prefix", Name: "/a", Expected: "prefix/a"},
	}

	for _, tc := range testCases {
		if e, g := tc.Expected, objectKey(tc.BasePath, tc.Name); e != g {
			t.Errorf("objectKey('%s', '%s'): expected '%s', got '%s'", tc.BasePath, tc.Name, e, g)
		}
	}
}
