package testsuite

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/bornholm/mountns/internal/atexit"
	"github.com/bornholm/mountns/internal/filesystem"
	"github.com/bornholm/mountns/internal/filesystem/backend"
	"github.com/bornholm/mountns/internal/mount"
	"github.com/pkg/errors"
)

// TestBackend mounts the backend described by dsn in two distinct tables and
// checks that its session survives until the last mount is released.
func TestBackend(t *testing.T, dsn string) {
	t.Logf("Using backend '%s'", dsn)

	b, err := backend.New(dsn)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	b = filesystem.NewLogger(b, func(message string, attrs ...slog.Attr) {
		var sb strings.Builder
		sb.WriteString(message)
		sb.WriteString(" ")
		if len(attrs) > 0 {
			sb.WriteString("(")
			for idx, attr := range attrs {
				if idx > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(attr.String())
			}
			sb.WriteString(")")
		}

		t.Log(sb.String())
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hooks := atexit.New()
	defer hooks.Run()

	if err := filesystem.Open(ctx, b); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	first := mount.New(mount.WithExitRegistrar(hooks))
	second := mount.New(mount.WithExitRegistrar(hooks))

	if err := first.Mount(ctx, b, "/"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if err := second.Mount(ctx, b, "/shared"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	fileInfo, err := first.Stat(ctx, "/")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !fileInfo.IsDir() {
		t.Errorf("expected backend root to be a directory")
	}

	if err := first.Unmount(ctx, "/"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	fileInfo, err = second.Stat(ctx, "/shared")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !fileInfo.IsDir() {
		t.Errorf("expected backend root to be a directory")
	}

	if _, err := second.Stat(ctx, "/shared/does-not-exist-"+time.Now().Format("20060102150405")); err == nil {
		t.Errorf("expected stat of missing file to fail")
	}

	if err := second.Unmount(ctx, "/shared"); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, err := b.Stat(ctx, "/"); !errors.Is(err, filesystem.ErrNotMounted) {
		t.Errorf("expected ErrNotMounted, got '%v'", err)
	}
}
