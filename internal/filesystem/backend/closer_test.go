package backend

import (
	"context"
	"fmt"
	"net"
	"testing"

	"github.com/pkg/errors"
)

func TestReportingCloser(t *testing.T) {
	ctx := context.Background()

	closed := ReportingCloser(ctx, "could not close", CloserFunc(func() error {
		return errors.WithStack(net.ErrClosed)
	}), IgnoreClosed)

	if err := closed.Close(); err != nil {
		t.Errorf("expected closed connection error to be ignored, got '%v'", err)
	}

	failure := errors.New("broken pipe")

	failing := ReportingCloser(ctx, "could not close", CloserFunc(func() error {
		return fmt.Errorf("write: %w", failure)
	}), IgnoreClosed)

	if err := failing.Close(); !errors.Is(err, failure) {
		t.Errorf("expected '%v', got '%v'", failure, err)
	}
}
