package backend

import (
	"context"
	"io"
	"net"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"gitlab.com/wpetit/goweb/logger"
)

type CloserFunc func() error

// Close implements io.Closer.
func (fn CloserFunc) Close() error {
	return fn()
}

type IgnoreFunc func(err error) bool

// IgnoreClosed ignores errors of connections already closed by the peer.
func IgnoreClosed(err error) bool {
	return errors.Is(err, net.ErrClosed)
}

// ReportingCloser wraps closer so that unexpected close failures are
// captured by sentry and logged before being returned.
func ReportingCloser(ctx context.Context, message string, closer io.Closer, ignore ...IgnoreFunc) io.Closer {
	ctx = context.WithoutCancel(ctx)

	return CloserFunc(func() error {
		err := closer.Close()
		if err == nil {
			return nil
		}

		for _, fn := range ignore {
			if fn(err) {
				return nil
			}
		}

		err = errors.WithStack(err)
		sentry.CaptureException(err)
		logger.Error(ctx, message, logger.E(err))

		return err
	})
}
