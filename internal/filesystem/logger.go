package filesystem

import (
	"context"
	"log/slog"
	"os"
)

type LoggerFunc func(message string, attrs ...slog.Attr)

// SlogLogger returns a LoggerFunc emitting debug records on the default
// slog logger.
func SlogLogger(ctx context.Context) LoggerFunc {
	return func(message string, attrs ...slog.Attr) {
		slog.LogAttrs(ctx, slog.LevelDebug, message, attrs...)
	}
}

type BackendLogger struct {
	backend Backend
	log     LoggerFunc
}

// Mount implements Backend.
func (l *BackendLogger) Mount(ctx context.Context, target string) error {
	l.log("Backend.Mount", slog.String("backend", Describe(l.backend)), slog.String("target", target))
	if err := l.backend.Mount(ctx, target); err != nil {
		l.log("Backend.Mount failed", slog.String("backend", Describe(l.backend)), slog.Any("error", err))
		return err
	}
	return nil
}

// Stat implements Backend.
func (l *BackendLogger) Stat(ctx context.Context, name string) (os.FileInfo, error) {
	l.log("Backend.Stat", slog.String("backend", Describe(l.backend)), slog.String("name", name))
	return l.backend.Stat(ctx, name)
}

// Release implements Backend.
func (l *BackendLogger) Release(ctx context.Context) error {
	l.log("Backend.Release", slog.String("backend", Describe(l.backend)))
	if err := l.backend.Release(ctx); err != nil {
		l.log("Backend.Release failed", slog.String("backend", Describe(l.backend)), slog.Any("error", err))
		return err
	}
	return nil
}

func (l *BackendLogger) String() string {
	return Describe(l.backend)
}

// Unwrap returns the decorated backend.
func (l *BackendLogger) Unwrap() Backend {
	return l.backend
}

var _ Backend = &BackendLogger{}

func NewLogger(backend Backend, log LoggerFunc) *BackendLogger {
	return &BackendLogger{
		backend: backend,
		log:     log,
	}
}
