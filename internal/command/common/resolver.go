package common

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/Bornholm/amatl/pkg/resolver"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
	"gopkg.in/yaml.v2"
)

// NewResolverSourceFromFlagFunc loads flag values from the configuration
// file referenced by the given flag. The file can be any url supported by
// the amatl resolver.
func NewResolverSourceFromFlagFunc(flag string) func(cCtx *cli.Context) (altsrc.InputSourceContext, error) {
	return func(cCtx *cli.Context) (altsrc.InputSourceContext, error) {
		if urlStr := cCtx.String(flag); urlStr != "" {
			return NewResolvedInputSource(cCtx.Context, urlStr)
		}

		return altsrc.NewMapInputSource("", map[any]any{}), nil
	}
}

func NewResolvedInputSource(ctx context.Context, urlStr string) (altsrc.InputSourceContext, error) {
	url, err := url.Parse(urlStr)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse url '%s'", urlStr)
	}

	reader, err := resolver.Resolve(ctx, url)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer func() {
		if err := reader.Close(); err != nil {
			slog.ErrorContext(ctx, "could not close configuration file", slog.Any("error", errors.WithStack(err)))
		}
	}()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	ext := filepath.Ext(url.Path)
	switch ext {
	case ".json", ".yaml", ".yml":
		var values map[any]any

		if err := yaml.Unmarshal(data, &values); err != nil {
			return nil, errors.WithStack(err)
		}

		baseDir, err := filepath.Abs(filepath.Dir(url.Path))
		if err != nil {
			return nil, errors.WithStack(err)
		}

		if mounts, ok := values[FlagMount].([]any); ok {
			values[FlagMount] = rewriteRelativeMounts(baseDir, mounts)
		}

		return altsrc.NewMapInputSource(urlStr, values), nil

	default:
		return nil, errors.Errorf("no parser associated with '%s' file extension", ext)
	}
}

// rewriteRelativeMounts makes relative local:// backends of a configuration
// file relative to the file itself.
func rewriteRelativeMounts(baseDir string, mounts []any) []any {
	const localScheme = "local://"

	for i, rawMount := range mounts {
		mount, ok := rawMount.(string)
		if !ok {
			continue
		}

		target, dsn, found := strings.Cut(mount, "=")
		if !found || !strings.HasPrefix(dsn, localScheme) {
			continue
		}

		localPath := strings.TrimPrefix(dsn, localScheme)
		if filepath.IsAbs(localPath) {
			continue
		}

		mounts[i] = target + "=" + localScheme + filepath.Join(baseDir, localPath)
	}

	return mounts
}
