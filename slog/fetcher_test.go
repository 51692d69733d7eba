package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/referent"
	"github.com/fwojciec/referent/mock"
	locslog "github.com/fwojciec/referent/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs host and page size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "<html>hello</html>", nil
			},
		}

		f := locslog.NewLoggingFetcher(inner, logger)
		html, err := f.Fetch(context.Background(), "https://News.example.com/2024/story")

		require.NoError(t, err)
		assert.Equal(t, "<html>hello</html>", html)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "url=https://News.example.com/2024/story")
		assert.Contains(t, output, "host=news.example.com")
		assert.Contains(t, output, "bytes=18")
		assert.NotContains(t, output, "err=")
	})

	t.Run("logs failures at warn with code and status", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		upstream := referent.UpstreamErrorf(403, "", "page returned status 403")
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", upstream
			},
		}

		f := locslog.NewLoggingFetcher(inner, logger)
		_, err := f.Fetch(context.Background(), "https://example.com/paywalled")

		assert.Same(t, upstream, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "code=forbidden")
		assert.Contains(t, output, "status=403")
		assert.Contains(t, output, "bytes=0")
	})

	t.Run("does not log below the handler level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
		inner := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "<html></html>", nil
			},
		}

		f := locslog.NewLoggingFetcher(inner, logger)
		_, err := f.Fetch(context.Background(), "https://example.com/")

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	closed := false
	inner := &mock.Fetcher{
		CloseFn: func() error {
			closed = true
			return nil
		},
	}

	f := locslog.NewLoggingFetcher(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	require.NoError(t, f.Close())
	assert.True(t, closed)
}
