// Package slog provides logging decorators for the referent services.
package slog

import (
	"context"
	"log/slog"
	neturl "net/url"
	"time"

	"github.com/fwojciec/referent"
)

// Ensure LoggingFetcher implements referent.Fetcher.
var _ referent.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with logging.
type LoggingFetcher struct {
	next   referent.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next referent.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the page host, size and
// duration. Failures are logged at warn level with their code and status.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"host", host(url),
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "code", referent.ErrorCode(err), "status", referent.ErrorStatus(err), "err", err)
			f.logger.Warn("fetch", attrs...)
			return
		}
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

func host(rawURL string) string {
	u, err := neturl.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
