package slog

import (
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/referent"
)

// Ensure LoggingExtractor implements referent.Extractor.
var _ referent.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor and logs which fields were found.
type LoggingExtractor struct {
	next   referent.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next referent.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(html string) (article *referent.Article, err error) {
	defer func(begin time.Time) {
		attrs := []any{"bytes", len(html), "duration", time.Since(begin), "err", err}
		if article != nil {
			attrs = append(attrs,
				"title", article.HasTitle(),
				"date", article.PublishedAt != nil,
				"body_chars", bodyChars(article),
			)
		}
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.Extract(html)
}

func bodyChars(a *referent.Article) int {
	if !a.HasBody() {
		return 0
	}
	return utf8.RuneCountInString(a.Body)
}
