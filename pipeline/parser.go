// Package pipeline composes the domain services into the article workflow:
// fetch and extract, chunked completion with reconciliation, and image
// generation with model fallback.
package pipeline

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/referent"
)

// DefaultParseTimeout bounds the page fetch.
const DefaultParseTimeout = 30 * time.Second

// Ensure Parser implements referent.ArticleParser at compile time.
var _ referent.ArticleParser = (*Parser)(nil)

// Parser fetches an article page and extracts the article from it.
type Parser struct {
	Fetcher   referent.Fetcher
	Extractor referent.Extractor

	// Timeout bounds the fetch.
	Timeout time.Duration
}

// NewParser creates a Parser with DefaultParseTimeout.
func NewParser(fetcher referent.Fetcher, extractor referent.Extractor) *Parser {
	return &Parser{
		Fetcher:   fetcher,
		Extractor: extractor,
		Timeout:   DefaultParseTimeout,
	}
}

// Parse fetches rawURL once and extracts the article. Fetch failures are
// returned to the caller without retrying.
func (p *Parser) Parse(ctx context.Context, rawURL string) (*referent.Article, error) {
	target, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultParseTimeout
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	html, err := p.Fetcher.Fetch(fetchCtx, target)
	if err != nil {
		if errors.Is(fetchCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return nil, referent.Errorf(referent.ETIMEOUT, "timed out fetching %s after %s", target, timeout)
		}
		return nil, err
	}

	return p.Extractor.Extract(html)
}

// ValidateURL trims rawURL and checks that it is an absolute http(s) URL.
func ValidateURL(rawURL string) (string, error) {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return "", referent.Errorf(referent.EINVALID, "URL is required")
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", referent.Errorf(referent.EINVALID, "invalid URL: %s", s)
	}
	return s, nil
}
