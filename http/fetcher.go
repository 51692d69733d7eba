// Package http provides an HTTP-based implementation of referent.Fetcher
// for article pages that don't require JavaScript rendering.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/referent"
)

// DefaultFetchTimeout is the default timeout for page requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent is sent with every request. Some publishers reject
// requests without a browser-like agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultMaxBodySize is the largest page accepted. Larger pages are
// rejected rather than extracted from a truncated document.
const DefaultMaxBodySize = 10 << 20

// maxDetailsSize caps the response snippet kept on errors.
const maxDetailsSize = 512

// Ensure Fetcher implements referent.Fetcher at compile time.
var _ referent.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	limiter   referent.DomainLimiter
	maxBody   int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize overrides DefaultMaxBodySize.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBody = n
	}
}

// WithLimiter makes every request wait on l for the target host.
func WithLimiter(l referent.DomainLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		maxBody:   DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", referent.Errorf(referent.EINVALID, "invalid URL: %s", rawURL)
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, u.Hostname()); err != nil {
			return "", transportError(err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", referent.Errorf(referent.EINVALID, "invalid URL: %s", rawURL)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxDetailsSize))
		return "", referent.UpstreamErrorf(resp.StatusCode, string(snippet),
			"failed to fetch URL: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return "", transportError(err)
	}
	if int64(len(body)) > f.maxBody {
		return "", referent.Errorf(referent.EINVALID, "page is larger than %d bytes", f.maxBody)
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// transportError classifies failures that happen before a response arrives.
func transportError(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return referent.Errorf(referent.ETIMEOUT, "request timed out")
	case errors.As(err, &netErr) && netErr.Timeout():
		return referent.Errorf(referent.ETIMEOUT, "request timed out")
	case errors.Is(err, context.Canceled):
		return err
	default:
		return referent.Errorf(referent.ENETWORK, "%s", describe(err))
	}
}

func describe(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Sprintf("request to %s failed: %s", urlErr.URL, strings.TrimSpace(urlErr.Err.Error()))
	}
	return err.Error()
}
