// Package rod implements referent.Fetcher with headless Chrome for article
// pages that render their content with JavaScript.
package rod

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/fwojciec/referent"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements referent.Fetcher at compile time.
var _ referent.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser   *browser
	timeout   time.Duration
	maxPages  int64
	userAgent string
	closed    atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page render timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPages sets how many pages are rendered before Chrome is relaunched.
// Zero disables relaunching.
func WithMaxPages(n int64) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// WithUserAgent overrides the browser's user agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	br, err := newBrowser(f.maxPages)
	if err != nil {
		return nil, referent.Errorf(referent.EUNAVAILABLE, "%v", err)
	}
	f.browser = br
	return f, nil
}

// Fetch navigates to the URL and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", referent.Errorf(referent.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.browser.acquire().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", referent.Errorf(referent.EUNAVAILABLE, "opening page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", renderError(ctx, err)
		}
	}
	if err := page.Navigate(url); err != nil {
		return "", renderError(ctx, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", renderError(ctx, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", renderError(ctx, err)
	}
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.browser.close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.browser.pid()
}

func renderError(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return referent.Errorf(referent.ETIMEOUT, "page render timed out")
	case errors.Is(err, context.Canceled):
		return err
	default:
		return referent.Errorf(referent.ENETWORK, "page render failed: %v", err)
	}
}
