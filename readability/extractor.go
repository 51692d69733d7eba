// Package readability implements referent.Extractor with go-readability,
// an alternative to the selector heuristics for pages with unusual markup.
package readability

import (
	"strings"

	"github.com/fwojciec/referent"
	"github.com/fwojciec/referent/goquery"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements referent.Extractor at compile time.
var _ referent.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the article from HTML.
// Fields readability misses, and content too short to trust, are left to
// the selector chains.
type Extractor struct {
	fallback *goquery.Extractor
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{fallback: goquery.NewExtractor()}
}

// Extract processes raw HTML and returns the article.
func (e *Extractor) Extract(rawHTML string) (*referent.Article, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, referent.Errorf(referent.EINVALID, "empty HTML input")
	}

	parsed, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return e.fallback.Extract(rawHTML)
	}

	return e.fallback.Complete(rawHTML, parsed.Title, parsed.Content)
}
