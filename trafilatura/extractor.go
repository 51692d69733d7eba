// Package trafilatura implements referent.Extractor with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/referent"
	"github.com/fwojciec/referent/goquery"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements referent.Extractor at compile time.
var _ referent.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the article from HTML.
// Fields trafilatura misses, and content too short to trust, are left to
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	// Pages too thin for trafilatura are left to the selector chains.
	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil || result == nil {
		return e.fallback.Extract(rawHTML)
	}

	var content string
	if result.ContentNode != nil {
		if content, err = renderNode(result.ContentNode); err != nil {
			return nil, err
		}
	}

	return e.fallback.Complete(rawHTML, result.Metadata.Title, content)
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", referent.Errorf(referent.EINTERNAL, "failed to render content: %v", err)
	}
	return buf.String(), nil
}
