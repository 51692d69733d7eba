// Package htmltomarkdown turns extracted article HTML into body text
// using github.com/JohannesKaufmann/html-to-markdown.
package htmltomarkdown

import (
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/referent"
)

// Ensure Converter implements referent.Converter at compile time.
var _ referent.Converter = (*Converter)(nil)

var blankRun = regexp.MustCompile(`\n[ \t]*(\n[ \t]*)+`)

// Converter wraps html-to-markdown. Output paragraphs are separated by
// exactly one blank line.
type Converter struct {
	conv   *converter.Converter
	domain string
}

// Option configures a Converter.
type Option func(*Converter)

// WithDomain resolves relative links against domain.
func WithDomain(domain string) Option {
	return func(c *Converter) {
		c.domain = domain
	}
}

// NewConverter creates a new Converter.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert transforms HTML content into Markdown text.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", referent.Errorf(referent.EINVALID, "empty HTML input")
	}

	var opts []converter.ConvertOptionFunc
	if c.domain != "" {
		opts = append(opts, converter.WithDomain(c.domain))
	}

	result, err := c.conv.ConvertString(html, opts...)
	if err != nil {
		return "", referent.Errorf(referent.EINTERNAL, "failed to convert HTML: %v", err)
	}

	return strings.TrimSpace(blankRun.ReplaceAllString(result, "\n\n")), nil
}
