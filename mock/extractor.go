package mock

import (
	"context"

	"github.com/fwojciec/referent"
)

var _ referent.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of referent.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*referent.Article, error)
}

func (e *Extractor) Extract(html string) (*referent.Article, error) {
	return e.ExtractFn(html)
}

var _ referent.ArticleParser = (*ArticleParser)(nil)

// ArticleParser is a mock implementation of referent.ArticleParser.
type ArticleParser struct {
	ParseFn func(ctx context.Context, url string) (*referent.Article, error)
}

func (p *ArticleParser) Parse(ctx context.Context, url string) (*referent.Article, error) {
	return p.ParseFn(ctx, url)
}
