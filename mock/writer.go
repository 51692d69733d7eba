package mock

import (
	"context"

	"github.com/fwojciec/referent"
)

var _ referent.ResultWriter = (*ResultWriter)(nil)

// ResultWriter is a mock implementation of referent.ResultWriter.
type ResultWriter struct {
	WriteFn func(ctx context.Context, result *referent.Result) (string, error)
}

func (w *ResultWriter) Write(ctx context.Context, result *referent.Result) (string, error) {
	return w.WriteFn(ctx, result)
}

var _ referent.Publisher = (*Publisher)(nil)

// Publisher is a mock implementation of referent.Publisher.
type Publisher struct {
	PublishFn func(ctx context.Context, text string, image *referent.Image) (string, error)
}

func (p *Publisher) Publish(ctx context.Context, text string, image *referent.Image) (string, error) {
	return p.PublishFn(ctx, text, image)
}
