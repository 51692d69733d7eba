package mock

import (
	"context"

	"github.com/fwojciec/referent"
)

var _ referent.Completer = (*Completer)(nil)

// Completer is a mock implementation of referent.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, req referent.CompletionRequest) (*referent.Completion, error)
}

func (c *Completer) Complete(ctx context.Context, req referent.CompletionRequest) (*referent.Completion, error) {
	return c.CompleteFn(ctx, req)
}

var _ referent.Processor = (*Processor)(nil)

// Processor is a mock implementation of referent.Processor.
type Processor struct {
	RunFn func(ctx context.Context, kind referent.ActionKind, text string) (*referent.Completion, error)
}

func (p *Processor) Run(ctx context.Context, kind referent.ActionKind, text string) (*referent.Completion, error) {
	return p.RunFn(ctx, kind, text)
}
