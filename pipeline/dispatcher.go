package pipeline

import (
	"context"
	"strings"

	"github.com/fwojciec/referent"
	"golang.org/x/sync/errgroup"
)

// Ensure Dispatcher implements referent.Processor at compile time.
var _ referent.Processor = (*Dispatcher)(nil)

// Dispatcher runs actions against article text. Texts longer than
// ChunkSize are split, each chunk is completed separately and the
// partial outputs are reconciled.
type Dispatcher struct {
	Completer  referent.Completer
	Reconciler *Reconciler
	Actions    referent.Actions

	// ChunkSize is the largest text, in characters, sent in one call.
	ChunkSize int

	// Concurrency caps parallel chunk calls. Values below 2 run the
	// chunks one after another.
	Concurrency int
}

// NewDispatcher creates a Dispatcher with the given actions and the
// default chunk size.
func NewDispatcher(c referent.Completer, actions referent.Actions) *Dispatcher {
	return &Dispatcher{
		Completer:  c,
		Reconciler: NewReconciler(c),
		Actions:    actions,
		ChunkSize:  referent.DefaultChunkSize,
	}
}

// Run executes the action of the given kind against text.
func (d *Dispatcher) Run(ctx context.Context, kind referent.ActionKind, text string) (*referent.Completion, error) {
	if strings.TrimSpace(text) == "" {
		return nil, referent.Errorf(referent.EINVALID, "text required")
	}
	action, err := d.Actions.Get(kind)
	if err != nil {
		return nil, err
	}

	chunks := referent.SplitText(text, d.ChunkSize)
	if len(chunks) == 1 {
		return d.Completer.Complete(ctx, action.Request(text))
	}

	partials, err := d.completeChunks(ctx, action, chunks)
	if err != nil {
		return nil, err
	}
	return d.Reconciler.Reconcile(ctx, action, partials)
}

// completeChunks returns the chunk completions in chunk order.
func (d *Dispatcher) completeChunks(ctx context.Context, action referent.Action, chunks []string) ([]*referent.Completion, error) {
	partials := make([]*referent.Completion, len(chunks))

	if d.Concurrency < 2 {
		for i, chunk := range chunks {
			c, err := d.Completer.Complete(ctx, action.ChunkRequest(chunk))
			if err != nil {
				return nil, err
			}
			partials[i] = c
		}
		return partials, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.Concurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			c, err := d.Completer.Complete(ctx, action.ChunkRequest(chunk))
			if err != nil {
				return err
			}
			partials[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return partials, nil
}
