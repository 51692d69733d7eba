package pipeline

import (
	"context"
	"strings"

	"github.com/fwojciec/referent"
)

// Reconciler merges the ordered per-chunk outputs of an action into one
// result.
type Reconciler struct {
	Completer referent.Completer
}

// NewReconciler creates a new Reconciler.
func NewReconciler(c referent.Completer) *Reconciler {
	return &Reconciler{Completer: c}
}

// Reconcile joins partials in order with the action's MergeSeparator.
// When the action has a MergePrompt, the joined text is sent as the user
// content of exactly one synthesis call and its failure is returned as is.
// Usage is the sum over the partials and the synthesis call.
func (r *Reconciler) Reconcile(ctx context.Context, action referent.Action, partials []*referent.Completion) (*referent.Completion, error) {
	if len(partials) == 0 {
		return nil, referent.Errorf(referent.EINTERNAL, "nothing to reconcile")
	}

	texts := make([]string, len(partials))
	var usage referent.Usage
	for i, p := range partials {
		texts[i] = p.Text
		usage = usage.Add(p.Usage)
	}
	joined := strings.Join(texts, action.MergeSeparator)

	if action.MergePrompt == "" {
		return &referent.Completion{
			Text:  joined,
			Model: partials[len(partials)-1].Model,
			Usage: usage,
		}, nil
	}

	merged, err := r.Completer.Complete(ctx, referent.CompletionRequest{
		System:      action.MergePrompt,
		User:        joined,
		Temperature: action.Temperature,
		MaxTokens:   action.MaxTokens,
	})
	if err != nil {
		return nil, err
	}

	return &referent.Completion{
		Text:  merged.Text,
		Model: merged.Model,
		Usage: usage.Add(merged.Usage),
	}, nil
}
