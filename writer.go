package referent

import "context"

// Result is the outcome of running an action against a parsed article.
type Result struct {
	Source     string
	Article    *Article
	Kind       ActionKind
	Completion *Completion
	Image      *Image
}

// ResultWriter persists results outside the process.
type ResultWriter interface {
	// Write stores the result and returns the location it was written to.
	Write(ctx context.Context, result *Result) (string, error)
}
