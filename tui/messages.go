package tui

import "github.com/fwojciec/referent"

// ParsedMsg is sent when an article has been fetched and extracted.
type ParsedMsg struct {
	Article *referent.Article
	Err     error
}

// ResultMsg is sent when an action has finished.
type ResultMsg struct {
	Kind       referent.ActionKind
	Completion *referent.Completion
	Cached     bool
	Err        error
}

// ImageMsg is sent when an illustration has been rendered.
type ImageMsg struct {
	Image  *referent.Image
	Prompt *referent.Completion
	Err    error
}

// SavedMsg is sent when the current result has been written out.
type SavedMsg struct {
	Path string
	Err  error
}

// PublishedMsg is sent when the current result has been published.
type PublishedMsg struct {
	MessageID string
	Err       error
}
