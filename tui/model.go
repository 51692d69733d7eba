// Package tui implements the interactive terminal front end with
// github.com/charmbracelet/bubbletea.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/referent"
	"github.com/fwojciec/referent/session"
)

// actionKeys maps keys to the actions they run.
var actionKeys = map[string]referent.ActionKind{
	"s": referent.ActionSummary,
	"t": referent.ActionThesis,
	"p": referent.ActionSocialPost,
	"r": referent.ActionTranslate,
	"i": referent.ActionImagePrompt,
}

// Model is the bubbletea model for one session.
type Model struct {
	ctx     context.Context
	session *session.Session

	// Writer and Publisher are optional.
	Writer    referent.ResultWriter
	Publisher referent.Publisher

	// Editing is true while the URL input has focus.
	Editing bool
	Input   string

	Busy    string
	Article *referent.Article
	Kind    referent.ActionKind
	Result  *referent.Completion
	Cached  bool
	Image   *referent.Image
	Notice  string
	Err     error

	Width int
}

// NewModel creates a model driving s, starting with the URL input focused.
func NewModel(ctx context.Context, s *session.Session) Model {
	return Model{
		ctx:     ctx,
		session: s,
		Editing: true,
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return nil
}

// result returns the current result for saving.
func (m Model) result() *referent.Result {
	return &referent.Result{
		Source:     m.session.Snapshot().Source,
		Article:    m.Article,
		Kind:       m.Kind,
		Completion: m.Result,
		Image:      m.Image,
	}
}
