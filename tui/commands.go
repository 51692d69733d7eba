package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/referent"
	"github.com/fwojciec/referent/session"
)

// parseArticle creates a command that parses the article at url.
func parseArticle(ctx context.Context, s *session.Session, url string) tea.Cmd {
	return func() tea.Msg {
		article, err := s.Parse(ctx, url)
		return ParsedMsg{Article: article, Err: err}
	}
}

// runAction creates a command that runs an action on the parsed article.
func runAction(ctx context.Context, s *session.Session, kind referent.ActionKind) tea.Cmd {
	return func() tea.Msg {
		completion, cached, err := s.Run(ctx, kind)
		return ResultMsg{Kind: kind, Completion: completion, Cached: cached, Err: err}
	}
}

// illustrate creates a command that renders an illustration of the article.
func illustrate(ctx context.Context, s *session.Session) tea.Cmd {
	return func() tea.Msg {
		img, prompt, err := s.Illustrate(ctx)
		return ImageMsg{Image: img, Prompt: prompt, Err: err}
	}
}

// save creates a command that writes a result out.
func save(ctx context.Context, w referent.ResultWriter, r *referent.Result) tea.Cmd {
	return func() tea.Msg {
		path, err := w.Write(ctx, r)
		return SavedMsg{Path: path, Err: err}
	}
}

// publish creates a command that publishes text with an optional image.
func publish(ctx context.Context, p referent.Publisher, text string, img *referent.Image) tea.Cmd {
	return func() tea.Msg {
		id, err := p.Publish(ctx, text, img)
		return PublishedMsg{MessageID: id, Err: err}
	}
}
