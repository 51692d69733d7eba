package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/referent"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("📰 Referent"))
	b.WriteString("\n")

	input := m.Input
	if m.Editing {
		input += "█"
	}
	b.WriteString(InputStyle.Render("URL: " + input))
	b.WriteString("\n\n")

	b.WriteString(m.stateText())
	b.WriteString("\n\n")

	if m.Article != nil {
		b.WriteString(m.articleText())
		b.WriteString("\n\n")
	}

	if m.Err != nil {
		b.WriteString(ErrorBoxStyle.Render("❌ " + referent.UserMessage(m.Err)))
		b.WriteString("\n\n")
	}

	if m.Result != nil {
		b.WriteString(m.resultBox())
		b.WriteString("\n\n")
	}

	if m.Notice != "" {
		b.WriteString(StatusStyle.Render(m.Notice))
		b.WriteString("\n\n")
	}

	b.WriteString(InfoStyle.Render(m.helpText()))
	return b.String()
}

func (m Model) stateText() string {
	if m.Busy != "" {
		return StatusStyle.Render("⏳ " + m.Busy + "...")
	}
	if m.Article == nil {
		return HighlightStyle.Render("👋 Paste an article URL and press Enter")
	}
	return HighlightStyle.Render("✅ Ready")
}

func (m Model) articleText() string {
	a := m.Article
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Title: %s\n", a.Title))
	if a.PublishedAt != nil {
		b.WriteString(fmt.Sprintf("Date: %s\n", *a.PublishedAt))
	}
	if a.HasBody() {
		b.WriteString(fmt.Sprintf("Length: %d characters", utf8.RuneCountInString(a.Body)))
	} else {
		b.WriteString(ErrorStyle.Render(a.Body))
	}
	return InfoStyle.Render(b.String())
}

func (m Model) resultBox() string {
	var b strings.Builder
	header := string(m.Kind)
	if m.Cached {
		header += " (cached)"
	}
	b.WriteString(HighlightStyle.Render(header))
	b.WriteString("\n\n")
	b.WriteString(m.Result.Text)

	if m.Image != nil {
		b.WriteString("\n\n")
		b.WriteString(StatusStyle.Render(fmt.Sprintf("🖼  %s, %d bytes from %s", m.Image.ContentType, len(m.Image.Data), m.Image.Model)))
	}

	var usage []string
	if m.Result.Model != "" {
		usage = append(usage, m.Result.Model)
	}
	if m.Result.Usage.TotalTokens > 0 {
		usage = append(usage, fmt.Sprintf("%d tokens", m.Result.Usage.TotalTokens))
	}
	if len(usage) > 0 {
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render(strings.Join(usage, " | ")))
	}

	style := BoxStyle
	if m.Width > 4 {
		style = style.Width(m.Width - 4)
	}
	return style.Render(b.String())
}

func (m Model) helpText() string {
	if m.Editing {
		return "Enter: parse | Esc: back | Ctrl+C: quit"
	}
	parts := []string{"s: summary", "t: theses", "p: post", "r: translate", "i: image prompt", "g: image"}
	if m.Writer != nil && m.Result != nil {
		parts = append(parts, "w: save")
	}
	if m.Publisher != nil && m.Kind == referent.ActionSocialPost && m.Result != nil {
		parts = append(parts, "b: publish")
	}
	parts = append(parts, "u: new URL", "x: reset", "q: quit")
	return strings.Join(parts, " | ")
}
