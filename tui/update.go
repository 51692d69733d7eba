package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/referent"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.Editing {
			return m.handleInput(msg)
		}
		return m.handleKeyPress(msg)
	case ParsedMsg:
		return m.handleParsed(msg)
	case ResultMsg:
		return m.handleResult(msg)
	case ImageMsg:
		return m.handleImage(msg)
	case SavedMsg:
		m.Busy = ""
		if msg.Err != nil {
			m.Err = msg.Err
			return m, nil
		}
		m.Notice = "Saved to " + msg.Path
		return m, nil
	case PublishedMsg:
		m.Busy = ""
		if msg.Err != nil {
			m.Err = msg.Err
			return m, nil
		}
		m.Notice = "Published as message " + msg.MessageID
		return m, nil
	}
	return m, nil
}

// handleInput processes keys while the URL input has focus.
func (m Model) handleInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		if m.Article != nil {
			m.Editing = false
		}
		return m, nil
	case tea.KeyEnter:
		url := strings.TrimSpace(m.Input)
		if url == "" || m.Busy != "" {
			return m, nil
		}
		m.Editing = false
		m.Busy = "Parsing " + url
		m.Article, m.Result, m.Image, m.Kind = nil, nil, nil, ""
		m.Err, m.Notice = nil, ""
		return m, parseArticle(m.ctx, m.session, url)
	case tea.KeyBackspace:
		if r := []rune(m.Input); len(r) > 0 {
			m.Input = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
		m.Input += string(msg.Runes)
		return m, nil
	}
	return m, nil
}

// handleKeyPress processes command keys.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	}
	if m.Busy != "" {
		return m, nil
	}

	if kind, ok := actionKeys[key]; ok && m.Article != nil {
		m.Busy = "Running " + string(kind)
		m.Err, m.Notice = nil, ""
		return m, runAction(m.ctx, m.session, kind)
	}

	switch key {
	case "g":
		if m.Article != nil {
			m.Busy = "Generating image"
			m.Err, m.Notice = nil, ""
			return m, illustrate(m.ctx, m.session)
		}
	case "u":
		m.Editing = true
	case "x":
		if err := m.session.Reset(); err != nil {
			m.Err = err
			return m, nil
		}
		m = NewModel(m.ctx, m.session).withOutputs(m)
	case "w":
		if m.Writer != nil && m.Result != nil {
			m.Busy = "Saving"
			return m, save(m.ctx, m.Writer, m.result())
		}
	case "b":
		if m.Publisher != nil && m.Result != nil && m.Kind == referent.ActionSocialPost {
			m.Busy = "Publishing"
			return m, publish(m.ctx, m.Publisher, m.Result.Text, m.Image)
		}
	}
	return m, nil
}

func (m Model) withOutputs(from Model) Model {
	m.Writer, m.Publisher, m.Width = from.Writer, from.Publisher, from.Width
	return m
}

func (m Model) handleParsed(msg ParsedMsg) (tea.Model, tea.Cmd) {
	m.Busy = ""
	if msg.Err != nil {
		m.Err = msg.Err
		m.Editing = true
		return m, nil
	}
	m.Article = msg.Article
	return m, nil
}

func (m Model) handleResult(msg ResultMsg) (tea.Model, tea.Cmd) {
	m.Busy = ""
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	m.Kind, m.Result, m.Cached = msg.Kind, msg.Completion, msg.Cached
	return m, nil
}

func (m Model) handleImage(msg ImageMsg) (tea.Model, tea.Cmd) {
	m.Busy = ""
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	m.Kind, m.Result, m.Image, m.Cached = referent.ActionImagePrompt, msg.Prompt, msg.Image, false
	return m, nil
}
