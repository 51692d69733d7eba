package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/referent/session"
	"github.com/fwojciec/referent/tui"
)

// Run executes the ui command.
func (c *UICmd) Run(deps *Dependencies) error {
	s := session.New(deps.Parser, deps.Processor, deps.Illustrator)

	m := tui.NewModel(deps.Ctx, s)
	m.Writer = deps.Writer
	m.Publisher = deps.Publisher

	_, err := tea.NewProgram(m,
		tea.WithContext(deps.Ctx),
		tea.WithOutput(deps.Stdout),
		tea.WithAltScreen(),
	).Run()
	return err
}
