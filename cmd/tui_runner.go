package cmd

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fchimpan/kusa-pong/internal/tui"
)

func defaultRunTUI(m Match) error {
	model, err := tui.NewModel(tui.Options{
		Config: m.Config,
		Seed:   m.Seed,
		Speed:  m.Speed,
		Names:  m.Names,
		Logger: m.Logger,
	})
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
