package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DaanHessen/contagion/internal/engine"
	"github.com/DaanHessen/contagion/internal/text"
	"github.com/DaanHessen/contagion/internal/util"
)

// Run boots the dashboard and blocks until it exits. observers see every day
// the dashboard advances.
func Run(ctx context.Context, sim *engine.Simulation, reporter text.Reporter, cfg util.Config, observers ...engine.DayObserver) error {
	m := initialModel(ctx, sim, reporter, cfg, observers)
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
