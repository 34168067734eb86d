package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zerefez/habitcal/internal/cli"
	"github.com/zerefez/habitcal/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	today, err := ctx.Today()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(ctx.Store, today), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
