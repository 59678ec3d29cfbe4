package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mkrall/hapt/internal/tui"
	"github.com/mkrall/hapt/session"
)

// UICmd launches an interactive session view.
type UICmd struct{}

// Run executes the ui command
func (c *UICmd) Run(globals *Globals) error {
	ctrl := globals.newController()
	globals.Debug("opening session view for %s", globals.DeviceDir)

	model := tui.New(ctrl, globals.DeviceDir)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Forward state transitions into the program so the view stays a
	// pure function of received messages.
	cancel := ctrl.Subscribe(func(s session.State) {
		p.Send(tui.StateMsg(s))
	})
	defer cancel()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("session view error: %w", err)
	}
	return nil
}
