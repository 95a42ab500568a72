// ABOUTME: Bubbletea program wiring for the status UI
package statusui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Program wraps a running bubbletea program plus the control channels the
// orchestrator reads volume changes and quit requests from.
type Program struct {
	prog *tea.Program
	ctrl *VolumeControl
}

// New builds the status UI for the current terminal (Run starts it) and
// returns a handle the orchestrator can push StatusMsg updates into and read
// VolumeControl from.
func New() *Program {
	ctrl := NewVolumeControl()
	model := NewModel(ctrl)
	return &Program{
		prog: tea.NewProgram(model, tea.WithAltScreen()),
		ctrl: ctrl,
	}
}

// Run blocks until the user quits or the program is sent a tea.Quit command.
func (p *Program) Run() error {
	_, err := p.prog.Run()
	return err
}

// Send pushes a status update into the running program. Safe to call from
// any goroutine; bubbletea serializes delivery into Update.
func (p *Program) Send(msg StatusMsg) {
	p.prog.Send(msg)
}

// Quit stops the running program.
func (p *Program) Quit() {
	p.prog.Quit()
}

// Changes returns the channel of user-initiated volume changes.
func (p *Program) Changes() <-chan VolumeChangeMsg {
	return p.ctrl.Changes
}

// QuitRequested returns the channel signaled when the user presses q.
func (p *Program) QuitRequested() <-chan QuitMsg {
	return p.ctrl.Quit
}
