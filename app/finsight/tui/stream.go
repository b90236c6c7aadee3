package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lexcodex/finsight/agents"
)

// streamEventMsg carries one agent event into the Bubble Tea loop.
type streamEventMsg struct {
	event agents.Event
}

// streamClosedMsg signals that the event channel is exhausted.
type streamClosedMsg struct{}

// listenToStream adapts the agent's event channel to a Bubble Tea command.
// Each command pulls one event; the handler re-arms until a terminal event.
func listenToStream(ch <-chan agents.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return streamClosedMsg{}
		}
		return streamEventMsg{event: ev}
	}
}
