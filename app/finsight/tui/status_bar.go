package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// StatusBar renders model/persona metadata plus per-session counters.
type StatusBar struct {
	model     string
	persona   string
	questions int
	toolCalls int
	elapsed   time.Duration
	started   time.Time
}

func (s StatusBar) View(width int) string {
	left := fmt.Sprintf("🤖 %s | 👤 %s", s.model, s.persona)
	right := fmt.Sprintf("❓ %d | 🔧 %d | ⏱️  %s", s.questions, s.toolCalls, formatDuration(s.elapsed))
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}
	return statusStyle.Render(left + strings.Repeat(" ", padding) + right)
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
}
