package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View composes the scrollable feed, prompt bar, and status bar.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	feed := m.feed.View()
	prompt := m.renderPromptBar()
	status := m.statusBar.View(m.width)

	return lipgloss.JoinVertical(lipgloss.Left, feed, prompt, status)
}

func (m Model) renderPromptBar() string {
	prefix := "> "
	hint := dimStyle.Render(" / for commands | esc aborts | ctrl+c quits")
	if m.mode == ModeCommand {
		prefix = "/ "
		hint = dimStyle.Render(" Enter to run | Esc to cancel")
	}
	return promptBarStyle.Width(m.width).Render(prefix + m.input.View() + " " + hint)
}

// renderFeed joins the completed blocks plus any in-flight streaming tail.
func (m Model) renderFeed() string {
	if len(m.blocks) == 0 && !m.running {
		return welcomeStyle.Render("Ask a question about the transaction data, or /help for commands.")
	}
	parts := make([]string, 0, len(m.blocks)+1)
	for _, b := range m.blocks {
		parts = append(parts, b.rendered)
	}
	if m.running {
		tail := m.spinner.View() + " Working..."
		if m.streaming != "" {
			tail = streamingStyle.Render(m.streaming) + "\n" + tail
		}
		parts = append(parts, tail)
	}
	return strings.Join(parts, "\n\n")
}

// refreshFeed pushes the rendered blocks into the viewport.
func (m Model) refreshFeed() Model {
	if !m.ready {
		return m
	}
	m.feed.SetContent(m.renderFeed())
	if m.autoFollow {
		m.feed.GotoBottom()
	}
	return m
}

// renderMarkdown runs the final answer through the markdown renderer, falling
// back to plain text when rendering is unavailable.
func (m Model) renderMarkdown(content string) string {
	if m.markdown == nil || content == "" {
		return content
	}
	rendered, err := m.markdown.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(rendered)
}
