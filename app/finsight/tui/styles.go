package tui

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("39")
	colorAnswer  = lipgloss.Color("86")
	colorTool    = lipgloss.Color("214")
	colorError   = lipgloss.Color("196")
	colorDim     = lipgloss.Color("241")

	userPrefixStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	answerPrefixStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorAnswer)

	thoughtStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	toolCallStyle = lipgloss.NewStyle().
			Foreground(colorTool)

	toolResultStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	systemStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	streamingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255")).
			Padding(0, 1)

	promptBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Padding(0, 1)
)

// newMarkdownRenderer creates a glamour renderer wrapped to the given width.
func newMarkdownRenderer(width int) *glamour.TermRenderer {
	r, _ := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	return r
}
