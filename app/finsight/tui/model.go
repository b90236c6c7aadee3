package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/lexcodex/finsight/agents"
)

// Run starts the interactive chat session and blocks until the user quits.
func Run(ctx context.Context, agent *agents.Agent, modelName, persona string) error {
	program := tea.NewProgram(
		NewModel(agent, modelName, persona),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := program.Run()
	return err
}

// InputMode tracks the role of the prompt bar.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
)

// Model coordinates the feed, prompt bar, and status bar.
type Model struct {
	agent *agents.Agent

	feed    viewport.Model
	input   textinput.Model
	spinner spinner.Model

	statusBar StatusBar
	markdown  *glamour.TermRenderer

	blocks    []block
	streaming string
	running   bool

	streamCh  <-chan agents.Event
	cancelRun context.CancelFunc

	width  int
	height int
	ready  bool

	mode       InputMode
	autoFollow bool
}

// NewModel initializes the chat model around a configured agent.
func NewModel(agent *agents.Agent, modelName, persona string) Model {
	input := textinput.New()
	input.Placeholder = "Ask about the transaction data, or /help for commands"
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	return Model{
		agent: agent,
		input: input,
		spinner: sp,
		statusBar: StatusBar{
			model:   modelName,
			persona: persona,
		},
		mode:       ModeNormal,
		autoFollow: true,
	}
}

// submitQuestion sends the prompt bar contents to the agent as a question.
func (m Model) submitQuestion() (Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return m, nil
	}
	m.input.SetValue("")
	m.mode = ModeNormal

	if m.running {
		return m.addSystemBlock("Still working on the previous question (esc to abort)."), nil
	}

	m = m.appendBlock(blockUser, value)
	m.streaming = ""
	m.running = true
	m.autoFollow = true
	m.statusBar.questions++
	m.statusBar.started = time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	m.cancelRun = cancel
	m.streamCh = m.agent.RunStream(ctx, value)
	m = m.refreshFeed()
	return m, tea.Batch(listenToStream(m.streamCh), m.spinner.Tick)
}

// abortRun cancels the in-flight question, if any.
func (m Model) abortRun() (Model, tea.Cmd) {
	if !m.running || m.cancelRun == nil {
		return m, nil
	}
	m.cancelRun()
	return m.addSystemBlock("Aborting..."), nil
}

// quit cancels any running question and stops the program.
func (m Model) quit() (Model, tea.Cmd) {
	if m.cancelRun != nil {
		m.cancelRun()
	}
	return m, tea.Quit
}
