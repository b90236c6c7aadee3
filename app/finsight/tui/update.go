package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lexcodex/finsight/agents"
)

// Init fulfills the Bubble Tea Model interface.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update applies incoming Bubble Tea messages to mutate the Model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			return m.quit()
		case "ctrl+l":
			m.blocks = nil
			return m.refreshFeed(), nil
		}
		if m.mode == ModeCommand {
			return m.handleCommandMode(msg)
		}
		return m.handleNormalMode(msg)
	case streamEventMsg:
		return m.handleStreamEvent(msg.event)
	case streamClosedMsg:
		return m, nil
	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m.refreshFeed(), cmd
	}

	// Everything else, mouse wheel included, scrolls the feed.
	if m.ready {
		var cmd tea.Cmd
		m.feed, cmd = m.feed.Update(msg)
		m.autoFollow = m.feed.AtBottom()
		return m, cmd
	}
	return m, nil
}

// handleResize adjusts the feed/input layout on terminal resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	statusBarHeight := 1
	promptBarHeight := 1
	feedHeight := max(1, msg.Height-statusBarHeight-promptBarHeight)

	if !m.ready {
		m.feed = viewport.New(msg.Width, feedHeight)
		m.feed.MouseWheelEnabled = true
		m.ready = true
	} else {
		m.feed.Width = msg.Width
		m.feed.Height = feedHeight
	}
	m.input.Width = max(10, msg.Width-4)
	m.markdown = newMarkdownRenderer(max(20, msg.Width-4))

	// Answers were wrapped for the old width.
	for i := range m.blocks {
		m.blocks[i].rendered = m.renderBlock(m.blocks[i].kind, m.blocks[i].text)
	}
	return m.refreshFeed(), nil
}

// handleNormalMode implements the default prompt behavior.
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyRunes {
		if msg.String() == "/" && strings.TrimSpace(m.input.Value()) == "" {
			m.mode = ModeCommand
			m.input.SetValue("/")
			m.input.CursorEnd()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "enter":
		return m.submitQuestion()
	case "esc":
		return m.abortRun()
	case "up", "down", "pgup", "pgdown", "home", "end":
		var cmd tea.Cmd
		m.feed, cmd = m.feed.Update(msg)
		m.autoFollow = m.feed.AtBottom()
		return m, cmd
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// handleCommandMode processes slash-prefixed commands.
func (m Model) handleCommandMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		raw := strings.TrimSpace(m.input.Value())
		m.input.SetValue("")
		m.mode = ModeNormal
		if raw == "" {
			return m, nil
		}
		if !strings.HasPrefix(raw, "/") {
			raw = "/" + raw
		}
		name, args := parseCommand(raw)
		if name == "" {
			return m, nil
		}
		return runCommand(m, name, args)
	case "esc":
		m.mode = ModeNormal
		m.input.SetValue("")
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// handleStreamEvent folds one agent event into the feed.
func (m Model) handleStreamEvent(ev agents.Event) (tea.Model, tea.Cmd) {
	if ev.Err != nil {
		m = m.finishRun()
		m = m.flushStreaming()
		return m.addErrorBlock(ev.Err), nil
	}

	switch ev.Kind {
	case agents.EventText:
		m.streaming += ev.Text
		return m.refreshFeed(), listenToStream(m.streamCh)
	case agents.EventToolCall:
		m = m.flushStreaming()
		m.statusBar.toolCalls++
		m = m.addToolCallBlock(ev.Invocation)
		return m, listenToStream(m.streamCh)
	case agents.EventToolResult:
		m = m.addToolResultBlock(ev.Text)
		return m, listenToStream(m.streamCh)
	case agents.EventAnswer:
		m = m.finishRun()
		m.streaming = ""
		return m.addAnswerBlock(ev.Result), nil
	}
	return m, listenToStream(m.streamCh)
}

// finishRun clears the in-flight state once a run reaches a terminal event.
func (m Model) finishRun() Model {
	m.running = false
	m.cancelRun = nil
	m.streamCh = nil
	m.statusBar.elapsed += time.Since(m.statusBar.started)
	return m
}

// flushStreaming turns accumulated fragments into a reasoning block. The
// model often narrates before requesting tools; that text is not the answer.
func (m Model) flushStreaming() Model {
	text := strings.TrimSpace(m.streaming)
	m.streaming = ""
	if text == "" {
		return m
	}
	return m.appendBlock(blockThought, text)
}
