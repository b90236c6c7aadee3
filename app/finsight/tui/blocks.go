package tui

import (
	"encoding/json"
	"strings"

	"github.com/lexcodex/finsight/agents"
	"github.com/lexcodex/finsight/framework"
)

// blockKind identifies the type of a feed entry.
type blockKind int

const (
	blockUser blockKind = iota
	blockThought
	blockToolCall
	blockToolResult
	blockAnswer
	blockSystem
	blockError
)

// block is one entry in the conversation feed. The raw text is kept so the
// entry can be re-rendered when the terminal is resized.
type block struct {
	kind     blockKind
	text     string
	rendered string
}

func (m Model) appendBlock(kind blockKind, text string) Model {
	m.blocks = append(m.blocks, block{kind: kind, text: text, rendered: m.renderBlock(kind, text)})
	return m.refreshFeed()
}

func (m Model) addSystemBlock(text string) Model {
	return m.appendBlock(blockSystem, text)
}

func (m Model) addErrorBlock(err error) Model {
	return m.appendBlock(blockError, err.Error())
}

func (m Model) addToolCallBlock(inv *framework.ToolInvocation) Model {
	if inv == nil {
		return m
	}
	line := inv.Name
	if args := formatArgs(inv.Arguments); args != "" {
		line += " " + args
	}
	return m.appendBlock(blockToolCall, line)
}

func (m Model) addToolResultBlock(text string) Model {
	return m.appendBlock(blockToolResult, clipResult(text))
}

func (m Model) addAnswerBlock(res *agents.Result) Model {
	if res == nil {
		return m.refreshFeed()
	}
	if res.Exhausted {
		return m.appendBlock(blockSystem, res.Answer)
	}
	return m.appendBlock(blockAnswer, res.Answer)
}

// renderBlock styles one feed entry for the current terminal width.
func (m Model) renderBlock(kind blockKind, text string) string {
	switch kind {
	case blockUser:
		return userPrefixStyle.Render("> You") + "\n" + text
	case blockThought:
		return thoughtStyle.Render(text)
	case blockToolCall:
		return toolCallStyle.Render("  ⚙ " + text)
	case blockToolResult:
		return toolResultStyle.Render("  → " + text)
	case blockAnswer:
		return answerPrefixStyle.Render("> Analyst") + "\n" + m.renderMarkdown(text)
	case blockSystem:
		return systemStyle.Render(text)
	case blockError:
		return errorStyle.Render("  ✗ " + text)
	}
	return text
}

// formatArgs renders invocation arguments as compact JSON for display.
func formatArgs(args map[string]interface{}) string {
	if len(args) == 0 {
		return ""
	}
	data, err := json.Marshal(args)
	if err != nil {
		return ""
	}
	return clip(string(data), 80)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// clipResult trims a tool result to a few lines for the feed; the full text
// still reaches the model.
func clipResult(s string) string {
	s = strings.TrimSpace(s)
	lines := strings.SplitN(s, "\n", 6)
	if len(lines) > 5 {
		s = strings.Join(lines[:5], "\n") + "\n..."
	}
	return clip(s, 200)
}
