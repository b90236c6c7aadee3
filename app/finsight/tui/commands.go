package tui

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lexcodex/finsight/agents"
)

// CommandHandler mutates model state for /commands in the prompt bar.
type CommandHandler func(Model, []string) (Model, tea.Cmd)

// Command describes a slash command entry.
type Command struct {
	Name        string
	Aliases     []string
	Description string
	Usage       string
	Handler     CommandHandler
}

var commandRegistry = map[string]Command{}

func init() {
	registerCommand(Command{
		Name:        "help",
		Aliases:     []string{"h", "?"},
		Description: "Show available commands",
		Usage:       "/help [command]",
		Handler:     handleHelp,
	})
	registerCommand(Command{
		Name:        "tools",
		Aliases:     []string{"t"},
		Description: "List the query tools the agent can call",
		Usage:       "/tools",
		Handler:     handleTools,
	})
	registerCommand(Command{
		Name:        "persona",
		Aliases:     []string{"p"},
		Description: "Show or switch the agent persona",
		Usage:       "/persona [basic|detailed|analyst]",
		Handler:     handlePersona,
	})
	registerCommand(Command{
		Name:        "clear",
		Aliases:     []string{"cls"},
		Description: "Clear chat history",
		Usage:       "/clear",
		Handler:     handleClear,
	})
	registerCommand(Command{
		Name:        "quit",
		Aliases:     []string{"q", "exit"},
		Description: "Leave the chat",
		Usage:       "/quit",
		Handler:     handleQuit,
	})
}

func registerCommand(cmd Command) {
	commandRegistry[cmd.Name] = cmd
}

// parseCommand splits the slash-prefixed input into command + args.
func parseCommand(input string) (string, []string) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return "", nil
	}
	if !strings.HasPrefix(parts[0], "/") {
		return "", nil
	}
	name := strings.TrimPrefix(parts[0], "/")
	return name, parts[1:]
}

// runCommand finds the registered command (with alias fallback).
func runCommand(m Model, name string, args []string) (Model, tea.Cmd) {
	cmd, ok := commandRegistry[name]
	if !ok {
		for _, registered := range commandRegistry {
			for _, alias := range registered.Aliases {
				if alias == name {
					cmd = registered
					ok = true
					break
				}
			}
			if ok {
				break
			}
		}
	}
	if !ok {
		return m.addSystemBlock(fmt.Sprintf("Unknown command: %s", name)), nil
	}
	return cmd.Handler(m, args)
}

func handleHelp(m Model, args []string) (Model, tea.Cmd) {
	if len(args) > 0 {
		if cmd, ok := commandRegistry[args[0]]; ok {
			text := fmt.Sprintf("%s - %s\nUsage: %s", cmd.Name, cmd.Description, cmd.Usage)
			return m.addSystemBlock(text), nil
		}
	}
	names := make([]string, 0, len(commandRegistry))
	for name := range commandRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	var b strings.Builder
	b.WriteString("Available commands:\n\n")
	for _, name := range names {
		cmd := commandRegistry[name]
		b.WriteString(fmt.Sprintf("  %s - %s\n", cmd.Usage, cmd.Description))
	}
	return m.addSystemBlock(b.String()), nil
}

func handleTools(m Model, args []string) (Model, tea.Cmd) {
	defs := m.agent.Tools.List()
	if len(defs) == 0 {
		return m.addSystemBlock("No tools registered"), nil
	}
	var b strings.Builder
	b.WriteString("Available tools:\n\n")
	for _, def := range defs {
		b.WriteString(fmt.Sprintf("  %s - %s\n", def.Name, def.Description))
	}
	return m.addSystemBlock(b.String()), nil
}

func handlePersona(m Model, args []string) (Model, tea.Cmd) {
	if len(args) == 0 {
		return m.addSystemBlock(fmt.Sprintf("Current persona: %s", m.statusBar.persona)), nil
	}
	name := strings.ToLower(args[0])
	switch name {
	case "basic", "detailed", "analyst":
	default:
		return m.addSystemBlock("Unknown persona (choose basic, detailed, or analyst)"), nil
	}
	m.agent.Persona = agents.PersonaPrompt(name)
	m.statusBar.persona = name
	return m.addSystemBlock(fmt.Sprintf("Persona switched to %s; applies from the next question", name)), nil
}

func handleClear(m Model, args []string) (Model, tea.Cmd) {
	m.blocks = nil
	return m.addSystemBlock("History cleared"), nil
}

func handleQuit(m Model, args []string) (Model, tea.Cmd) {
	return m.quit()
}
