package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lexcodex/finsight/app/finsight/tui"
)

// newChatCmd starts the interactive terminal chat.
func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the analyst in an interactive terminal UI",
		RunE: func(cmd *cobra.Command, args []string) error {
			agent, cleanup, err := buildAgent()
			if err != nil {
				return err
			}
			defer cleanup()
			// Loop logging would tear the alternate screen.
			agent.Verbose = false
			return tui.Run(cmd.Context(), agent, cfg.Model.Name, cfg.Agent.Persona)
		},
	}
}
