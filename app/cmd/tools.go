package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexcodex/finsight/bank"
	"github.com/lexcodex/finsight/tools"
)

func newToolsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the query tools the model can call",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			registry := tools.BuildRegistry(bank.NewMemoryStore(nil))
			for _, def := range registry.List() {
				fmt.Fprintf(out, "%s\n  %s\n", def.Name, def.Description)
				for _, p := range def.Parameters {
					line := fmt.Sprintf("    %s (%s)", p.Name, p.Type)
					if p.Required {
						line += " required"
					}
					if p.Default != nil {
						line += fmt.Sprintf(" default=%v", p.Default)
					}
					fmt.Fprintf(out, "%s: %s\n", line, p.Description)
				}
			}
			return nil
		},
	}
}
