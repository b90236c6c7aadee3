package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexcodex/finsight/agents"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze customer_id [category1 category2]",
		Short: "Run the canned analyst flows over one customer",
		Long: `With just a customer id, runs the three-part review: total income,
total spending, and top spending categories. With two categories, asks
which of the two the customer spends more on.`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 2 {
				return fmt.Errorf("comparing needs two categories, got one")
			}
			agent, cleanup, err := buildAgent()
			if err != nil {
				return err
			}
			defer cleanup()

			analyst := &agents.Analyst{Agent: agent}
			var result *agents.Result
			if len(args) == 3 {
				result, err = analyst.CompareSpending(cmd.Context(), args[0], args[1], args[2])
			} else {
				result, err = analyst.AnalyzeCustomer(cmd.Context(), args[0])
			}
			if err != nil {
				return backendHint(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Answer)
			return nil
		},
	}
	return cmd
}
