package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexcodex/finsight/agents"
)

func newAskCmd() *cobra.Command {
	var stream bool
	var persona string
	var maxIterations int
	var concurrent bool

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask one question and print the answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.Join(args, " ")
			if persona != "" {
				cfg.Agent.Persona = persona
			}
			if maxIterations > 0 {
				cfg.Agent.MaxIterations = maxIterations
			}
			if concurrent {
				cfg.Agent.ConcurrentTools = true
			}

			agent, cleanup, err := buildAgent()
			if err != nil {
				return err
			}
			defer cleanup()

			if stream {
				return streamAnswer(cmd, agent, question)
			}
			result, err := agent.Run(cmd.Context(), question)
			if err != nil {
				return backendHint(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Answer)
			return nil
		},
	}
	cmd.Flags().BoolVar(&stream, "stream", false, "Print the answer as it is generated")
	cmd.Flags().StringVar(&persona, "persona", "", "Persona: analyst, basic, or detailed")
	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "Loop budget override")
	cmd.Flags().BoolVar(&concurrent, "concurrent", false, "Run one turn's tool calls in parallel")
	return cmd
}

// streamAnswer prints text fragments as they arrive. Intermediate reasoning
// streams too; tool activity shows up through the verbose trace instead.
func streamAnswer(cmd *cobra.Command, agent *agents.Agent, question string) error {
	out := cmd.OutOrStdout()
	for event := range agent.RunStream(cmd.Context(), question) {
		switch {
		case event.Err != nil:
			return backendHint(event.Err)
		case event.Kind == agents.EventText:
			fmt.Fprint(out, event.Text)
		case event.Kind == agents.EventAnswer:
			if event.Result.Exhausted {
				fmt.Fprint(out, event.Result.Answer)
			}
			fmt.Fprintln(out)
		}
	}
	return nil
}
