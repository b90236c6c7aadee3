package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lexcodex/finsight/agents"
)

var (
	cfgFile      string
	flagModel    string
	flagEndpoint string
	flagVerbose  bool

	cfg *agents.Config
)

// Execute is the entry point for the CLI. The context cancels in-flight
// model calls on interrupt.
func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd wires the cobra tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "finsight",
		Short:         "Ask questions about bank transactions through a tool-calling model",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgFile == "" {
				cfgFile = agents.DefaultConfigPath()
			}
			loaded, err := agents.LoadConfig(cfgFile)
			if err != nil {
				return err
			}
			cfg = loaded
			if flagModel != "" {
				cfg.Model.Name = flagModel
			}
			if flagEndpoint != "" {
				cfg.Model.Endpoint = flagEndpoint
			}
			if cmd.Flags().Changed("verbose") {
				cfg.Agent.Verbose = flagVerbose
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default ~/.finsight/config.yaml)")
	root.PersistentFlags().StringVar(&flagModel, "model", "", "Model name override")
	root.PersistentFlags().StringVar(&flagEndpoint, "endpoint", "", "Model backend endpoint override")
	root.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Trace loop steps")

	root.AddCommand(
		newAskCmd(),
		newAnalyzeCmd(),
		newChatCmd(),
		newToolsCmd(),
		newGenerateCmd(),
		newConfigCmd(),
	)
	return root
}
