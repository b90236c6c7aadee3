package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/lexcodex/finsight/bank"
	"github.com/lexcodex/finsight/datagen"
)

func newGenerateCmd() *cobra.Command {
	var customers, months int
	var output, startDate, sqlitePath string
	var personas []string
	var seed int64

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate synthetic transaction data",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			opts := datagen.Options{
				Customers: customers,
				Months:    months,
				Personas:  personas,
				Seed:      seed,
			}
			if startDate != "" {
				start, err := time.Parse("2006-01-02", startDate)
				if err != nil {
					return fmt.Errorf("bad --start-date: %w", err)
				}
				opts.Start = start
			}
			gen, err := datagen.New(opts)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Generating transaction data for %d customers over %d months...\n", customers, months)
			txns := gen.Generate()

			if dir := filepath.Dir(output); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := bank.SaveCSV(output, txns); err != nil {
				return err
			}
			fmt.Fprintf(out, "Generated %d total transactions\nSaved to: %s\n", len(txns), output)

			if sqlitePath != "" {
				store, err := bank.OpenSQLite(sqlitePath)
				if err != nil {
					return err
				}
				defer store.Close()
				if err := store.ImportCSV(output); err != nil {
					return err
				}
				fmt.Fprintf(out, "Imported into: %s\n", sqlitePath)
			}

			fmt.Fprintln(out, "\nSummary by customer:")
			for _, s := range datagen.Summarize(txns) {
				fmt.Fprintf(out, "  %s: %d txns, %.2f total, %d credits\n", s.CustomerID, s.Count, s.Total, s.CreditCount)
			}
			fmt.Fprintln(out, "\nCategory distribution:")
			for _, c := range datagen.CategoryDistribution(txns) {
				fmt.Fprintf(out, "  %-20s %d\n", c.Category, c.Count)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&customers, "customers", "c", 5, "Number of customers to generate")
	cmd.Flags().IntVarP(&months, "months", "m", 6, "Months of transaction history")
	cmd.Flags().StringVarP(&output, "output", "o", "data/sample_transactions.csv", "Output CSV path")
	cmd.Flags().StringSliceVarP(&personas, "personas", "p", nil, "Personas to cycle through (default all)")
	cmd.Flags().Int64VarP(&seed, "seed", "s", 0, "Random seed for reproducibility")
	cmd.Flags().StringVar(&startDate, "start-date", "", "First month of history (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sqlitePath, "sqlite", "", "Also import the rows into this SQLite database")
	return cmd
}
