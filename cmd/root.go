package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rdbench",
		Short: "Rate-distortion benchmark aggregation for learned image compression",
		Long: `rdbench consolidates per-image compression benchmark results across experiment runs.

It collects rate (bpp) and distortion (PSNR) records from result files, tags every
row with the lambda of the run that produced it, enriches rows with pixel counts
read from the source images, and exports merged tables, summaries, and RD curves.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newResultsCmd())

	return cmd
}
