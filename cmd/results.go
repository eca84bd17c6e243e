package cmd

import (
	"github.com/compressionlab/rdbench/internal/resultscmd"
	"github.com/spf13/cobra"
)

func newResultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Benchmark result aggregation tools",
		Long: `Tools for working with per-image rate-distortion benchmark results.

Supports merging result files from multiple lambda runs into one table enriched
with per-image pixel counts, inspecting merged records, computing per-lambda
summary statistics, and plotting rate-distortion curves.`,
	}

	// Add results subcommands
	cmd.AddCommand(resultscmd.NewMergeCmd())
	cmd.AddCommand(resultscmd.NewInspectCmd())
	cmd.AddCommand(resultscmd.NewSummaryCmd())
	cmd.AddCommand(resultscmd.NewPlotCmd())

	return cmd
}
