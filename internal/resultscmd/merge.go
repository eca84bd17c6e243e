package resultscmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/compressionlab/rdbench/internal/rd/results"
	"github.com/spf13/cobra"
)

// NewMergeCmd creates the merge command
func NewMergeCmd() *cobra.Command {
	opts := results.DefaultOptions()
	var verbose bool

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge per-lambda result files into one enriched table",
		Long: `Merge benchmark result files from every lambda run into a single table.

Each result file is tagged with the lambda of the run directory that produced it,
bookkeeping columns are dropped, and every row is enriched with the pixel count of
its source image. The merged table is written as TSV (or parquet), overwriting any
existing output file.`,
		Example: `  # Merge with the standard paths
  rdbench results merge

  # Merge a different experiment tree
  rdbench results merge --results-dir ./results/kodak --images-dir ./data/kodak

  # Export parquet instead of TSV
  rdbench results merge --output ./merged.parquet --format parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(verbose)
			return executeMerge(opts)
		},
	}

	cmd.Flags().StringVar(&opts.ResultsDir, "results-dir", opts.ResultsDir, "Root directory of per-run result files")
	cmd.Flags().StringVar(&opts.ImagesDir, "images-dir", opts.ImagesDir, "Directory of source images (join keys are file stems)")
	cmd.Flags().StringVar(&opts.OutputPath, "output", opts.OutputPath, "Output file path (overwritten)")
	cmd.Flags().StringVar(&opts.Pattern, "pattern", opts.Pattern, "Glob pattern for result file names")
	cmd.Flags().StringVar(&opts.ImagePattern, "image-pattern", opts.ImagePattern, "Glob pattern for image file names")
	cmd.Flags().StringVar(&opts.Format, "format", opts.Format, "Output format (tsv or parquet)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	return cmd
}

func executeMerge(opts results.Options) error {
	merged, err := results.Merge(opts)
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	fmt.Printf("\nMerge complete!\n")
	fmt.Printf("  Rows:    %d\n", merged.NumRows())
	fmt.Printf("  Columns: %v\n", merged.Columns())
	fmt.Printf("  Output:  %s\n", opts.OutputPath)
	return nil
}

// configureLogging installs a slog handler at info level, or debug when
// verbose is set.
func configureLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
