package resultscmd

import (
	"fmt"
	"strings"

	"github.com/compressionlab/rdbench/internal/rd/results"
	"github.com/spf13/cobra"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	opts := results.DefaultOptions()
	var limit int
	var verbose bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print merged records (useful for sanity-checking a merge)",
		Long: `Run the merge pipeline in memory and print the resulting records.

Nothing is written to disk. Useful for checking lambda assignment and pixel
enrichment before exporting.`,
		Example: `  # Show the first 20 merged rows
  rdbench results inspect --limit 20

  # Show every row of a local experiment tree
  rdbench results inspect --results-dir ./results --images-dir ./images --limit 0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(verbose)
			return executeInspect(opts, limit)
		},
	}

	cmd.Flags().StringVar(&opts.ResultsDir, "results-dir", opts.ResultsDir, "Root directory of per-run result files")
	cmd.Flags().StringVar(&opts.ImagesDir, "images-dir", opts.ImagesDir, "Directory of source images")
	cmd.Flags().StringVar(&opts.Pattern, "pattern", opts.Pattern, "Glob pattern for result file names")
	cmd.Flags().StringVar(&opts.ImagePattern, "image-pattern", opts.ImagePattern, "Glob pattern for image file names")
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of rows to print (0 for all)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	return cmd
}

func executeInspect(opts results.Options, limit int) error {
	resultsDir, err := results.ExpandHome(opts.ResultsDir)
	if err != nil {
		return err
	}
	imagesDir, err := results.ExpandHome(opts.ImagesDir)
	if err != nil {
		return err
	}

	merged, err := results.BuildMerged(resultsDir, imagesDir, opts.Pattern, opts.ImagePattern)
	if err != nil {
		return fmt.Errorf("failed to build merged table: %w", err)
	}

	n := merged.NumRows()
	shown := n
	if limit > 0 && limit < n {
		shown = limit
	}

	fmt.Printf("Merged %d rows (%d shown)\n", n, shown)
	fmt.Println(strings.Repeat("=", 80))

	cols := merged.Columns()
	for i := 0; i < shown; i++ {
		fmt.Printf("ROW %d/%d\n", i+1, n)
		for _, col := range cols {
			cell, err := merged.Cell(i, col)
			if err != nil {
				return err
			}
			value := "<null>"
			if cell.Valid {
				value = cell.String
			}
			fmt.Printf("  %-16s %s\n", col+":", value)
		}
		fmt.Println(strings.Repeat("-", 80))
	}

	return nil
}
