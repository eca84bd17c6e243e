package resultscmd

import (
	"fmt"
	"strings"

	"github.com/compressionlab/rdbench/internal/rd/results"
	"github.com/spf13/cobra"
)

// NewSummaryCmd creates the summary command
func NewSummaryCmd() *cobra.Command {
	opts := results.DefaultOptions()
	var output string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Per-lambda rate/distortion statistics over the merged results",
		Long: `Compute aggregate statistics over the merged results, grouped by lambda.

For each lambda rung, reports row count plus mean/median/min/max of rate (bpp)
and PSNR (dB). Prints a text report by default; --output writes YAML as well.`,
		Example: `  # Print a summary of the standard experiment tree
  rdbench results summary

  # Also save the summary as YAML
  rdbench results summary --output summary.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(verbose)
			return executeSummary(opts, output)
		},
	}

	cmd.Flags().StringVar(&opts.ResultsDir, "results-dir", opts.ResultsDir, "Root directory of per-run result files")
	cmd.Flags().StringVar(&opts.ImagesDir, "images-dir", opts.ImagesDir, "Directory of source images")
	cmd.Flags().StringVar(&opts.Pattern, "pattern", opts.Pattern, "Glob pattern for result file names")
	cmd.Flags().StringVar(&opts.ImagePattern, "image-pattern", opts.ImagePattern, "Glob pattern for image file names")
	cmd.Flags().StringVar(&output, "output", "", "Optional path for a YAML summary file")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	return cmd
}

func executeSummary(opts results.Options, output string) error {
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

	summaries, err := results.Summarize(merged)
	if err != nil {
		return fmt.Errorf("failed to summarize results: %w", err)
	}

	fmt.Println(strings.Repeat("=", 70))
	fmt.Println("RATE-DISTORTION SUMMARY")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Results: %s\n", resultsDir)
	fmt.Printf("Rows:    %d\n\n", merged.NumRows())

	for _, s := range summaries {
		fmt.Printf("lambda %g (%d rows)\n", s.Lmbda, s.Rows)
		fmt.Printf("  rate (bpp): mean %.4f, median %.4f, min %.4f, max %.4f\n",
			s.MeanRate, s.MedianRate, s.MinRate, s.MaxRate)
		fmt.Printf("  PSNR (dB):  mean %.2f, median %.2f, min %.2f, max %.2f\n",
			s.MeanPsnr, s.MedianPsnr, s.MinPsnr, s.MaxPsnr)
	}
	fmt.Println(strings.Repeat("=", 70))

	if output != "" {
		out, err := results.ExpandHome(output)
		if err != nil {
			return err
		}
		if err := results.SaveSummaryYAML(out, resultsDir, summaries); err != nil {
			return err
		}
		fmt.Printf("\nSummary written to %s\n", out)
	}

	return nil
}
