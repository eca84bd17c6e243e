package resultscmd

import (
	"fmt"

	"github.com/compressionlab/rdbench/internal/rd/results"
	"github.com/spf13/cobra"
)

// NewPlotCmd creates the plot command
func NewPlotCmd() *cobra.Command {
	opts := results.DefaultOptions()
	var outputDir string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render one rate-distortion curve PNG per sequence",
		Long: `Render rate-distortion curves for every sequence in the merged results.

Each chart plots one point per lambda rung (rate on X, PSNR on Y) joined by a
line, written as <seq_name>_rd.png into the output directory.`,
		Example: `  # Plot RD curves for the standard experiment tree
  rdbench results plot --output-dir ./rd_curves`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(verbose)
			return executePlot(opts, outputDir)
		},
	}

	cmd.Flags().StringVar(&opts.ResultsDir, "results-dir", opts.ResultsDir, "Root directory of per-run result files")
	cmd.Flags().StringVar(&opts.ImagesDir, "images-dir", opts.ImagesDir, "Directory of source images")
	cmd.Flags().StringVar(&opts.Pattern, "pattern", opts.Pattern, "Glob pattern for result file names")
	cmd.Flags().StringVar(&opts.ImagePattern, "image-pattern", opts.ImagePattern, "Glob pattern for image file names")
	cmd.Flags().StringVar(&outputDir, "output-dir", "./rd_curves", "Directory for chart PNGs")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	return cmd
}

func executePlot(opts results.Options, outputDir string) error {
	resultsDir, err := results.ExpandHome(opts.ResultsDir)
	if err != nil {
		return err
	}
	imagesDir, err := results.ExpandHome(opts.ImagesDir)
	if err != nil {
		return err
	}
	outDir, err := results.ExpandHome(outputDir)
	if err != nil {
		return err
	}

	merged, err := results.BuildMerged(resultsDir, imagesDir, opts.Pattern, opts.ImagePattern)
	if err != nil {
		return fmt.Errorf("failed to build merged table: %w", err)
	}

	written, err := results.PlotRDCurves(merged, outDir)
	if err != nil {
		return fmt.Errorf("failed to plot RD curves: %w", err)
	}

	fmt.Printf("Wrote %d RD curves to %s\n", len(written), outDir)
	return nil
}
