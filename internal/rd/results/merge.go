package results

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/compressionlab/rdbench/internal/rd/lambda"
	"github.com/compressionlab/rdbench/internal/rd/pixels"
	"github.com/compressionlab/rdbench/internal/rd/table"
	"github.com/parquet-go/parquet-go"
)

// Options configures a merge run. The defaults reproduce the standard
// aggregation over the clic20-pro-valid finetuning runs.
type Options struct {
	ResultsDir   string
	ImagesDir    string
	OutputPath   string
	Pattern      string
	ImagePattern string
	Format       string
}

// DefaultOptions returns the standard merge configuration. Paths are
// home-relative and expanded at run time.
func DefaultOptions() Options {
	return Options{
		ResultsDir:   "~/rd_results/finetuning",
		ImagesDir:    "~/data/clic20-pro-valid",
		OutputPath:   "~/rd_results/merged_results.tsv",
		Pattern:      "clic*.csv",
		ImagePattern: "*.png",
		Format:       "tsv",
	}
}

// BuildMerged runs the aggregation pipeline up to (but not including)
// export: discover result files, load each one and tag it with its run's
// lambda, concatenate, prune bookkeeping columns, and left-join per-image
// pixel counts on seq_name. The returned table has exactly one row per
// input row; sequences without a matching source image keep a null pixel
// count.
func BuildMerged(resultsDir, imagesDir, pattern, imagePattern string) (*table.Table, error) {
	files, err := Discover(resultsDir, pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no result files matching %q under %s", pattern, resultsDir)
	}
	slog.Info("Discovered result files", "count", len(files), "root", resultsDir)

	tables := make([]*table.Table, 0, len(files))
	for _, path := range files {
		lmbda, err := lambda.ForPath(path)
		if err != nil {
			return nil, err
		}
		t, err := LoadResultFile(path)
		if err != nil {
			return nil, err
		}
		if err := t.AddConstColumn(ColLambda, formatFloat(lmbda)); err != nil {
			return nil, fmt.Errorf("failed to annotate %s: %w", path, err)
		}
		slog.Debug("Loaded result file", "path", path, "rows", t.NumRows(), "lmbda", lmbda)
		tables = append(tables, t)
	}

	merged := table.Concat(tables...)
	slog.Info("Concatenated result tables", "files", len(tables), "rows", merged.NumRows())

	if err := merged.DropColumns(prunedColumns...); err != nil {
		return nil, err
	}

	imgs, err := pixels.Enumerate(imagesDir, imagePattern)
	if err != nil {
		return nil, err
	}
	pixTable := table.New(ColSeqName, ColPixels)
	for _, rec := range imgs {
		row := []table.Cell{table.String(rec.SeqName), table.String(strconv.FormatInt(rec.Pixels, 10))}
		if err := pixTable.AppendRow(row); err != nil {
			return nil, err
		}
	}

	merged, err = merged.LeftJoin(pixTable, ColSeqName)
	if err != nil {
		return nil, fmt.Errorf("failed to join pixel counts: %w", err)
	}
	return merged, nil
}

// Merge runs the full pipeline and writes the merged table to
// opts.OutputPath, overwriting any existing file. It returns the merged
// table for reporting.
func Merge(opts Options) (*table.Table, error) {
	resultsDir, err := ExpandHome(opts.ResultsDir)
	if err != nil {
		return nil, err
	}
	imagesDir, err := ExpandHome(opts.ImagesDir)
	if err != nil {
		return nil, err
	}

	merged, err := BuildMerged(resultsDir, imagesDir, opts.Pattern, opts.ImagePattern)
	if err != nil {
		return nil, err
	}

	out, err := ExpandHome(opts.OutputPath)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	switch opts.Format {
	case "tsv":
		err = ExportTSV(merged, out)
	case "parquet":
		err = ExportParquet(merged, out)
	default:
		err = fmt.Errorf("unsupported output format: %s (supported: tsv, parquet)", opts.Format)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("Wrote merged results", "path", out, "rows", merged.NumRows(), "format", opts.Format)
	return merged, nil
}

// ExpandHome resolves a leading "~" against the current user's home
// directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ExportTSV writes the table as tab-separated values.
func ExportTSV(t *table.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := t.WriteTSV(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// ExportParquet writes the merged table to parquet using the fixed
// MergedRecord schema. Columns beyond that schema are not carried; TSV is
// the lossless format.
func ExportParquet(t *table.Table, path string) error {
	records, err := toMergedRecords(t)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	writer := parquet.NewGenericWriter[MergedRecord](f)
	if _, err := writer.Write(records); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return f.Close()
}

// toMergedRecords converts merged table rows into the typed export schema.
func toMergedRecords(t *table.Table) ([]MergedRecord, error) {
	records := make([]MergedRecord, 0, t.NumRows())
	for i := 0; i < t.NumRows(); i++ {
		var rec MergedRecord
		var err error
		if rec.SeqName, err = stringAt(t, i, ColSeqName); err != nil {
			return nil, err
		}
		if rec.RateBpp, err = floatAt(t, i, ColRateBpp); err != nil {
			return nil, err
		}
		if rec.PsnrDb, err = floatAt(t, i, ColPsnrDb); err != nil {
			return nil, err
		}
		if rec.Lmbda, err = floatAt(t, i, ColLambda); err != nil {
			return nil, err
		}

		cell, err := t.Cell(i, ColPixels)
		if err != nil {
			return nil, err
		}
		if cell.Valid {
			px, err := strconv.ParseInt(cell.String, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: bad pixel count %q: %w", i, cell.String, err)
			}
			rec.Pixels = &px
		}
		records = append(records, rec)
	}
	return records, nil
}

func stringAt(t *table.Table, i int, col string) (string, error) {
	cell, err := t.Cell(i, col)
	if err != nil {
		return "", err
	}
	if !cell.Valid {
		return "", fmt.Errorf("row %d: column %q is null", i, col)
	}
	return cell.String, nil
}

func floatAt(t *table.Table, i int, col string) (float64, error) {
	s, err := stringAt(t, i, col)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: column %q: bad value %q: %w", i, col, s, err)
	}
	return v, nil
}
