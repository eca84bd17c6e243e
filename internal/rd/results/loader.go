package results

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/compressionlab/rdbench/internal/rd/table"
	"github.com/parquet-go/parquet-go"
)

// Discover walks root and returns every file whose base name matches the
// glob pattern (e.g. "clic*.csv"), sorted for deterministic merges.
func Discover(root, pattern string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, err := filepath.Match(pattern, d.Name())
		if err != nil {
			return fmt.Errorf("bad result pattern %q: %w", pattern, err)
		}
		if ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk results directory: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadResultFile reads one result file into a table. The format is detected
// from the extension: CSV or parquet.
func LoadResultFile(path string) (*table.Table, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return table.ReadCSV(path)
	case ".parquet":
		return loadParquet(path)
	default:
		return nil, fmt.Errorf("unsupported result file format: %s (supported: .csv, .parquet)", ext)
	}
}

// loadParquet reads a parquet result file and shapes it like the CSV
// exporter's output, including the leading unnamed index column, so that
// mixed-format inputs concatenate into one schema.
func loadParquet(path string) (*table.Table, error) {
	slog.Debug("Opening parquet result file", "path", path)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[resultRecord](pf)
	defer reader.Close()

	t := table.New(ColIndex, ColSeqName, ColRateBpp, ColPsnrDb, ColMSE, ColAnchor, ColOptionSelected)
	rows := make([]resultRecord, 128) // Read in batches
	index := 0

	for {
		n, err := reader.Read(rows)
		for _, rec := range rows[:n] {
			row := []table.Cell{
				table.String(strconv.Itoa(index)),
				table.String(rec.SeqName),
				table.String(formatFloat(rec.RateBpp)),
				table.String(formatFloat(rec.PsnrDb)),
				table.String(formatFloat(rec.MSE)),
				table.String(rec.Anchor),
				table.String(rec.OptionSelected),
			}
			if err := t.AppendRow(row); err != nil {
				return nil, err
			}
			index++
		}
		if err != nil {
			break
		}
	}

	slog.Debug("Finished reading parquet result file", "path", path, "rows", t.NumRows())
	return t, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
