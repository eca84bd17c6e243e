// Package pixels builds the per-image pixel-count lookup used to enrich
// benchmark rows. Only image headers are decoded, never pixel data.
package pixels

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	// Header decoders for the dataset image formats.
	_ "image/jpeg"
	_ "image/png"
)

// Record is one source image: the file stem used as the join key and the
// image's total pixel count.
type Record struct {
	SeqName string
	Pixels  int64
}

// Enumerate scans dir for images whose base name matches pattern (e.g.
// "*.png") and returns one Record per image, sorted by directory order.
// The first unreadable or corrupt image aborts the scan; a partial lookup
// would silently leave rows unenriched.
func Enumerate(dir, pattern string) ([]Record, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read image directory: %w", err)
	}

	var records []Record
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("bad image pattern %q: %w", pattern, err)
		}
		if !ok {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		width, height, err := dimensions(path)
		if err != nil {
			return nil, err
		}

		stem := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		records = append(records, Record{
			SeqName: stem,
			Pixels:  int64(width) * int64(height),
		})
		slog.Debug("Indexed image", "seq_name", stem, "width", width, "height", height)
	}

	slog.Info("Indexed source images", "dir", dir, "pattern", pattern, "count", len(records))
	return records, nil
}

// dimensions reads an image file's width and height from its header.
func dimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}
