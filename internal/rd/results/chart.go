package results

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/compressionlab/rdbench/internal/rd/table"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotRDCurves renders one rate-distortion curve PNG per sequence in the
// merged table (rate on X, PSNR on Y, one point per lambda rung) and
// returns the written file paths.
func PlotRDCurves(t *table.Table, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}

	curves := make(map[string]plotter.XYs)
	for i := 0; i < t.NumRows(); i++ {
		seq, err := stringAt(t, i, ColSeqName)
		if err != nil {
			return nil, err
		}
		rate, err := floatAt(t, i, ColRateBpp)
		if err != nil {
			return nil, err
		}
		psnr, err := floatAt(t, i, ColPsnrDb)
		if err != nil {
			return nil, err
		}
		curves[seq] = append(curves[seq], plotter.XY{X: rate, Y: psnr})
	}

	seqs := make([]string, 0, len(curves))
	for seq := range curves {
		seqs = append(seqs, seq)
	}
	sort.Strings(seqs)

	var written []string
	for _, seq := range seqs {
		pts := curves[seq]
		sort.Slice(pts, func(i, j int) bool { return pts[i].X < pts[j].X })

		pl := plot.New()
		pl.Title.Text = seq
		pl.X.Label.Text = "rate (bpp)"
		pl.Y.Label.Text = "PSNR (dB)"
		pl.Add(plotter.NewGrid())

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to build RD curve for %s: %w", seq, err)
		}
		pl.Add(line, points)

		path := filepath.Join(outDir, seq+"_rd.png")
		if err := pl.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
			return nil, fmt.Errorf("failed to save RD curve for %s: %w", seq, err)
		}
		slog.Debug("Wrote RD curve", "seq_name", seq, "points", len(pts), "path", path)
		written = append(written, path)
	}

	slog.Info("Wrote RD curves", "dir", outDir, "count", len(written))
	return written, nil
}
