package results

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPlotRDCurves(t *testing.T) {
	tbl := summaryFixture(t)
	outDir := filepath.Join(t.TempDir(), "curves")

	written, err := PlotRDCurves(tbl, outDir)
	if err != nil {
		t.Fatalf("PlotRDCurves failed: %v", err)
	}

	// One chart per sequence.
	if len(written) != 2 {
		t.Fatalf("Expected 2 charts, got %d: %v", len(written), written)
	}
	for _, path := range written {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Chart %s missing: %v", path, err)
		}
		if info.Size() == 0 {
			t.Errorf("Chart %s is empty", path)
		}
	}
	if filepath.Base(written[0]) != "bar_rd.png" || filepath.Base(written[1]) != "foo_rd.png" {
		t.Errorf("Unexpected chart names: %v", written)
	}
}
