package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func mustAppend(t *testing.T, tbl *Table, cells ...Cell) {
	t.Helper()
	if err := tbl.AppendRow(cells); err != nil {
		t.Fatalf("AppendRow failed: %v", err)
	}
}

func TestReadCSV(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test.csv")

	data := `,seq_name,rate_bpp
0,foo,0.25
1,bar,0.5
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	tbl, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}

	wantCols := []string{"", "seq_name", "rate_bpp"}
	gotCols := tbl.Columns()
	if len(gotCols) != len(wantCols) {
		t.Fatalf("Expected %d columns, got %d", len(wantCols), len(gotCols))
	}
	for i, c := range wantCols {
		if gotCols[i] != c {
			t.Errorf("Column %d: expected %q, got %q", i, c, gotCols[i])
		}
	}

	if tbl.NumRows() != 2 {
		t.Errorf("Expected 2 rows, got %d", tbl.NumRows())
	}

	cell, err := tbl.Cell(1, "seq_name")
	if err != nil {
		t.Fatalf("Cell failed: %v", err)
	}
	if !cell.Valid || cell.String != "bar" {
		t.Errorf("Expected seq_name bar, got %+v", cell)
	}
}

func TestReadCSVMissingFile(t *testing.T) {
	if _, err := ReadCSV("/nonexistent/path/results.csv"); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestConcatRowCountAndColumnUnion(t *testing.T) {
	a := New("seq_name", "rate_bpp")
	mustAppend(t, a, String("foo"), String("0.25"))
	mustAppend(t, a, String("bar"), String("0.5"))

	b := New("seq_name", "psnr_db")
	mustAppend(t, b, String("baz"), String("31.0"))

	got := Concat(a, b)

	if got.NumRows() != a.NumRows()+b.NumRows() {
		t.Errorf("Expected %d rows, got %d", a.NumRows()+b.NumRows(), got.NumRows())
	}

	wantCols := []string{"seq_name", "rate_bpp", "psnr_db"}
	gotCols := got.Columns()
	if len(gotCols) != len(wantCols) {
		t.Fatalf("Expected columns %v, got %v", wantCols, gotCols)
	}
	for i, c := range wantCols {
		if gotCols[i] != c {
			t.Errorf("Column %d: expected %q, got %q", i, c, gotCols[i])
		}
	}

	// Cells for columns a table lacks are null.
	cell, err := got.Cell(0, "psnr_db")
	if err != nil {
		t.Fatalf("Cell failed: %v", err)
	}
	if cell.Valid {
		t.Errorf("Expected null psnr_db for row from table a, got %+v", cell)
	}
	cell, err = got.Cell(2, "rate_bpp")
	if err != nil {
		t.Fatalf("Cell failed: %v", err)
	}
	if cell.Valid {
		t.Errorf("Expected null rate_bpp for row from table b, got %+v", cell)
	}
}

func TestDropColumns(t *testing.T) {
	tbl := New("", "seq_name", "mse", "anchor")
	mustAppend(t, tbl, String("0"), String("foo"), String("12.3"), String("hm"))

	if err := tbl.DropColumns("", "mse", "anchor"); err != nil {
		t.Fatalf("DropColumns failed: %v", err)
	}

	cols := tbl.Columns()
	if len(cols) != 1 || cols[0] != "seq_name" {
		t.Errorf("Expected columns [seq_name], got %v", cols)
	}
	cell, err := tbl.Cell(0, "seq_name")
	if err != nil {
		t.Fatalf("Cell failed: %v", err)
	}
	if cell.String != "foo" {
		t.Errorf("Expected foo, got %q", cell.String)
	}
}

func TestDropColumnsMissingIsError(t *testing.T) {
	tbl := New("seq_name")
	if err := tbl.DropColumns("mse"); err == nil {
		t.Error("Expected error dropping missing column, got nil")
	}
}

func TestLeftJoin(t *testing.T) {
	left := New("seq_name", "rate_bpp")
	mustAppend(t, left, String("foo"), String("0.25"))
	mustAppend(t, left, String("bar"), String("0.5"))
	mustAppend(t, left, String("foo"), String("1.0"))

	right := New("seq_name", "pixels")
	mustAppend(t, right, String("foo"), String("2073600"))

	got, err := left.LeftJoin(right, "seq_name")
	if err != nil {
		t.Fatalf("LeftJoin failed: %v", err)
	}

	// Enrichment never adds or removes rows.
	if got.NumRows() != left.NumRows() {
		t.Fatalf("Expected %d rows, got %d", left.NumRows(), got.NumRows())
	}

	tests := []struct {
		row    int
		pixels string
		valid  bool
	}{
		{0, "2073600", true},
		{1, "", false},
		{2, "2073600", true},
	}
	for _, tt := range tests {
		cell, err := got.Cell(tt.row, "pixels")
		if err != nil {
			t.Fatalf("Cell failed: %v", err)
		}
		if cell.Valid != tt.valid {
			t.Errorf("Row %d: expected valid=%v, got %+v", tt.row, tt.valid, cell)
		}
		if cell.Valid && cell.String != tt.pixels {
			t.Errorf("Row %d: expected pixels %s, got %s", tt.row, tt.pixels, cell.String)
		}
	}
}

func TestLeftJoinMissingKeyColumn(t *testing.T) {
	left := New("seq_name")
	right := New("pixels")
	if _, err := left.LeftJoin(right, "seq_name"); err == nil {
		t.Error("Expected error for right table without join column, got nil")
	}
}

func TestWriteTSVRoundTrip(t *testing.T) {
	tbl := New("seq_name", "lmbda", "pixels")
	mustAppend(t, tbl, String("foo"), String("0.001"), String("2073600"))
	mustAppend(t, tbl, String("bar"), String("0.004"), Null)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "out.tsv")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create output file: %v", err)
	}
	if err := tbl.WriteTSV(f); err != nil {
		t.Fatalf("WriteTSV failed: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "seq_name\tlmbda\tpixels" {
		t.Errorf("Unexpected header line: %q", lines[0])
	}
	if lines[2] != "bar\t0.004\t" {
		t.Errorf("Expected null cell to serialize empty, got %q", lines[2])
	}

	back, err := ReadTSV(path)
	if err != nil {
		t.Fatalf("ReadTSV failed: %v", err)
	}
	if back.NumRows() != tbl.NumRows() {
		t.Errorf("Round trip changed row count: %d != %d", back.NumRows(), tbl.NumRows())
	}
	gotCols, wantCols := back.Columns(), tbl.Columns()
	if len(gotCols) != len(wantCols) {
		t.Fatalf("Round trip changed columns: %v != %v", gotCols, wantCols)
	}
	for i := range wantCols {
		if gotCols[i] != wantCols[i] {
			t.Errorf("Column %d: expected %q, got %q", i, wantCols[i], gotCols[i])
		}
	}
}

func TestAddConstColumn(t *testing.T) {
	tbl := New("seq_name")
	mustAppend(t, tbl, String("foo"))
	mustAppend(t, tbl, String("bar"))

	if err := tbl.AddConstColumn("lmbda", "0.001"); err != nil {
		t.Fatalf("AddConstColumn failed: %v", err)
	}
	for i := 0; i < tbl.NumRows(); i++ {
		cell, err := tbl.Cell(i, "lmbda")
		if err != nil {
			t.Fatalf("Cell failed: %v", err)
		}
		if cell.String != "0.001" {
			t.Errorf("Row %d: expected lmbda 0.001, got %q", i, cell.String)
		}
	}

	if err := tbl.AddConstColumn("lmbda", "0.004"); err == nil {
		t.Error("Expected error adding duplicate column, got nil")
	}
}
