// Package table provides a small in-memory table of nullable string cells,
// just enough for concatenating, pruning, and joining delimited result files.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Cell is a single table value. Valid is false for cells that were absent
// from a source table (null semantics, like an unmatched join column).
type Cell struct {
	String string
	Valid  bool
}

// String returns a valid cell holding s.
func String(s string) Cell {
	return Cell{String: s, Valid: true}
}

// Null is the null cell.
var Null = Cell{}

// Table holds rows of cells under an ordered list of column names.
// Column names may repeat in theory but never do in practice; lookups
// use the first occurrence.
type Table struct {
	cols []string
	rows [][]Cell
}

// New creates an empty table with the given columns.
func New(cols ...string) *Table {
	return &Table{cols: append([]string(nil), cols...)}
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// colIndex returns the index of the named column, or -1.
func (t *Table) colIndex(name string) int {
	for i, c := range t.cols {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	return t.colIndex(name) >= 0
}

// AppendRow adds a row. The row must have exactly one cell per column.
func (t *Table) AppendRow(row []Cell) error {
	if len(row) != len(t.cols) {
		return fmt.Errorf("row has %d cells, table has %d columns", len(row), len(t.cols))
	}
	t.rows = append(t.rows, append([]Cell(nil), row...))
	return nil
}

// Cell returns the cell at row i in the named column.
func (t *Table) Cell(i int, name string) (Cell, error) {
	if i < 0 || i >= len(t.rows) {
		return Null, fmt.Errorf("row %d out of range (table has %d rows)", i, len(t.rows))
	}
	j := t.colIndex(name)
	if j < 0 {
		return Null, fmt.Errorf("no column %q", name)
	}
	return t.rows[i][j], nil
}

// AddConstColumn appends a column whose every cell holds value.
func (t *Table) AddConstColumn(name, value string) error {
	if t.HasColumn(name) {
		return fmt.Errorf("column %q already exists", name)
	}
	t.cols = append(t.cols, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], String(value))
	}
	return nil
}

// DropColumns removes the named columns. Every name must exist; a missing
// column is an error so that schema drift in the inputs surfaces instead
// of silently passing through.
func (t *Table) DropColumns(names ...string) error {
	drop := make(map[int]bool, len(names))
	for _, name := range names {
		j := t.colIndex(name)
		if j < 0 {
			return fmt.Errorf("cannot drop column %q: not present in table", name)
		}
		drop[j] = true
	}

	cols := make([]string, 0, len(t.cols)-len(drop))
	for j, c := range t.cols {
		if !drop[j] {
			cols = append(cols, c)
		}
	}
	rows := make([][]Cell, len(t.rows))
	for i, row := range t.rows {
		kept := make([]Cell, 0, len(cols))
		for j, cell := range row {
			if !drop[j] {
				kept = append(kept, cell)
			}
		}
		rows[i] = kept
	}
	t.cols, t.rows = cols, rows
	return nil
}

// Concat stacks tables row-wise. The result's columns are the union of all
// input columns in first-seen order; cells for columns a source table lacks
// are null.
func Concat(tables ...*Table) *Table {
	out := &Table{}
	for _, t := range tables {
		for _, c := range t.cols {
			if out.colIndex(c) < 0 {
				out.cols = append(out.cols, c)
			}
		}
	}
	for _, t := range tables {
		// Map source column index -> output column index once per table.
		idx := make([]int, len(t.cols))
		for j, c := range t.cols {
			idx[j] = out.colIndex(c)
		}
		for _, row := range t.rows {
			outRow := make([]Cell, len(out.cols))
			for j, cell := range row {
				outRow[idx[j]] = cell
			}
			out.rows = append(out.rows, outRow)
		}
	}
	return out
}

// LeftJoin merges right into t on the named key column. Every row of t is
// kept; where a right row has an equal key, the right table's non-key
// columns are filled in, otherwise they are null. If several right rows
// share a key the first one wins. The result has exactly t.NumRows() rows.
func (t *Table) LeftJoin(right *Table, key string) (*Table, error) {
	leftKey := t.colIndex(key)
	if leftKey < 0 {
		return nil, fmt.Errorf("left table has no join column %q", key)
	}
	rightKey := right.colIndex(key)
	if rightKey < 0 {
		return nil, fmt.Errorf("right table has no join column %q", key)
	}

	lookup := make(map[string][]Cell, len(right.rows))
	for _, row := range right.rows {
		k := row[rightKey]
		if !k.Valid {
			continue
		}
		if _, seen := lookup[k.String]; !seen {
			lookup[k.String] = row
		}
	}

	out := &Table{cols: append([]string(nil), t.cols...)}
	var rightCols []int
	for j, c := range right.cols {
		if j == rightKey {
			continue
		}
		out.cols = append(out.cols, c)
		rightCols = append(rightCols, j)
	}

	for _, row := range t.rows {
		outRow := make([]Cell, 0, len(out.cols))
		outRow = append(outRow, row...)
		var match []Cell
		if k := row[leftKey]; k.Valid {
			match = lookup[k.String]
		}
		for _, j := range rightCols {
			if match != nil {
				outRow = append(outRow, match[j])
			} else {
				outRow = append(outRow, Null)
			}
		}
		out.rows = append(out.rows, outRow)
	}
	return out, nil
}

// ReadCSV reads a comma-separated file whose first row is the header.
func ReadCSV(path string) (*Table, error) {
	return readDelimited(path, ',')
}

// ReadTSV reads a tab-separated file whose first row is the header.
func ReadTSV(path string) (*Table, error) {
	return readDelimited(path, '\t')
}

func readDelimited(path string, comma rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open result file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("result file %s is empty", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	t := New(header...)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		row := make([]Cell, len(record))
		for j, v := range record {
			row[j] = String(v)
		}
		if err := t.AppendRow(row); err != nil {
			return nil, fmt.Errorf("malformed row in %s: %w", path, err)
		}
	}
	return t, nil
}

// WriteTSV writes the table as tab-separated values with a header row.
// Null cells become empty fields. No row index is emitted.
func (t *Table) WriteTSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(t.cols); err != nil {
		return err
	}
	record := make([]string, len(t.cols))
	for _, row := range t.rows {
		for j, cell := range row {
			if cell.Valid {
				record[j] = cell.String
			} else {
				record[j] = ""
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
