package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Dataset is an in-memory table: an ordered list of column names and rows of
// string cells. Cells keep their raw text; typed access happens through the
// helpers in values.go. An empty (or whitespace-only) cell counts as missing.
type Dataset struct {
	// Name identifies the source, e.g. the file base name plus sheet.
	Name    string
	Columns []string
	Rows    [][]string
}

// LoadOptions controls loading behavior.
type LoadOptions struct {
	// SheetName selects an XLSX sheet by name. Empty means use SheetIndex.
	SheetName string
	// SheetIndex is a 1-based XLSX sheet index; <=0 means first sheet.
	SheetIndex int
	// MaxRows limits data rows read; 0 means unlimited.
	MaxRows int
	// Delimiter for CSV. If 0, auto-detects from the file extension.
	Delimiter rune
}

// ErrUnsupported indicates a file format the loader does not handle.
var ErrUnsupported = errors.New("unsupported file format")

// Load reads a tabular file into a Dataset, dispatching on extension.
// Supported: .csv, .tsv, .xlsx.
func Load(path string, opt LoadOptions) (*Dataset, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".tsv":
		return LoadCSV(path, opt)
	case ".xlsx":
		return LoadXLSX(path, opt)
	default:
		return nil, fmt.Errorf("%w: %s (supported: .csv, .tsv, .xlsx)", ErrUnsupported, ext)
	}
}

// NumRows returns the number of data rows.
func (d *Dataset) NumRows() int { return len(d.Rows) }

// NumColumns returns the number of columns.
func (d *Dataset) NumColumns() int { return len(d.Columns) }

// ColumnIndex returns the index of the named column, or -1 if absent.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (d *Dataset) HasColumn(name string) bool { return d.ColumnIndex(name) >= 0 }

// Column returns the raw cell values of the named column, one per row.
// Unknown columns yield nil.
func (d *Dataset) Column(name string) []string {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	out := make([]string, len(d.Rows))
	for i, row := range d.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out
}

// Cell returns the trimmed cell at (row, column index) and whether it is
// present (non-missing).
func (d *Dataset) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(d.Rows) || col < 0 || col >= len(d.Rows[row]) {
		return "", false
	}
	v := strings.TrimSpace(d.Rows[row][col])
	return v, v != ""
}

// normalizeRow pads or copies rec so it has exactly ncol cells.
func normalizeRow(rec []string, ncol int) []string {
	out := make([]string, ncol)
	copy(out, rec)
	return out
}
