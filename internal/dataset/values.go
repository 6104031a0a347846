package dataset

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

var currencyReplacer = strings.NewReplacer("$", "", ",", "")

// ParseCurrency parses a cell as a monetary amount, stripping currency
// punctuation ("$1,234.50" -> 1234.50). Returns false for unparseable or
// missing values; callers treat those as missing, never as zero.
func ParseCurrency(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := cast.ToFloat64E(currencyReplacer.Replace(s))
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParseFloat parses a cell as a plain number with no currency cleaning.
func ParseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := cast.ToFloat64E(s)
	if err != nil {
		return 0, false
	}
	return f, true
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"01/02/2006 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02/01/2006",
}

// ParseDate parses a cell as a timestamp, trying common POS export layouts
// in order. Returns false when no layout matches.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsNumericColumn reports whether the named column holds plain numbers:
// at least one non-missing cell, and every non-missing cell parses as a
// number without cleaning. Currency-formatted columns ("$12.00") are text
// here; BasicMetrics handles those through ParseCurrency.
func (d *Dataset) IsNumericColumn(name string) bool {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return false
	}
	seen := false
	for i := range d.Rows {
		v, ok := d.Cell(i, idx)
		if !ok {
			continue
		}
		if _, ok := ParseFloat(v); !ok {
			return false
		}
		seen = true
	}
	return seen
}

// NumericColumns lists the numeric columns in column order.
func (d *Dataset) NumericColumns() []string {
	var out []string
	for _, c := range d.Columns {
		if d.IsNumericColumn(c) {
			out = append(out, c)
		}
	}
	return out
}

// FloatColumn returns the parseable numeric values of a column in row order,
// skipping missing and unparseable cells.
func (d *Dataset) FloatColumn(name string) []float64 {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	var out []float64
	for i := range d.Rows {
		v, ok := d.Cell(i, idx)
		if !ok {
			continue
		}
		if f, ok := ParseFloat(v); ok {
			out = append(out, f)
		}
	}
	return out
}

// CurrencyColumn is FloatColumn with currency cleaning applied per cell.
func (d *Dataset) CurrencyColumn(name string) []float64 {
	idx := d.ColumnIndex(name)
	if idx < 0 {
		return nil
	}
	var out []float64
	for i := range d.Rows {
		v, ok := d.Cell(i, idx)
		if !ok {
			continue
		}
		if f, ok := ParseCurrency(v); ok {
			out = append(out, f)
		}
	}
	return out
}
