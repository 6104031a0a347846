package dataset

import "testing"

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$1,234.50", 1234.50, true},
		{"$10.00", 10, true},
		{"12.5", 12.5, true},
		{" 7 ", 7, true},
		{"-$3.25", -3.25, true},
		{"", 0, false},
		{"free", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseCurrency(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseCurrency(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseFloatRejectsCurrency(t *testing.T) {
	if _, ok := ParseFloat("$10.00"); ok {
		t.Error("ParseFloat must not clean currency punctuation")
	}
	if v, ok := ParseFloat("42"); !ok || v != 42 {
		t.Errorf("ParseFloat(42) = %v, %v", v, ok)
	}
}

func TestParseDate(t *testing.T) {
	cases := []string{
		"2024-01-15",
		"2024-01-15 13:45:00",
		"1/15/2024",
		"01/15/2024 13:45:00",
		"2024/01/15",
	}
	for _, in := range cases {
		d, ok := ParseDate(in)
		if !ok {
			t.Errorf("ParseDate(%q) failed", in)
			continue
		}
		if d.Year() != 2024 || d.Month() != 1 || d.Day() != 15 {
			t.Errorf("ParseDate(%q) = %v", in, d)
		}
	}
	if _, ok := ParseDate("yesterday"); ok {
		t.Error("ParseDate should reject free text")
	}
}

func TestNumericColumns(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"item", "qty", "price", "partial"},
		Rows: [][]string{
			{"pizza", "2", "$10.00", "5"},
			{"burger", "1", "$8.00", "oops"},
		},
	}
	got := ds.NumericColumns()
	if len(got) != 1 || got[0] != "qty" {
		t.Errorf("NumericColumns = %v, want [qty]: currency and mixed columns are text", got)
	}
}

func TestNumericColumnNeedsAtLeastOneValue(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"empty"},
		Rows:    [][]string{{""}, {"  "}},
	}
	if ds.IsNumericColumn("empty") {
		t.Error("an all-missing column is not numeric")
	}
}

func TestFloatAndCurrencyColumns(t *testing.T) {
	ds := &Dataset{
		Columns: []string{"price"},
		Rows:    [][]string{{"$10.00"}, {"bad"}, {"$20.00"}, {""}},
	}
	if got := ds.CurrencyColumn("price"); len(got) != 2 || got[0] != 10 || got[1] != 20 {
		t.Errorf("CurrencyColumn = %v", got)
	}
	if got := ds.FloatColumn("price"); len(got) != 0 {
		t.Errorf("FloatColumn = %v, want none for currency text", got)
	}
	if got := ds.CurrencyColumn("nope"); got != nil {
		t.Errorf("unknown column = %v, want nil", got)
	}
}
