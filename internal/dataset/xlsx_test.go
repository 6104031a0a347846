package dataset

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTestWorkbook builds a minimal two-sheet .xlsx by hand: workbook,
// relationships, shared strings, and one worksheet per sheet.
func writeTestWorkbook(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	files := map[string]string{
		"xl/workbook.xml": `<?xml version="1.0"?>
<workbook xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <sheets>
    <sheet name="Sales" sheetId="1" r:id="rId1"/>
    <sheet name="Summary" sheetId="2" r:id="rId2"/>
  </sheets>
</workbook>`,
		"xl/_rels/workbook.xml.rels": `<?xml version="1.0"?>
<Relationships>
  <Relationship Id="rId1" Target="worksheets/sheet1.xml"/>
  <Relationship Id="rId2" Target="worksheets/sheet2.xml"/>
</Relationships>`,
		"xl/sharedStrings.xml": `<?xml version="1.0"?>
<sst><si><t>Item</t></si><si><t>Price</t></si><si><t>pizza</t></si><si><t>burger</t></si></sst>`,
		"xl/worksheets/sheet1.xml": `<?xml version="1.0"?>
<worksheet><sheetData>
  <row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>
  <row r="2"><c r="A2" t="s"><v>2</v></c><c r="B2"><v>10.5</v></c></row>
  <row r="3"><c r="A3" t="s"><v>3</v></c><c r="B3"><v>8</v></c></row>
</sheetData></worksheet>`,
		"xl/worksheets/sheet2.xml": `<?xml version="1.0"?>
<worksheet><sheetData>
  <row r="1"><c r="A1" t="s"><v>1</v></c></row>
  <row r="2"><c r="A2"><v>42</v></c></row>
</sheetData></worksheet>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "export.xlsx")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadXLSX(t *testing.T) {
	path := writeTestWorkbook(t)
	ds, err := Load(path, LoadOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(ds.Columns) != 2 || ds.Columns[0] != "Item" || ds.Columns[1] != "Price" {
		t.Fatalf("columns = %v", ds.Columns)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(ds.Rows))
	}
	if v, _ := ds.Cell(0, 0); v != "pizza" {
		t.Errorf("Cell(0,0) = %q, want shared string resolved", v)
	}
	if v, _ := ds.Cell(0, 1); v != "10.5" {
		t.Errorf("Cell(0,1) = %q, want inline number", v)
	}
	if !strings.Contains(ds.Name, "Sales") {
		t.Errorf("Name = %q, want sheet label included", ds.Name)
	}
}

func TestLoadXLSXBySheetName(t *testing.T) {
	path := writeTestWorkbook(t)
	ds, err := Load(path, LoadOptions{SheetName: "summary"}) // case-insensitive
	if err != nil {
		t.Fatal(err)
	}
	if len(ds.Columns) != 1 || ds.Columns[0] != "Price" {
		t.Fatalf("columns = %v", ds.Columns)
	}
	if v, _ := ds.Cell(0, 0); v != "42" {
		t.Errorf("Cell(0,0) = %q, want 42", v)
	}
}

func TestLoadXLSXUnknownSheet(t *testing.T) {
	path := writeTestWorkbook(t)
	_, err := Load(path, LoadOptions{SheetName: "Nope"})
	if err == nil {
		t.Fatal("expected error for unknown sheet")
	}
	if !strings.Contains(err.Error(), "Sales") || !strings.Contains(err.Error(), "Summary") {
		t.Errorf("error should list available sheets, got: %v", err)
	}
}

func TestLoadXLSXBySheetIndex(t *testing.T) {
	path := writeTestWorkbook(t)
	ds, err := Load(path, LoadOptions{SheetIndex: 2})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := ds.Cell(0, 0); v != "42" {
		t.Errorf("sheet 2 Cell(0,0) = %q, want 42", v)
	}
}

func TestSheetNames(t *testing.T) {
	path := writeTestWorkbook(t)
	names, err := SheetNames(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "Sales" || names[1] != "Summary" {
		t.Errorf("SheetNames = %v", names)
	}
}

func TestLoadXLSXNotAZip(t *testing.T) {
	path := writeTemp(t, "broken.xlsx", []byte("not a zip archive"))
	if _, err := Load(path, LoadOptions{}); err == nil {
		t.Fatal("expected error for a corrupt workbook")
	}
}

func TestColIndexFromRef(t *testing.T) {
	tests := []struct {
		ref  string
		want int
	}{
		{"A1", 0},
		{"B12", 1},
		{"Z3", 25},
		{"AA1", 26},
		{"AB10", 27},
	}
	for _, tt := range tests {
		if got := colIndexFromRef(tt.ref); got != tt.want {
			t.Errorf("colIndexFromRef(%q) = %d, want %d", tt.ref, got, tt.want)
		}
	}
}

func TestSparseRowsPadMissingCells(t *testing.T) {
	// Row 2 skips column B entirely; the reader must pad it.
	sheet := `<worksheet><sheetData>
  <row r="1"><c r="A1"><v>h1</v></c><c r="B1"><v>h2</v></c><c r="C1"><v>h3</v></c></row>
  <row r="2"><c r="A2"><v>1</v></c><c r="C2"><v>3</v></c></row>
</sheetData></worksheet>`
	rr := newSheetRowReader([]byte(sheet), nil)
	header, ok := rr.Next()
	if !ok || len(header) != 3 {
		t.Fatalf("header = %v, %v", header, ok)
	}
	row, ok := rr.Next()
	if !ok || len(row) != 3 {
		t.Fatalf("row = %v, %v", row, ok)
	}
	if row[0] != "1" || row[1] != "" || row[2] != "3" {
		t.Errorf("row = %v, want [1 \"\" 3]", row)
	}
}
