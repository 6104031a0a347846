package dataset

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LoadXLSX reads one sheet of a .xlsx workbook into a Dataset. The first row
// is the header. Sheet selection: opt.SheetName if set, else opt.SheetIndex
// (1-based), else the first sheet.
func LoadXLSX(path string, opt LoadOptions) (*Dataset, error) {
	wb, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	target, sheetLabel, err := wb.resolveSheet(opt.SheetName, opt.SheetIndex)
	if err != nil {
		return nil, err
	}

	name := filepath.Base(path)
	if sheetLabel != "" {
		name = fmt.Sprintf("%s (sheet: %s)", name, sheetLabel)
	}
	rr := newSheetRowReader(readZipFile(wb.zr, target), wb.shared)
	header, ok := rr.Next()
	if !ok || len(header) == 0 {
		return &Dataset{Name: name}, nil
	}
	ncol := len(header)
	cols := make([]string, ncol)
	for i, h := range header {
		cols[i] = strings.TrimSpace(h)
	}

	ds := &Dataset{Name: name, Columns: cols}
	for {
		row, ok := rr.Next()
		if !ok {
			break
		}
		ds.Rows = append(ds.Rows, normalizeRow(row, ncol))
		if opt.MaxRows > 0 && len(ds.Rows) >= opt.MaxRows {
			break
		}
	}
	return ds, nil
}

// SheetNames lists the sheet names of a workbook in workbook order.
func SheetNames(path string) ([]string, error) {
	wb, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(wb.sheets))
	for i, s := range wb.sheets {
		names[i] = s.Name
	}
	return names, nil
}

type workbook struct {
	zr     *zip.Reader
	sheets []wbSheet
	rels   map[string]string
	shared []string
}

type wbSheet struct {
	Name    string
	SheetID int
	RID     string
}

func openWorkbook(path string) (*workbook, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	return &workbook{
		zr:     zr,
		sheets: parseWorkbookXML(readZipFile(zr, "xl/workbook.xml")),
		rels:   parseRelationships(readZipFile(zr, "xl/_rels/workbook.xml.rels")),
		shared: parseSharedStrings(readZipFile(zr, "xl/sharedStrings.xml")),
	}, nil
}

// resolveSheet maps a sheet name or 1-based index to a worksheet ZIP path.
func (wb *workbook) resolveSheet(sheetName string, sheetIndex int) (target, label string, err error) {
	if sheetName != "" {
		for _, s := range wb.sheets {
			if strings.EqualFold(s.Name, sheetName) {
				if rel, ok := wb.rels[s.RID]; ok {
					return normalizeRelPath(rel), s.Name, nil
				}
			}
		}
		available := make([]string, len(wb.sheets))
		for i, s := range wb.sheets {
			available[i] = s.Name
		}
		return "", "", fmt.Errorf("sheet %q not found (available sheets: %s)",
			sheetName, strings.Join(available, ", "))
	}
	idx := sheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx <= len(wb.sheets) {
		s := wb.sheets[idx-1]
		if rel, ok := wb.rels[s.RID]; ok {
			return normalizeRelPath(rel), s.Name, nil
		}
	}
	// fallback to the conventional worksheet path
	return fmt.Sprintf("xl/worksheets/sheet%d.xml", idx), "", nil
}

func readZipFile(zr *zip.Reader, name string) []byte {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil
			}
			defer rc.Close()
			b, _ := io.ReadAll(rc)
			return b
		}
	}
	return nil
}

func parseWorkbookXML(data []byte) []wbSheet {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var sheets []wbSheet
	for {
		tok, err := dec.Token()
		if err != nil {
			return sheets
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var s wbSheet
			for _, a := range se.Attr {
				switch a.Name.Local {
				case "name":
					s.Name = a.Value
				case "sheetId":
					s.SheetID = atoiSafe(a.Value)
				case "id": // r: namespace
					s.RID = a.Value
				}
			}
			sheets = append(sheets, s)
		}
	}
}

func parseRelationships(data []byte) map[string]string {
	out := map[string]string{}
	if len(data) == 0 {
		return out
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var id, tgt string
			for _, a := range se.Attr {
				switch a.Name.Local {
				case "Id":
					id = a.Value
				case "Target":
					tgt = a.Value
				}
			}
			if id != "" {
				out[id] = tgt
			}
		}
	}
}

func parseSharedStrings(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	dec := xml.NewDecoder(bytes.NewReader(data))
	var out []string
	var buf strings.Builder
	var inT bool
	for {
		tok, err := dec.Token()
		if err != nil {
			return out
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "si" {
				buf.Reset()
			}
			if se.Name.Local == "t" {
				inT = true
			}
		case xml.EndElement:
			if se.Name.Local == "t" {
				inT = false
			}
			if se.Name.Local == "si" {
				out = append(out, buf.String())
				buf.Reset()
			}
		case xml.CharData:
			if inT {
				buf.Write([]byte(se))
			}
		}
	}
}

// sheetRowReader iterates <row> elements of a worksheet, resolving shared
// strings and sparse cell references.
type sheetRowReader struct {
	dec    *xml.Decoder
	shared []string
	inRow  bool
	curRow []string
	maxCol int
}

func newSheetRowReader(data []byte, shared []string) *sheetRowReader {
	return &sheetRowReader{dec: xml.NewDecoder(bytes.NewReader(data)), shared: shared}
}

func (r *sheetRowReader) Next() ([]string, bool) {
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return nil, false
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "row" {
				r.inRow = true
				r.curRow = nil
				r.maxCol = 0
			}
			if r.inRow && se.Name.Local == "c" {
				var rAttr, tAttr string
				for _, a := range se.Attr {
					switch a.Name.Local {
					case "r":
						rAttr = a.Value
					case "t":
						tAttr = a.Value
					}
				}
				colIdx := colIndexFromRef(rAttr)
				if colIdx+1 > r.maxCol {
					r.maxCol = colIdx + 1
				}
				val := r.readCellValue(tAttr)
				if len(r.curRow) <= colIdx {
					tmp := make([]string, colIdx+1)
					copy(tmp, r.curRow)
					r.curRow = tmp
				}
				r.curRow[colIdx] = val
			}
		case xml.EndElement:
			if se.Name.Local == "row" {
				if len(r.curRow) < r.maxCol {
					tmp := make([]string, r.maxCol)
					copy(tmp, r.curRow)
					r.curRow = tmp
				}
				r.inRow = false
				return r.curRow, true
			}
		}
	}
}

func (r *sheetRowReader) readCellValue(tAttr string) string {
	var val string
	for {
		tok, err := r.dec.Token()
		if err != nil {
			return val
		}
		switch se := tok.(type) {
		case xml.StartElement:
			if se.Name.Local == "v" || se.Name.Local == "t" {
				var sb strings.Builder
				for {
					tk, er := r.dec.Token()
					if er != nil {
						break
					}
					if ed, ok := tk.(xml.EndElement); ok && (ed.Name.Local == "v" || ed.Name.Local == "t") {
						break
					}
					if ch, ok := tk.(xml.CharData); ok {
						sb.Write([]byte(ch))
					}
				}
				val = sb.String()
			}
		case xml.EndElement:
			if se.Name.Local == "c" {
				if tAttr == "s" { // shared string reference
					idx := atoiSafe(val)
					if idx >= 0 && idx < len(r.shared) {
						return r.shared[idx]
					}
					return ""
				}
				return val
			}
		}
	}
}

// colIndexFromRef converts a cell reference like "C12" to a 0-based column index.
func colIndexFromRef(ref string) int {
	i := 0
	for i < len(ref) {
		c := ref[i]
		if c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' {
			i++
			continue
		}
		break
	}
	s := strings.ToUpper(ref[:i])
	idx := 0
	for j := 0; j < len(s); j++ {
		idx = idx*26 + int(s[j]-'A'+1)
	}
	return idx - 1
}

func atoiSafe(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + int(c-'0')
	}
	return n
}

// Relationship targets may carry a leading slash or omit the xl/ prefix;
// ZIP entries use neither form consistently.
func normalizeRelPath(rel string) string {
	rel = strings.TrimPrefix(rel, "/")
	if strings.HasPrefix(rel, "xl/") {
		return rel
	}
	return "xl/" + rel
}
