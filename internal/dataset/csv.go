package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// LoadCSV reads a comma/tab separated file into a Dataset. The first record
// is the header. Encodings are tried in order: UTF-8, Windows-1252, Latin-1;
// POS exports frequently carry legacy single-byte encodings.
func LoadCSV(path string, opt LoadOptions) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	text, err := decodeText(raw)
	if err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return &Dataset{Name: filepath.Base(path)}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	ncol := len(header)
	cols := make([]string, ncol)
	for i, h := range header {
		cols[i] = strings.TrimSpace(h)
	}

	ds := &Dataset{Name: filepath.Base(path), Columns: cols}
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(ds.Rows)+1, err)
		}
		ds.Rows = append(ds.Rows, normalizeRow(rec, ncol))
		if opt.MaxRows > 0 && len(ds.Rows) >= opt.MaxRows {
			break
		}
	}
	return ds, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// decodeText converts raw file bytes to a UTF-8 string. Valid UTF-8 passes
// through; anything else is decoded as Windows-1252, then Latin-1.
func decodeText(raw []byte) (string, error) {
	if utf8.Valid(raw) {
		return string(raw), nil
	}
	for _, dec := range []encoding.Encoding{charmap.Windows1252, charmap.ISO8859_1} {
		out, err := dec.NewDecoder().Bytes(raw)
		if err == nil && utf8.Valid(out) {
			return string(out), nil
		}
	}
	return "", errors.New("no usable encoding (tried utf-8, windows-1252, latin-1)")
}
