// Package table reads the assay, method reference and drillhole spatial tables
// from CSV/TSV/XLSX files and writes output tables as CSV.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/KaramelBytes/drillchem-cli/internal/assay"
)

// Options controls how an input table is opened.
type Options struct {
	// Delimiter for CSV. If 0, chosen from the file extension (',' or '\t').
	Delimiter rune
	// XLSX sheet selection: by name, else 1-based index (default first sheet).
	SheetName  string
	SheetIndex int
}

// RowSource yields the rows of a table after its header.
type RowSource interface {
	Header() []string
	// Next returns io.EOF after the last row. Rows are at least as long as the header.
	Next() ([]string, error)
	Close() error
}

// Open picks a RowSource by file extension.
func Open(path string, opt Options) (RowSource, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		return openXLSX(path, opt.SheetName, opt.SheetIndex)
	}
	return openCSV(path, opt)
}

type csvSource struct {
	f      *os.File
	r      *csv.Reader
	header []string
	row    int
}

func openCSV(path string, opt Options) (*csvSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		f.Close()
		return nil, fmt.Errorf("read header: %w", err)
	}
	return &csvSource{f: f, r: r, header: header}, nil
}

func (s *csvSource) Header() []string { return s.header }

func (s *csvSource) Next() ([]string, error) {
	if s.header == nil {
		return nil, io.EOF
	}
	rec, err := s.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("read row %d: %w", s.row+1, err)
	}
	s.row++
	return padRow(rec, len(s.header)), nil
}

func (s *csvSource) Close() error { return s.f.Close() }

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

func padRow(rec []string, n int) []string {
	if len(rec) >= n {
		return rec
	}
	tmp := make([]string, n)
	copy(tmp, rec)
	return tmp
}

// columns maps normalized header names to their index.
type columns map[string]int

func indexColumns(header []string) columns {
	c := columns{}
	for i, h := range header {
		key := normalizeName(h)
		if _, dup := c[key]; !dup {
			c[key] = i
		}
	}
	return c
}

func normalizeName(h string) string {
	return strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}

func (c columns) has(name string) bool {
	_, ok := c[normalizeName(name)]
	return ok
}

// get returns the trimmed cell for name, or "" when the column is absent.
func (c columns) get(row []string, name string) string {
	i, ok := c[normalizeName(name)]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// require reports the first missing column as a ConfigError.
func (c columns) require(table string, names ...string) error {
	for _, n := range names {
		if !c.has(n) {
			return &assay.ConfigError{Field: table + "." + n, Reason: "required column missing"}
		}
	}
	return nil
}
