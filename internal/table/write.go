package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/KaramelBytes/drillchem-cli/internal/utils"
)

// WriteCSV writes the frame to path atomically. Missing cells are empty.
func WriteCSV(path string, f *Frame) error {
	var buf bytes.Buffer
	if err := EncodeCSV(&buf, f); err != nil {
		return err
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// EncodeCSV writes the frame header and rows to w.
func EncodeCSV(w io.Writer, f *Frame) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.ColumnNames()); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	rec := make([]string, len(f.Columns))
	for i, row := range f.Rows {
		for j := range rec {
			rec[j] = ""
			if j < len(row) {
				rec[j] = FormatCell(row[j])
			}
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("encode row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatCell renders a frame cell as text.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
