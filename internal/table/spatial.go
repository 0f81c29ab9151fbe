package table

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/drillchem-cli/internal/summary"
)

// ReadSpatial loads the drillhole spatial attribute table at path.
func ReadSpatial(path string, opt Options) (*summary.SpatialTable, error) {
	src, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return ReadSpatialFrom(src)
}

// ReadSpatialFrom keys every column except DRILLHOLE_NUMBER by drillhole
// number. Rows without a usable drillhole number are skipped and the first
// row of a repeated drillhole wins.
func ReadSpatialFrom(src RowSource) (*summary.SpatialTable, error) {
	header := src.Header()
	cols := indexColumns(header)
	if err := cols.require("spatial", ColDrillhole); err != nil {
		return nil, err
	}
	key := cols[normalizeName(ColDrillhole)]
	var names []string
	var keep []int
	for i, h := range header {
		if i == key {
			continue
		}
		names = append(names, strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		keep = append(keep, i)
	}
	tbl := summary.NewSpatialTable(names)
	for {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			return tbl, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read spatial: %w", err)
		}
		hole := parseDrillhole(strings.TrimSpace(row[key]))
		if hole == nil {
			continue
		}
		vals := make([]string, len(keep))
		for j, i := range keep {
			vals[j] = row[i]
		}
		tbl.Add(*hole, vals)
	}
}
