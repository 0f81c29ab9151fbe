package table

import (
	"errors"
	"fmt"
	"io"

	"github.com/KaramelBytes/drillchem-cli/internal/assay"
)

// Method reference table columns.
const (
	ColMethod        = "CHEM_METHOD"
	ColDetermination = "DETERMINATION_CODE_RD"
	ColDigestion     = "DIGESTION_CODE_RD"
	ColFusion        = "FUSION_TYPE"
)

// ReadMethods loads the method reference table at path.
func ReadMethods(path string, opt Options) (*assay.MethodTable, error) {
	src, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return ReadMethodsFrom(src)
}

// ReadMethodsFrom builds a MethodTable from src. Only CHEM_METHOD is
// required; absent category columns leave that category unknown.
func ReadMethodsFrom(src RowSource) (*assay.MethodTable, error) {
	cols := indexColumns(src.Header())
	if err := cols.require("methods", ColMethod); err != nil {
		return nil, err
	}
	tbl := assay.NewMethodTable()
	for {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			return tbl, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read methods: %w", err)
		}
		code := cols.get(row, ColMethod)
		if code == "" {
			continue
		}
		tbl.Add(code, assay.MethodCategories{
			Determination: cols.get(row, ColDetermination),
			Digestion:     cols.get(row, ColDigestion),
			Fusion:        cols.get(row, ColFusion),
		})
	}
}
