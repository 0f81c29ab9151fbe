package table

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/KaramelBytes/drillchem-cli/internal/assay"
)

// Assay table columns.
const (
	ColSampleNo     = "SAMPLE_NO"
	ColSampleSource = "SAMPLE_SOURCE_CODE"
	ColDrillhole    = "DRILLHOLE_NUMBER"
	ColDepthFrom    = "DH_DEPTH_FROM"
	ColDepthTo      = "DH_DEPTH_TO"
	ColAnalysisNo   = "SAMPLE_ANALYSIS_NO"
	ColAnalysisType = "ANALYSIS_TYPE_DESC"
	ColLaboratory   = "LABORATORY"
	ColChemCode     = "CHEM_CODE"
	ColValue        = "VALUE"
	ColUnit         = "UNIT"
	ColMethodCode   = "CHEM_METHOD_CODE"
)

// ReadAssays loads every row of the assay table at path.
func ReadAssays(path string, opt Options) ([]assay.RawSampleRecord, error) {
	src, err := Open(path, opt)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return ReadAssaysFrom(src)
}

// ReadAssaysFrom loads assay records from src. A missing identity, value or
// unit column is a ConfigError; other columns are optional. Cell-level
// problems are left for cleaning to reject.
func ReadAssaysFrom(src RowSource) ([]assay.RawSampleRecord, error) {
	cols := indexColumns(src.Header())
	if err := cols.require("assays", ColDrillhole, ColChemCode, ColValue, ColUnit); err != nil {
		return nil, err
	}
	var out []assay.RawSampleRecord
	for {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read assays: %w", err)
		}
		out = append(out, assay.RawSampleRecord{
			SampleNo:        cols.get(row, ColSampleNo),
			SampleSource:    cols.get(row, ColSampleSource),
			DrillholeNumber: parseDrillhole(cols.get(row, ColDrillhole)),
			DepthFrom:       parseOptionalFloat(cols.get(row, ColDepthFrom)),
			DepthTo:         parseOptionalFloat(cols.get(row, ColDepthTo)),
			AnalysisNo:      cols.get(row, ColAnalysisNo),
			AnalysisType:    cols.get(row, ColAnalysisType),
			Laboratory:      cols.get(row, ColLaboratory),
			ChemCode:        cols.get(row, ColChemCode),
			RawValue:        cols.get(row, ColValue),
			Unit:            cols.get(row, ColUnit),
			MethodCode:      cols.get(row, ColMethodCode),
		})
	}
}

// parseDrillhole accepts integers and integral floats ("100.0"); anything else is nil.
func parseDrillhole(s string) *int64 {
	if s == "" {
		return nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return nil
	}
	n := int64(f)
	return &n
}

func parseOptionalFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
