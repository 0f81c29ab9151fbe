package table

import (
	"github.com/KaramelBytes/drillchem-cli/internal/assay"
	"github.com/KaramelBytes/drillchem-cli/internal/summary"
)

// Kind is the storage type of a frame column.
type Kind int

const (
	Text Kind = iota
	Integer
	Real
)

// Column names a frame column and its type.
type Column struct {
	Name string
	Kind Kind
}

// Frame is an output table. A nil cell is a missing value; other cells are
// string, int64 or float64 according to the column Kind.
type Frame struct {
	Columns []Column
	Rows    [][]any
}

// ColumnNames returns the header row.
func (f *Frame) ColumnNames() []string {
	out := make([]string, len(f.Columns))
	for i, c := range f.Columns {
		out[i] = c.Name
	}
	return out
}

// Derived output columns.
const (
	ColBDL           = "BDL"
	ColConvertedPPM  = "converted_ppm"
	ColDetermOut     = "DETERMINATION"
	ColDigestOut     = "DIGESTION"
	ColFusionOut     = "FUSION"
	ColLogNorm       = "log_norm"
	ColZScoreNorm    = "Z_score_norm"
	ColZScoreMax     = "Z_score_max"
	ColPPMMean       = "converted_ppm_mean"
	ColPPMMin        = "converted_ppm_min"
	ColPPMMax        = "converted_ppm_max"
	ColMedianDepth   = "median_depth"
	ColBin           = "bin"
	spatialDupSuffix = "_dh"
)

var processedColumns = []Column{
	{ColSampleNo, Text},
	{ColSampleSource, Text},
	{ColDrillhole, Integer},
	{ColDepthFrom, Real},
	{ColDepthTo, Real},
	{ColAnalysisNo, Text},
	{ColAnalysisType, Text},
	{ColLaboratory, Text},
	{ColChemCode, Text},
	{ColValue, Real},
	{ColUnit, Text},
	{ColMethodCode, Text},
	{ColBDL, Integer},
	{ColConvertedPPM, Real},
	{ColDetermOut, Text},
	{ColDigestOut, Text},
	{ColFusionOut, Text},
}

func processedRow(r assay.CleanedSampleRecord) []any {
	return []any{
		r.SampleNo,
		r.SampleSource,
		r.Drillhole(),
		optFloat(r.DepthFrom),
		optFloat(r.DepthTo),
		r.AnalysisNo,
		r.AnalysisType,
		r.Laboratory,
		r.ChemCode,
		r.Value,
		r.Unit,
		r.MethodCode,
		int64(r.BDL),
		r.ConvertedPPM,
		r.Determination,
		r.Digestion,
		r.Fusion,
	}
}

func optFloat(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// withSpatial appends spatial attribute columns, suffixing any name already
// taken so the header stays unique.
func withSpatial(base []Column, spatial *summary.SpatialTable) []Column {
	cols := make([]Column, len(base), len(base)+len(spatial.ColumnNames()))
	copy(cols, base)
	taken := map[string]bool{}
	for _, c := range base {
		taken[normalizeName(c.Name)] = true
	}
	for _, name := range spatial.ColumnNames() {
		for taken[normalizeName(name)] {
			name += spatialDupSuffix
		}
		taken[normalizeName(name)] = true
		cols = append(cols, Column{Name: name, Kind: Text})
	}
	return cols
}

func appendSpatial(row []any, attrs summary.Attributes, n int) []any {
	for i := 0; i < n; i++ {
		if attrs == nil {
			row = append(row, nil)
			continue
		}
		row = append(row, attrs[i])
	}
	return row
}

// CleanedFrame is the processed table for one species.
func CleanedFrame(recs []assay.CleanedSampleRecord) *Frame {
	f := &Frame{Columns: append([]Column(nil), processedColumns...)}
	for _, r := range recs {
		f.Rows = append(f.Rows, processedRow(r))
	}
	return f
}

// NormalizedFrame is the processed table plus log_norm and Z_score_norm.
func NormalizedFrame(recs []summary.NormalizedRecord) *Frame {
	cols := append([]Column(nil), processedColumns...)
	cols = append(cols, Column{ColLogNorm, Real}, Column{ColZScoreNorm, Real})
	f := &Frame{Columns: cols}
	for _, r := range recs {
		f.Rows = append(f.Rows, append(processedRow(r.CleanedSampleRecord), r.LogNorm, r.ZScoreNorm))
	}
	return f
}

// DrillholeSummaryFrame is the per-drillhole statistics table.
func DrillholeSummaryFrame(sums []summary.DrillholeSummary, spatial *summary.SpatialTable) *Frame {
	base := []Column{
		{ColDrillhole, Integer},
		{ColZScoreMax, Real},
		{ColPPMMean, Real},
		{ColPPMMin, Real},
		{ColPPMMax, Real},
	}
	n := len(spatial.ColumnNames())
	f := &Frame{Columns: withSpatial(base, spatial)}
	for _, s := range sums {
		row := []any{s.DrillholeNumber, s.MaxZScore, s.MeanPPM, s.MinPPM, s.MaxPPM}
		f.Rows = append(f.Rows, appendSpatial(row, s.Spatial, n))
	}
	return f
}

// DrillholeMaxFrame is the per-drillhole maximum record table.
func DrillholeMaxFrame(maxes []summary.DrillholeMax, spatial *summary.SpatialTable) *Frame {
	n := len(spatial.ColumnNames())
	f := &Frame{Columns: withSpatial(processedColumns, spatial)}
	for _, m := range maxes {
		f.Rows = append(f.Rows, appendSpatial(processedRow(m.CleanedSampleRecord), m.Spatial, n))
	}
	return f
}

// IntervalFrame is the per-drillhole, per-depth-bin maximum record table.
func IntervalFrame(rows []summary.IntervalSummary, spatial *summary.SpatialTable) *Frame {
	base := append([]Column(nil), processedColumns...)
	base = append(base, Column{ColMedianDepth, Real}, Column{ColBin, Text})
	n := len(spatial.ColumnNames())
	f := &Frame{Columns: withSpatial(base, spatial)}
	for _, r := range rows {
		row := append(processedRow(r.CleanedSampleRecord), r.MidpointDepth, r.Bin.String())
		f.Rows = append(f.Rows, appendSpatial(row, r.Spatial, n))
	}
	return f
}
