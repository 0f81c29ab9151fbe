package table

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KaramelBytes/drillchem-cli/internal/assay"
	"github.com/KaramelBytes/drillchem-cli/internal/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cleanedRec(hole int64, ppm float64, from, to *float64) assay.CleanedSampleRecord {
	return assay.CleanedSampleRecord{
		RawSampleRecord: assay.RawSampleRecord{
			SampleNo:        "S1",
			DrillholeNumber: &hole,
			DepthFrom:       from,
			DepthTo:         to,
			ChemCode:        "Au",
			RawValue:        "<0.5",
			Unit:            "ppm",
			MethodCode:      "FA50",
		},
		Value:         0.5,
		BDL:           assay.BelowDetection,
		ConvertedPPM:  ppm,
		Determination: "AAS",
		Digestion:     "unknown",
		Fusion:        "unknown",
	}
}

func TestCleanedFrame_CSV(t *testing.T) {
	f := CleanedFrame([]assay.CleanedSampleRecord{cleanedRec(7, 0.001, ptr(1.5), nil)})
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, f))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "SAMPLE_NO,SAMPLE_SOURCE_CODE,DRILLHOLE_NUMBER,DH_DEPTH_FROM,DH_DEPTH_TO,SAMPLE_ANALYSIS_NO,ANALYSIS_TYPE_DESC,LABORATORY,CHEM_CODE,VALUE,UNIT,CHEM_METHOD_CODE,BDL,converted_ppm,DETERMINATION,DIGESTION,FUSION", lines[0])
	assert.Equal(t, "S1,,7,1.5,,,,,Au,0.5,ppm,FA50,1,0.001,AAS,unknown,unknown", lines[1])
}

func TestDrillholeSummaryFrame_SpatialColumns(t *testing.T) {
	spatial := summary.NewSpatialTable([]string{"EASTING", "converted_ppm_max"})
	spatial.Add(1, []string{"500", "x"})
	sums := []summary.DrillholeSummary{
		{DrillholeNumber: 1, MeanPPM: 2, MinPPM: 1, MaxPPM: 3, MaxZScore: 0.7, Spatial: spatial.Lookup(1)},
		{DrillholeNumber: 2, MeanPPM: 4, MinPPM: 4, MaxPPM: 4, MaxZScore: -1},
	}
	f := DrillholeSummaryFrame(sums, spatial)
	assert.Equal(t, []string{"DRILLHOLE_NUMBER", "Z_score_max", "converted_ppm_mean", "converted_ppm_min", "converted_ppm_max", "EASTING", "converted_ppm_max_dh"}, f.ColumnNames())
	require.Len(t, f.Rows, 2)
	assert.Equal(t, []any{int64(1), 0.7, 2.0, 1.0, 3.0, "500", "x"}, f.Rows[0])
	assert.Equal(t, []any{int64(2), -1.0, 4.0, 4.0, 4.0, nil, nil}, f.Rows[1])
}

func TestIntervalFrame_Bin(t *testing.T) {
	rows := []summary.IntervalSummary{{
		CleanedSampleRecord: cleanedRec(3, 2, ptr(10.0), ptr(14.0)),
		MidpointDepth:       12,
		Bin:                 summary.Bin{Lo: 10, Hi: 20},
	}}
	f := IntervalFrame(rows, nil)
	names := f.ColumnNames()
	assert.Equal(t, []string{ColMedianDepth, ColBin}, names[len(names)-2:])
	row := f.Rows[0]
	assert.Equal(t, 12.0, row[len(row)-2])
	assert.Equal(t, "[10, 20)", row[len(row)-1])
}

func TestNormalizedFrame_AddsScores(t *testing.T) {
	f := NormalizedFrame([]summary.NormalizedRecord{{CleanedSampleRecord: cleanedRec(1, 1, nil, nil), LogNorm: 0, ZScoreNorm: 1.25}})
	assert.Equal(t, len(processedColumns)+2, len(f.Columns))
	assert.Equal(t, 1.25, f.Rows[0][len(f.Columns)-1])
}

func TestWriteCSV_Atomic(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "out.csv")
	f := &Frame{Columns: []Column{{"a", Text}, {"b", Real}}, Rows: [][]any{{"x,y", 1e-7}}}
	require.NoError(t, WriteCSV(p, f))
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n\"x,y\",1e-07\n", string(b))
	_, err = os.Stat(p + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
