package summary

import (
	"testing"

	"github.com/KaramelBytes/drillchem-cli/internal/assay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeDrillholes(t *testing.T) {
	normalized := Normalize([]assay.CleanedSampleRecord{
		rec(100, "ICP", 1, nil, nil, "a"),
		rec(100, "ICP", 5, nil, nil, "b"),
		rec(100, "ICP", 10, nil, nil, "c"),
		rec(7, "ICP", 2, nil, nil, "d"),
	})
	require.Len(t, normalized, 4)

	spatial := NewSpatialTable([]string{"LAT", "LON"})
	spatial.Add(100, []string{"-34.9", "138.6"})

	out := SummarizeDrillholes(normalized, spatial)
	require.Len(t, out, 2)

	assert.Equal(t, int64(7), out[0].DrillholeNumber)
	assert.Nil(t, out[0].Spatial, "unmatched drillhole keeps a row with no attributes")

	hole := out[1]
	assert.Equal(t, int64(100), hole.DrillholeNumber)
	assert.InDelta(t, 5.3333, hole.MeanPPM, 1e-3)
	assert.Equal(t, 1.0, hole.MinPPM)
	assert.Equal(t, 10.0, hole.MaxPPM)
	var maxZ float64
	for _, r := range normalized {
		if r.Drillhole() == 100 && r.ConvertedPPM == 10 {
			maxZ = r.ZScoreNorm
		}
	}
	assert.Equal(t, maxZ, hole.MaxZScore)
	assert.Equal(t, Attributes{"-34.9", "138.6"}, hole.Spatial)
}

func TestMaxPerDrillhole_ReturnsWholeRecord(t *testing.T) {
	in := []assay.CleanedSampleRecord{
		rec(2, "ICP", 3, fp(0), fp(1), "low"),
		rec(2, "ICP", 9, fp(4), fp(5), "first-max"),
		rec(2, "AAS", 9, fp(8), fp(9), "tied"),
		rec(1, "ICP", 0.2, nil, nil, "only"),
	}
	out := MaxPerDrillhole(in, nil)
	require.Len(t, out, 2)
	assert.Equal(t, "only", out[0].SampleNo)
	assert.Equal(t, in[1], out[1].CleanedSampleRecord)
	assert.Nil(t, out[1].Spatial)
}

func TestSpatialTable_FirstRowWins(t *testing.T) {
	tbl := NewSpatialTable([]string{"NAME"})
	assert.True(t, tbl.Add(5, []string{"DH5"}))
	assert.False(t, tbl.Add(5, []string{"other"}))
	assert.Equal(t, Attributes{"DH5"}, tbl.Lookup(5))
	assert.Equal(t, 1, tbl.Len())

	got := tbl.Lookup(5)
	got[0] = "changed"
	assert.Equal(t, Attributes{"DH5"}, tbl.Lookup(5), "lookup returns a copy")

	var none *SpatialTable
	assert.Nil(t, none.Lookup(5))
	assert.Empty(t, none.ColumnNames())
}
