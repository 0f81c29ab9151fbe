package summary

import (
	"math"
	"sort"

	"github.com/KaramelBytes/drillchem-cli/internal/assay"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DrillholeSummary aggregates one drillhole's normalized records.
type DrillholeSummary struct {
	DrillholeNumber int64
	MeanPPM         float64
	MinPPM          float64
	MaxPPM          float64
	MaxZScore       float64
	Spatial         Attributes
}

// DrillholeMax is the record holding a drillhole's largest ppm value.
type DrillholeMax struct {
	assay.CleanedSampleRecord
	Spatial Attributes
}

// SummarizeDrillholes computes mean, min and max ppm and the maximum z-score for
// every drillhole, joined with its spatial attributes. Drillholes without
// spatial attributes are kept. Rows are ordered by drillhole number.
func SummarizeDrillholes(normalized []NormalizedRecord, spatial *SpatialTable) []DrillholeSummary {
	groups := GroupBy(normalized, func(r NormalizedRecord) int64 { return r.Drillhole() })
	out := make([]DrillholeSummary, 0, len(groups))
	for _, g := range groups {
		ppm := make([]float64, len(g.Items))
		maxZ := math.Inf(-1)
		for i, r := range g.Items {
			ppm[i] = r.ConvertedPPM
			maxZ = math.Max(maxZ, r.ZScoreNorm)
		}
		out = append(out, DrillholeSummary{
			DrillholeNumber: g.Key,
			MeanPPM:         stat.Mean(ppm, nil),
			MinPPM:          floats.Min(ppm),
			MaxPPM:          floats.Max(ppm),
			MaxZScore:       maxZ,
			Spatial:         spatial.Lookup(g.Key),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DrillholeNumber < out[j].DrillholeNumber })
	return out
}

// MaxPerDrillhole selects, per drillhole, the complete record with the largest
// ppm; the first such record in input order wins ties. Rows are ordered by
// drillhole number.
func MaxPerDrillhole(cleaned []assay.CleanedSampleRecord, spatial *SpatialTable) []DrillholeMax {
	groups := GroupBy(cleaned, assay.CleanedSampleRecord.Drillhole)
	out := make([]DrillholeMax, 0, len(groups))
	for _, g := range groups {
		best, ok := ArgMax(g.Items, func(r assay.CleanedSampleRecord) float64 { return r.ConvertedPPM })
		if !ok {
			continue
		}
		out = append(out, DrillholeMax{CleanedSampleRecord: best, Spatial: spatial.Lookup(g.Key)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Drillhole() < out[j].Drillhole() })
	return out
}
