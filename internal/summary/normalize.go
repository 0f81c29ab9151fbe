package summary

import (
	"math"

	"github.com/KaramelBytes/drillchem-cli/internal/assay"
	"gonum.org/v1/gonum/stat"
)

// NormalizedRecord is a cleaned record with its log value and z-score within
// its method-code group.
type NormalizedRecord struct {
	assay.CleanedSampleRecord
	LogNorm    float64
	ZScoreNorm float64
}

// Normalize computes ln(ppm) and its sample z-score (divisor n-1) within each
// method-code group. Records whose z-score is not finite are omitted, which
// removes every group of fewer than two records and every group with no spread.
func Normalize(cleaned []assay.CleanedSampleRecord) []NormalizedRecord {
	groups := GroupBy(cleaned, func(r assay.CleanedSampleRecord) string { return r.MethodCode })
	var out []NormalizedRecord
	for _, g := range groups {
		if len(g.Items) < 2 {
			continue
		}
		logs := make([]float64, len(g.Items))
		for i, r := range g.Items {
			logs[i] = math.Log(r.ConvertedPPM)
		}
		mean, std := stat.MeanStdDev(logs, nil)
		for i, r := range g.Items {
			z := (logs[i] - mean) / std
			if math.IsNaN(z) || math.IsInf(z, 0) {
				continue
			}
			out = append(out, NormalizedRecord{CleanedSampleRecord: r, LogNorm: logs[i], ZScoreNorm: z})
		}
	}
	return out
}
