package summary

import "github.com/KaramelBytes/drillchem-cli/internal/assay"

func fp(v float64) *float64 { return &v }

func rec(hole int64, method string, ppm float64, from, to *float64, sample string) assay.CleanedSampleRecord {
	h := hole
	return assay.CleanedSampleRecord{
		RawSampleRecord: assay.RawSampleRecord{
			SampleNo:        sample,
			DrillholeNumber: &h,
			DepthFrom:       from,
			DepthTo:         to,
			ChemCode:        "Cu",
			Unit:            assay.UnitPPM,
			MethodCode:      method,
		},
		Value:        ppm,
		ConvertedPPM: ppm,
	}
}
