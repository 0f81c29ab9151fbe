package assay

import (
	"errors"
	"strings"
)

// RejectReason names why a record was left out of the cleaned set.
type RejectReason string

const (
	RejectNoDrillhole    RejectReason = "no_drillhole"
	RejectCountUnit      RejectReason = "count_unit"
	RejectEmptyValue     RejectReason = "empty_value"
	RejectRangeMarker    RejectReason = "range_marker"
	RejectMalformedValue RejectReason = "malformed_value"
	RejectZeroValue      RejectReason = "zero_value"
)

// CleanStats tallies one Clean call. Input counts only records of the target species.
type CleanStats struct {
	Species  string
	Input    int
	Kept     int
	Rejected map[RejectReason]int
}

// TotalRejected sums the rejection counts.
func (s CleanStats) TotalRejected() int {
	n := 0
	for _, c := range s.Rejected {
		n += c
	}
	return n
}

// Clean produces the cleaned records for species from records. Records of
// other species are ignored; records that cannot be cleaned are dropped and
// counted in the returned stats. An unknown species yields no records.
// A nil resolver maps every method code to UnknownCategory.
func Clean(records []RawSampleRecord, species string, resolver MethodResolver) ([]CleanedSampleRecord, CleanStats) {
	stats := CleanStats{Species: species, Rejected: map[RejectReason]int{}}
	if !IsKnownSpecies(species) {
		return nil, stats
	}
	if resolver == nil {
		resolver = (*MethodTable)(nil)
	}
	var out []CleanedSampleRecord
	for _, r := range records {
		if r.ChemCode != species {
			continue
		}
		stats.Input++
		c, reason := cleanRecord(r, species, resolver)
		if reason != "" {
			stats.Rejected[reason]++
			continue
		}
		out = append(out, c)
	}
	stats.Kept = len(out)
	return out, stats
}

func cleanRecord(r RawSampleRecord, species string, resolver MethodResolver) (CleanedSampleRecord, RejectReason) {
	if r.DrillholeNumber == nil {
		return CleanedSampleRecord{}, RejectNoDrillhole
	}
	if r.Unit == UnitCounts {
		return CleanedSampleRecord{}, RejectCountUnit
	}
	v, flag, err := ParseValue(r.RawValue)
	if err != nil {
		return CleanedSampleRecord{}, rejectReason(err)
	}
	elem := ElementValue(species, v)
	ppm := ConvertPPM(v, r.Unit, species, flag)
	// A zero measured value is dropped even when the detection floor would
	// have given it a non-zero ppm.
	if elem == 0 || ppm == 0 {
		return CleanedSampleRecord{}, RejectZeroValue
	}

	code := strings.TrimSpace(r.MethodCode)
	if code == "" {
		code = MissingMethodCode
	}
	cats := resolver.Resolve(code)

	c := CleanedSampleRecord{
		RawSampleRecord: r,
		Value:           elem,
		BDL:             flag,
		ConvertedPPM:    ppm,
		Determination:   cats.Determination,
		Digestion:       cats.Digestion,
		Fusion:          cats.Fusion,
	}
	c.MethodCode = code
	return c, ""
}

func rejectReason(err error) RejectReason {
	switch {
	case errors.Is(err, ErrEmptyValue):
		return RejectEmptyValue
	case errors.Is(err, ErrRangeMarker):
		return RejectRangeMarker
	default:
		return RejectMalformedValue
	}
}
