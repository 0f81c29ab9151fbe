package summary

import (
	"fmt"
	"math"
	"sort"

	"github.com/KaramelBytes/drillchem-cli/internal/assay"
)

// Bin is a left-closed, right-open depth interval [Lo, Hi).
type Bin struct {
	Lo int
	Hi int
}

// Contains reports whether depth lies in [Lo, Hi).
func (b Bin) Contains(depth float64) bool {
	return depth >= float64(b.Lo) && depth < float64(b.Hi)
}

func (b Bin) String() string { return fmt.Sprintf("[%d, %d)", b.Lo, b.Hi) }

// IntervalSummary is the record holding the largest ppm within one depth bin
// of one drillhole.
type IntervalSummary struct {
	assay.CleanedSampleRecord
	MidpointDepth float64
	Bin           Bin
	Spatial       Attributes
}

// MidpointDepth returns the median of the depth bounds that are present: the
// mean of both, or the single one. ok is false when neither is present.
func MidpointDepth(from, to *float64) (float64, bool) {
	present := func(p *float64) bool { return p != nil && !math.IsNaN(*p) }
	switch {
	case present(from) && present(to):
		return (*from + *to) / 2, true
	case present(from):
		return *from, true
	case present(to):
		return *to, true
	default:
		return 0, false
	}
}

// maxBinEdge bounds bin edges so they stay exact in float64 and fit an int.
const maxBinEdge = 1 << 53

// BinOf returns the bin holding depth. Bins are contiguous, of the given
// width, start at 0 and cover every depth below the truncated maxDepth rounded
// up to a whole bin. Depths at or beyond the end of the last bin, which
// includes any fractional part cut off by truncation when it falls on a bin
// boundary, belong to no bin. Only the bin itself is built, so an outlying
// maxDepth costs nothing.
func BinOf(depth, maxDepth float64, width int) (Bin, bool) {
	if width <= 0 || math.IsNaN(depth) || math.IsNaN(maxDepth) || depth < 0 {
		return Bin{}, false
	}
	end := math.Trunc(maxDepth)
	if end <= 0 {
		return Bin{}, false
	}
	w := float64(width)
	nBins := math.Ceil(end / w)
	k := math.Floor(depth / w)
	// division may round across a boundary
	if k > 0 && k*w > depth {
		k--
	} else if (k+1)*w <= depth {
		k++
	}
	if k >= nBins || (k+1)*w > maxBinEdge {
		return Bin{}, false
	}
	lo := int(k) * width
	return Bin{Lo: lo, Hi: lo + width}, true
}

type binned struct {
	rec   assay.CleanedSampleRecord
	depth float64
	bin   Bin
}

type holeBin struct {
	hole int64
	bin  Bin
}

// MaxPerInterval bins each record by its midpoint depth and selects, per
// drillhole and bin, the complete record with the largest ppm (first wins
// ties). Records with no depth, outside every bin, or with a non-finite ppm
// are left out. Rows are ordered by drillhole and bin. width must be positive.
func MaxPerInterval(cleaned []assay.CleanedSampleRecord, width int, spatial *SpatialTable) ([]IntervalSummary, error) {
	if width <= 0 {
		return nil, &assay.ConfigError{Field: "interval_width", Reason: fmt.Sprintf("must be a positive integer, got %d", width)}
	}

	type placed struct {
		rec   assay.CleanedSampleRecord
		depth float64
	}
	var withDepth []placed
	maxDepth := math.Inf(-1)
	for _, r := range cleaned {
		d, ok := MidpointDepth(r.DepthFrom, r.DepthTo)
		if !ok {
			continue
		}
		withDepth = append(withDepth, placed{rec: r, depth: d})
		maxDepth = math.Max(maxDepth, d)
	}
	if len(withDepth) == 0 {
		return nil, nil
	}
	var items []binned
	for _, p := range withDepth {
		if math.IsNaN(p.rec.ConvertedPPM) || math.IsInf(p.rec.ConvertedPPM, 0) {
			continue
		}
		b, ok := BinOf(p.depth, maxDepth, width)
		if !ok {
			continue
		}
		items = append(items, binned{rec: p.rec, depth: p.depth, bin: b})
	}

	groups := GroupBy(items, func(b binned) holeBin { return holeBin{hole: b.rec.Drillhole(), bin: b.bin} })
	out := make([]IntervalSummary, 0, len(groups))
	for _, g := range groups {
		best, ok := ArgMax(g.Items, func(b binned) float64 { return b.rec.ConvertedPPM })
		if !ok {
			continue
		}
		out = append(out, IntervalSummary{
			CleanedSampleRecord: best.rec,
			MidpointDepth:       best.depth,
			Bin:                 best.bin,
			Spatial:             spatial.Lookup(g.Key.hole),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Drillhole() != out[j].Drillhole() {
			return out[i].Drillhole() < out[j].Drillhole()
		}
		return out[i].Bin.Lo < out[j].Bin.Lo
	})
	return out, nil
}
