package assay

const (
	UnitPercent = "%"
	UnitPPM     = "ppm"
	UnitPPB     = "ppb"
	// UnitCounts is an instrument count rate, not a concentration.
	UnitCounts = "cps"
)

// OxideDivisors converts values reported as an oxide to the element basis.
var OxideDivisors = map[string]float64{
	"Fe2O3": 1.4297,
	"FeO":   1.2865,
	"U3O8":  1.1792,
	"CoO":   1.2715,
	"NiO":   1.2725,
}

const defaultDetectionFloor = 0.001

// detectionFloors holds the ppm substituted for below-detection values.
var detectionFloors = map[string]float64{
	"Au": 0.00001,
	"Ag": 0.00001,
}

// DetectionFloor returns the ppm value that replaces a below-detection result.
func DetectionFloor(species string) float64 {
	if f, ok := detectionFloors[species]; ok {
		return f
	}
	return defaultDetectionFloor
}

// ElementValue applies the species oxide divisor, if any.
func ElementValue(species string, v float64) float64 {
	if d, ok := OxideDivisors[species]; ok {
		return v / d
	}
	return v
}

// ScaleToPPM rescales a value reported in unit. Units other than % and ppb pass
// through unchanged.
func ScaleToPPM(v float64, unit string) float64 {
	switch unit {
	case UnitPercent:
		return v * 10000
	case UnitPPB:
		return v / 10000
	default:
		return v
	}
}

// ConvertPPM converts a parsed value to ppm: oxide divisor first, then unit
// scaling. Below-detection values are replaced by the species floor.
func ConvertPPM(v float64, unit, species string, flag BDLFlag) float64 {
	if flag == BelowDetection {
		return DetectionFloor(species)
	}
	return ScaleToPPM(ElementValue(species, v), unit)
}
