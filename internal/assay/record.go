// Package assay cleans raw laboratory assay records for a single chemical species:
// it parses censored value text, converts oxides and units to ppm, and resolves
// method codes to their determination, digestion and fusion categories.
package assay

// BDLFlag classifies how a laboratory value was censored.
type BDLFlag int

const (
	Uncensored     BDLFlag = 0
	BelowDetection BDLFlag = 1
	AboveDetection BDLFlag = 2
)

// RawSampleRecord is one laboratory measurement as read from the assay table.
// Empty strings mean the column was absent or blank.
type RawSampleRecord struct {
	SampleNo        string
	SampleSource    string
	DrillholeNumber *int64
	DepthFrom       *float64
	DepthTo         *float64
	AnalysisNo      string
	AnalysisType    string
	Laboratory      string
	ChemCode        string
	RawValue        string
	Unit            string
	MethodCode      string
}

// CleanedSampleRecord is a RawSampleRecord with its value parsed and converted.
// DrillholeNumber is always set and ConvertedPPM is never zero.
type CleanedSampleRecord struct {
	RawSampleRecord
	// Value is the stripped numeric value after the oxide divisor.
	Value         float64
	BDL           BDLFlag
	ConvertedPPM  float64
	Determination string
	Digestion     string
	Fusion        string
}

// Drillhole returns the record's drillhole number.
func (r CleanedSampleRecord) Drillhole() int64 { return *r.DrillholeNumber }
