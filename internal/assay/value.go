package assay

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var censorMarks = strings.NewReplacer("<", "", ">", "")

// ParseValue turns raw value text into a number and its censoring flag.
// Text containing '-' is rejected outright; '<' marks a below-detection value
// and takes precedence over '>'.
func ParseValue(raw string) (float64, BDLFlag, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, Uncensored, ErrEmptyValue
	}
	if strings.Contains(s, "-") {
		return 0, Uncensored, ErrRangeMarker
	}
	flag := Uncensored
	switch {
	case strings.Contains(s, "<"):
		flag = BelowDetection
	case strings.Contains(s, ">"):
		flag = AboveDetection
	}
	num := strings.TrimSpace(censorMarks.Replace(s))
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, flag, fmt.Errorf("%w: %q", ErrMalformedValue, raw)
	}
	return v, flag, nil
}
