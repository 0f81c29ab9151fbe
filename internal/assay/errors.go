package assay

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyValue indicates the value column was blank.
	ErrEmptyValue = errors.New("empty value")
	// ErrRangeMarker indicates a '-' in the value text (range or negative result).
	ErrRangeMarker = errors.New("ambiguous range marker")
	// ErrMalformedValue indicates the stripped value text is not a finite number.
	ErrMalformedValue = errors.New("malformed value")
)

// ConfigError reports a structural problem with the inputs or parameters of an
// operation, such as a required column missing from a table. It aborts the
// whole operation, unlike per-record rejections.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}
