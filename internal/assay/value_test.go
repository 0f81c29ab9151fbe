package assay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want float64
		flag BDLFlag
		err  error
	}{
		{name: "plain", raw: "12.5", want: 12.5, flag: Uncensored},
		{name: "padded", raw: "  7 ", want: 7, flag: Uncensored},
		{name: "below detection", raw: "<0.005", want: 0.005, flag: BelowDetection},
		{name: "below detection spaced", raw: "< 2", want: 2, flag: BelowDetection},
		{name: "above detection", raw: ">1000", want: 1000, flag: AboveDetection},
		{name: "both marks prefer below", raw: "<>5", want: 5, flag: BelowDetection},
		{name: "scientific", raw: "1.5e3", want: 1500, flag: Uncensored},
		{name: "range", raw: "1-5", err: ErrRangeMarker},
		{name: "negative", raw: "-0.01", err: ErrRangeMarker},
		{name: "negative exponent", raw: "1e-3", err: ErrRangeMarker},
		{name: "empty", raw: "", err: ErrEmptyValue},
		{name: "blank", raw: "   ", err: ErrEmptyValue},
		{name: "text", raw: "n.d.", err: ErrMalformedValue},
		{name: "nan", raw: "NaN", err: ErrMalformedValue},
		{name: "inf", raw: ">Inf", err: ErrMalformedValue},
		{name: "mark only", raw: "<", err: ErrMalformedValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, flag, err := ParseValue(tc.raw)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, v)
			assert.Equal(t, tc.flag, flag)
			assert.GreaterOrEqual(t, v, 0.0)
		})
	}
}
