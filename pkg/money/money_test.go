package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantizeRoundsHalfUp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"84.005", "84.01"},
		{"84.004", "84.00"},
		{"84.0", "84"},
		{"0.125", "0.13"},
		{"99.999", "100"},
	}
	for _, tc := range cases {
		got := Quantize(MustParse(tc.in))
		assert.True(t, got.Equal(MustParse(tc.want)), "quantize(%s) = %s, want %s", tc.in, got, tc.want)
	}
}

func TestMultiplyQuantizesResult(t *testing.T) {
	got := Multiply(MustParse("80.00"), MustParse("1.05"))
	assert.True(t, got.Equal(MustParse("84.00")), "got %s", got)

	got = Multiply(MustParse("33.335"), MustParse("3"))
	assert.True(t, got.Equal(MustParse("100.01")), "got %s", got)
}

func TestPercentageOf(t *testing.T) {
	got := PercentageOf(MustParse("200.00"), MustParse("10"))
	assert.True(t, got.Equal(MustParse("20.00")), "got %s", got)
}

func TestApplyPercentOff(t *testing.T) {
	got := ApplyPercentOff(MustParse("100.00"), MustParse("20"))
	assert.True(t, got.Equal(MustParse("80.00")), "got %s", got)

	// each step quantizes, so a second application compounds on the rounded value
	got = ApplyPercentOff(got, MustParse("5"))
	assert.True(t, got.Equal(MustParse("76.00")), "got %s", got)
}

func TestParseRejectsMalformedInput(t *testing.T) {
	for _, raw := range []string{"", "abc", "12,50", "NaN"} {
		_, err := Parse(raw)
		require.ErrorIs(t, err, ErrInvalidMoneyValue, "input %q", raw)
	}
}

func TestParseAcceptsNumericStrings(t *testing.T) {
	got, err := Parse("90.50")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("90.5")))
}
