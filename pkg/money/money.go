package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidMoneyValue is returned when a numeric input cannot be used as a
// monetary amount.
var ErrInvalidMoneyValue = errors.New("invalid money value")

// places is the fixed scale for every monetary amount in the platform.
const places = 2

// Quantize rounds the value to two fractional digits, half away from zero.
// Amounts are non-negative everywhere in the pricing pipeline, so this matches
// round-half-up semantics.
func Quantize(value decimal.Decimal) decimal.Decimal {
	return value.Round(places)
}

// Multiply returns a*b quantized to two fractional digits.
func Multiply(a, b decimal.Decimal) decimal.Decimal {
	return Quantize(a.Mul(b))
}

// PercentageOf returns rate% of value, quantized. A rate of 20 means 20%.
func PercentageOf(value, rate decimal.Decimal) decimal.Decimal {
	return Quantize(value.Mul(rate).Div(decimal.NewFromInt(100)))
}

// ApplyPercentOff subtracts rate% from value, quantized.
func ApplyPercentOff(value, rate decimal.Decimal) decimal.Decimal {
	return Quantize(value.Sub(PercentageOf(value, rate)))
}

// Parse converts a raw decimal string into a quantizable amount.
func Parse(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, fmt.Errorf("%w: empty string", ErrInvalidMoneyValue)
	}
	parsed, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidMoneyValue, raw)
	}
	return parsed, nil
}

// MustParse converts a literal into a decimal and panics on failure. Intended
// for constants and tests only.
func MustParse(raw string) decimal.Decimal {
	parsed, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return parsed
}
