package unit

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/five82/caliper/internal/numeric"
)

// ErrDimensionMismatch is returned when converting between dimension families.
var ErrDimensionMismatch = errors.New("dimension mismatch")

// MismatchError describes a failed conversion.
type MismatchError struct {
	From Unit
	To   Unit
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("cannot convert %s (%s) to %s (%s)", e.From.name, e.From.dimension, e.To.name, e.To.dimension)
}

func (e *MismatchError) Unwrap() error { return ErrDimensionMismatch }

// kelvinScale describes a temperature scale by K = (v + offset) * num / den.
type kelvinScale struct {
	offset   decimal.Decimal
	num, den int64
}

var kelvinScales = map[string]kelvinScale{
	"°C": {offset: decimal.RequireFromString("273.15"), num: 1, den: 1},
	"°F": {offset: decimal.RequireFromString("459.67"), num: 5, den: 9},
	"K":  {offset: decimal.Zero, num: 1, den: 1},
}

func scaleFor(name string) kelvinScale {
	if s, ok := kelvinScales[name]; ok {
		return s
	}
	return kelvinScales["K"]
}

// ConvertValue converts value from one unit to another in binary64.
func ConvertValue(value float64, from, to Unit, scaleOnly bool) (float64, error) {
	d, ok := numeric.FromFloat(value)
	if !ok {
		return 0, fmt.Errorf("convert %v: value is not finite", value)
	}
	out, err := Convert(numeric.Float(), d, from, to, scaleOnly)
	if err != nil {
		return 0, err
	}
	return out.InexactFloat64(), nil
}

// Convert converts value from one unit to another using the given
// arithmetic. Temperatures convert through Kelvin, except when scaleOnly is
// set: then only °C and °F rescale each other (by 9/5 or 5/9) and every other
// temperature pair passes through unchanged. Everything else scales by the
// ratio of factors.
func Convert(ar numeric.Arithmetic, value decimal.Decimal, from, to Unit, scaleOnly bool) (decimal.Decimal, error) {
	if from.dimension != to.dimension {
		return decimal.Zero, &MismatchError{From: from, To: to}
	}
	if from.dimension == DimensionTemperature {
		return convertTemperature(ar, value, from, to, scaleOnly)
	}
	if from.Factor() == to.Factor() {
		return value, nil
	}
	ratio, err := ar.Div(decimal.NewFromFloat(from.Factor()), decimal.NewFromFloat(to.Factor()))
	if err != nil {
		return decimal.Zero, fmt.Errorf("convert %s to %s: %w", from.name, to.name, err)
	}
	return ar.Mul(value, ratio), nil
}

func convertTemperature(ar numeric.Arithmetic, value decimal.Decimal, from, to Unit, scaleOnly bool) (decimal.Decimal, error) {
	if scaleOnly {
		return scaleTemperature(ar, value, from.name, to.name)
	}

	src, dst := scaleFor(from.name), scaleFor(to.name)

	// Degree size ratio from source to target: (src.num/src.den) / (dst.num/dst.den).
	num := decimal.NewFromInt(src.num * dst.den)
	den := decimal.NewFromInt(src.den * dst.num)

	shifted := ar.Add(value, src.offset)
	inTarget, err := ar.Div(ar.Mul(shifted, num), den)
	if err != nil {
		return decimal.Zero, err
	}
	return ar.Sub(inTarget, dst.offset), nil
}

// scaleTemperature rescales a temperature difference. Only the °C and °F pair
// changes the value.
func scaleTemperature(ar numeric.Arithmetic, value decimal.Decimal, from, to string) (decimal.Decimal, error) {
	var num, den int64
	switch {
	case from == "°C" && to == "°F":
		num, den = 9, 5
	case from == "°F" && to == "°C":
		num, den = 5, 9
	default:
		return value, nil
	}
	return ar.Div(ar.Mul(value, decimal.NewFromInt(num)), decimal.NewFromInt(den))
}
