package measurement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/five82/caliper/internal/numeric"
	"github.com/five82/caliper/internal/unit"
)

// derive builds a result that keeps m's policy and arithmetic and adopts the
// smaller of both operands' decimals.
func (m Measurement) derive(other Measurement, value, uncertainty decimal.Decimal, u unit.Unit) Measurement {
	out := m
	out.units = u
	switch {
	case m.hasDecimals && other.hasDecimals:
		out.decimals = min(m.decimals, other.decimals)
	case other.hasDecimals:
		out.decimals = other.decimals
		out.hasDecimals = true
	}
	return out.withNumbers(value, uncertainty.Abs())
}

func (m Measurement) scalar(v float64) Measurement {
	d, ok := numeric.FromFloat(v)
	if !ok {
		d = decimal.Zero
	}
	return Measurement{
		value:       d,
		uncertainty: decimal.Zero,
		units:       unit.Dimensionless(),
		policy:      m.policy,
		arith:       m.arith,
	}
}

// additiveUnits returns the unit of a sum or difference. Only the right-hand
// operand may be a dimensionless promoted scalar; it takes m's unit.
func (m Measurement) additiveUnits(op string, other Measurement) (unit.Unit, error) {
	switch {
	case unit.Equal(m.units, other.units):
		return m.units, nil
	case other.units.IsDimensionless():
		return m.units, nil
	default:
		return unit.Unit{}, &UnitMismatchError{Op: op, Left: m.units, Right: other.units}
	}
}

// Add returns m + other. Units must match.
func (m Measurement) Add(other Measurement) (Measurement, error) {
	u, err := m.additiveUnits("add", other)
	if err != nil {
		return Measurement{}, err
	}
	value := m.arith.Add(m.value, other.value)
	unc := m.policy.combine(m.arith, m.uncertainty, other.uncertainty)
	return m.derive(other, value, unc, u), nil
}

// Sub returns m - other. Units must match.
func (m Measurement) Sub(other Measurement) (Measurement, error) {
	u, err := m.additiveUnits("subtract", other)
	if err != nil {
		return Measurement{}, err
	}
	value := m.arith.Sub(m.value, other.value)
	unc := m.policy.combine(m.arith, m.uncertainty, other.uncertainty)
	return m.derive(other, value, unc, u), nil
}

// Mul returns m * other. Relative uncertainties combine under m's policy.
func (m Measurement) Mul(other Measurement) Measurement {
	value := m.arith.Mul(m.value, other.value)
	rel := m.policy.combine(m.arith, m.relative(), other.relative())
	unc := m.arith.Mul(value.Abs(), rel)
	return m.derive(other, value, unc, unit.Multiply(m.units, other.units))
}

// Div returns m / other. Relative uncertainties combine under m's policy.
func (m Measurement) Div(other Measurement) (Measurement, error) {
	value, err := m.arith.Div(m.value, other.value)
	if err != nil {
		return Measurement{}, fmt.Errorf("divide %s by %s: %w", m, other, err)
	}
	rel := m.policy.combine(m.arith, m.relative(), other.relative())
	unc := m.arith.Mul(value.Abs(), rel)
	return m.derive(other, value, unc, unit.Divide(m.units, other.units)), nil
}

// AddScalar adds an exact dimensionless number.
func (m Measurement) AddScalar(v float64) Measurement {
	out, _ := m.Add(m.scalar(v))
	return out
}

// SubScalar subtracts an exact dimensionless number.
func (m Measurement) SubScalar(v float64) Measurement {
	out, _ := m.Sub(m.scalar(v))
	return out
}

// MulScalar scales by an exact number; the relative uncertainty is kept.
func (m Measurement) MulScalar(v float64) Measurement {
	return m.Mul(m.scalar(v))
}

// DivScalar divides by an exact number.
func (m Measurement) DivScalar(v float64) (Measurement, error) {
	return m.Div(m.scalar(v))
}

// Pow raises m to exp. The relative uncertainty scales by |exp|.
func (m Measurement) Pow(exp float64) (Measurement, error) {
	e, ok := numeric.FromFloat(exp)
	if !ok {
		return Measurement{}, fmt.Errorf("%w: exponent %v", ErrNotFinite, exp)
	}
	value, err := m.arith.Pow(m.value, e)
	if err != nil {
		return Measurement{}, fmt.Errorf("power %s^%v: %w", m, exp, err)
	}
	rel := m.arith.Mul(e.Abs(), m.relative())
	unc := m.arith.Mul(value.Abs(), rel)
	out := m
	out.units = unit.Pow(m.units, exp)
	return out.withNumbers(value, unc), nil
}

// Sqrt is Pow(0.5).
func (m Measurement) Sqrt() (Measurement, error) {
	return m.Pow(0.5)
}

// ConvertTo expresses m in target. The value converts absolutely; the
// uncertainty converts by scale only.
func (m Measurement) ConvertTo(target unit.Unit) (Measurement, error) {
	value, err := unit.Convert(m.arith, m.value, m.units, target, false)
	if err != nil {
		return Measurement{}, err
	}
	unc, err := unit.Convert(m.arith, m.uncertainty, m.units, target, true)
	if err != nil {
		return Measurement{}, err
	}
	out := m
	out.units = target
	return out.withNumbers(value, unc.Abs()), nil
}
