package measurement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/five82/caliper/internal/numeric"
	"github.com/five82/caliper/internal/unit"
)

var (
	// ErrUnitMismatch is returned by Add and Sub for incompatible units.
	ErrUnitMismatch = errors.New("unit mismatch")
	// ErrNegativeUncertainty is returned when constructing with uncertainty < 0.
	ErrNegativeUncertainty = errors.New("uncertainty must not be negative")
	// ErrNotFinite is returned for NaN or infinite float inputs.
	ErrNotFinite = errors.New("value is not finite")
)

// UnitMismatchError names the units an operation refused to combine.
type UnitMismatchError struct {
	Op    string
	Left  unit.Unit
	Right unit.Unit
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("%s: unit mismatch: %s vs %s", e.Op, displayUnit(e.Left), displayUnit(e.Right))
}

func (e *UnitMismatchError) Unwrap() error { return ErrUnitMismatch }

func displayUnit(u unit.Unit) string {
	if u.IsDimensionless() {
		return "dimensionless"
	}
	return u.Name()
}

// Measurement is a value with an absolute uncertainty and a unit. Every
// operation returns a new Measurement.
type Measurement struct {
	value       decimal.Decimal
	uncertainty decimal.Decimal
	units       unit.Unit
	decimals    int32
	hasDecimals bool
	policy      Policy
	arith       numeric.Arithmetic
}

// Option configures a Measurement at construction.
type Option func(*settings)

type settings struct {
	decimals    int32
	hasDecimals bool
	policy      Policy
	arith       numeric.Arithmetic
}

// WithDecimals rounds value and uncertainty to n fractional digits. A
// negative n clears the setting.
func WithDecimals(n int) Option {
	return func(s *settings) {
		if n < 0 {
			s.hasDecimals = false
			s.decimals = 0
			return
		}
		s.decimals = int32(n)
		s.hasDecimals = true
	}
}

// WithPolicy selects how uncertainties combine.
func WithPolicy(p Policy) Option {
	return func(s *settings) {
		s.policy = p
	}
}

// WithArithmetic selects the numeric strategy.
func WithArithmetic(a numeric.Arithmetic) Option {
	return func(s *settings) {
		s.arith = a
	}
}

func applyOptions(opts []Option) settings {
	s := settings{policy: RootSumSquare, arith: numeric.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}

// New builds a Measurement. The uncertainty must not be negative.
func New(value, uncertainty decimal.Decimal, u unit.Unit, opts ...Option) (Measurement, error) {
	if uncertainty.Sign() < 0 {
		return Measurement{}, fmt.Errorf("%w: %s", ErrNegativeUncertainty, uncertainty)
	}
	s := applyOptions(opts)
	return Measurement{
		units:       u,
		decimals:    s.decimals,
		hasDecimals: s.hasDecimals,
		policy:      s.policy,
		arith:       s.arith,
	}.withNumbers(value, uncertainty), nil
}

// FromFloat builds a Measurement from float64 inputs.
func FromFloat(value, uncertainty float64, u unit.Unit, opts ...Option) (Measurement, error) {
	v, ok := numeric.FromFloat(value)
	if !ok {
		return Measurement{}, fmt.Errorf("%w: value %v", ErrNotFinite, value)
	}
	unc, ok := numeric.FromFloat(uncertainty)
	if !ok {
		return Measurement{}, fmt.Errorf("%w: uncertainty %v", ErrNotFinite, uncertainty)
	}
	return New(v, unc, u, opts...)
}

// Parse builds a Measurement from decimal strings. An empty uncertainty is 0.
func Parse(value, uncertainty string, u unit.Unit, opts ...Option) (Measurement, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return Measurement{}, fmt.Errorf("parse value %q: %w", value, err)
	}
	unc := decimal.Zero
	if strings.TrimSpace(uncertainty) != "" {
		unc, err = decimal.NewFromString(strings.TrimSpace(uncertainty))
		if err != nil {
			return Measurement{}, fmt.Errorf("parse uncertainty %q: %w", uncertainty, err)
		}
	}
	return New(v, unc, u, opts...)
}

// Must panics if err is non-nil and returns m otherwise.
func Must(m Measurement, err error) Measurement {
	if err != nil {
		panic(err)
	}
	return m
}

// Scalar returns a dimensionless, exact Measurement. It panics on NaN or
// infinite input.
func Scalar(v float64) Measurement {
	return Must(FromFloat(v, 0, unit.Dimensionless()))
}

// withNumbers returns a copy of m carrying value and uncertainty, rounded to
// m's decimals when set.
func (m Measurement) withNumbers(value, uncertainty decimal.Decimal) Measurement {
	if m.hasDecimals {
		value = numeric.Round(value, m.decimals)
		uncertainty = numeric.Round(uncertainty, m.decimals)
	}
	m.value = value
	m.uncertainty = uncertainty
	return m
}

// Value returns the central value.
func (m Measurement) Value() decimal.Decimal { return m.value }

// Uncertainty returns the absolute uncertainty.
func (m Measurement) Uncertainty() decimal.Decimal { return m.uncertainty }

// Units returns the unit.
func (m Measurement) Units() unit.Unit { return m.units }

// Decimals returns the rounding precision and whether one is set.
func (m Measurement) Decimals() (int, bool) { return int(m.decimals), m.hasDecimals }

// Policy returns the uncertainty combination policy.
func (m Measurement) Policy() Policy { return m.policy }

// Arithmetic returns the numeric strategy.
func (m Measurement) Arithmetic() numeric.Arithmetic { return m.arith }

// Float64 returns value and uncertainty as float64.
func (m Measurement) Float64() (float64, float64) {
	return m.value.InexactFloat64(), m.uncertainty.InexactFloat64()
}

// RelativeUncertainty returns uncertainty / |value|, or 0 when value is 0.
func (m Measurement) RelativeUncertainty() decimal.Decimal {
	return m.relative()
}

func (m Measurement) relative() decimal.Decimal {
	if m.value.IsZero() || m.uncertainty.IsZero() {
		return decimal.Zero
	}
	rel, err := m.arith.Div(m.uncertainty, m.value.Abs())
	if err != nil {
		return decimal.Zero
	}
	return rel
}

// Options returns options reproducing m's decimals, policy and arithmetic.
func (m Measurement) Options() []Option {
	decimals := -1
	if m.hasDecimals {
		decimals = int(m.decimals)
	}
	return []Option{WithDecimals(decimals), WithPolicy(m.policy), WithArithmetic(m.arith)}
}
