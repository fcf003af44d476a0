package numeric

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Mode selects how arithmetic is carried out.
type Mode int

const (
	// ModeDecimal computes with exact decimal arithmetic. Division, roots and
	// fractional powers are rounded to a fixed number of fractional digits.
	ModeDecimal Mode = iota
	// ModeFloat computes every operation in IEEE-754 binary64.
	ModeFloat
)

// DefaultPlaces is the number of fractional digits kept by inexact decimal
// operations when no explicit precision is configured.
const DefaultPlaces int32 = 30

// guardPlaces are extra digits carried while iterating square roots.
const guardPlaces int32 = 4

// MaxExactExponent bounds the exponents Pow evaluates by exact repeated
// multiplication. Larger exponents are computed in binary64.
const MaxExactExponent = 1024

var (
	// ErrDivisionByZero is returned when dividing by an exact zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrDomain is returned for operations undefined on their input, such as
	// the square root of a negative number.
	ErrDomain = errors.New("value outside operation domain")
)

// Arithmetic is a numeric strategy. It is a small value meant to be passed
// into constructors; the zero value is decimal arithmetic at DefaultPlaces.
type Arithmetic struct {
	mode   Mode
	places int32
}

// Default returns decimal arithmetic at DefaultPlaces.
func Default() Arithmetic {
	return Decimal(DefaultPlaces)
}

// Decimal returns exact decimal arithmetic that rounds inexact results to
// places fractional digits. places <= 0 selects DefaultPlaces.
func Decimal(places int32) Arithmetic {
	return Arithmetic{mode: ModeDecimal, places: places}
}

// Float returns binary64 arithmetic.
func Float() Arithmetic {
	return Arithmetic{mode: ModeFloat}
}

// Mode reports the arithmetic mode.
func (a Arithmetic) Mode() Mode {
	return a.mode
}

// Places reports the fractional digits kept by inexact decimal operations.
func (a Arithmetic) Places() int32 {
	if a.places <= 0 {
		return DefaultPlaces
	}
	return a.places
}

func (a Arithmetic) String() string {
	if a.mode == ModeFloat {
		return "float"
	}
	return fmt.Sprintf("decimal(%d)", a.Places())
}

// ParseMode maps a configuration string onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "decimal", "exact":
		return ModeDecimal, nil
	case "float", "float64", "double":
		return ModeFloat, nil
	default:
		return ModeDecimal, fmt.Errorf("unknown arithmetic mode %q", s)
	}
}

// New builds an Arithmetic from a mode and a precision.
func New(mode Mode, places int32) Arithmetic {
	if mode == ModeFloat {
		return Float()
	}
	return Decimal(places)
}

// Add returns x + y.
func (a Arithmetic) Add(x, y decimal.Decimal) decimal.Decimal {
	if a.mode == ModeFloat {
		if r, ok := fromFloat(x.InexactFloat64() + y.InexactFloat64()); ok {
			return r
		}
	}
	return x.Add(y)
}

// Sub returns x - y.
func (a Arithmetic) Sub(x, y decimal.Decimal) decimal.Decimal {
	if a.mode == ModeFloat {
		if r, ok := fromFloat(x.InexactFloat64() - y.InexactFloat64()); ok {
			return r
		}
	}
	return x.Sub(y)
}

// Mul returns x * y.
func (a Arithmetic) Mul(x, y decimal.Decimal) decimal.Decimal {
	if a.mode == ModeFloat {
		if r, ok := fromFloat(x.InexactFloat64() * y.InexactFloat64()); ok {
			return r
		}
	}
	return x.Mul(y)
}

// Div returns x / y.
func (a Arithmetic) Div(x, y decimal.Decimal) (decimal.Decimal, error) {
	if y.IsZero() {
		return decimal.Zero, ErrDivisionByZero
	}
	if a.mode == ModeFloat {
		if r, ok := fromFloat(x.InexactFloat64() / y.InexactFloat64()); ok {
			return r, nil
		}
	}
	return x.DivRound(y, a.Places()), nil
}

// Sqrt returns the non-negative square root of x.
func (a Arithmetic) Sqrt(x decimal.Decimal) (decimal.Decimal, error) {
	switch x.Sign() {
	case -1:
		return decimal.Zero, fmt.Errorf("%w: sqrt(%s)", ErrDomain, x)
	case 0:
		return decimal.Zero, nil
	}
	if a.mode == ModeFloat {
		if r, ok := fromFloat(math.Sqrt(x.InexactFloat64())); ok {
			return r, nil
		}
	}
	return a.newtonSqrt(x), nil
}

// newtonSqrt iterates g = (g + x/g) / 2 from a binary64 seed until the step
// falls below the working precision.
func (a Arithmetic) newtonSqrt(x decimal.Decimal) decimal.Decimal {
	work := a.Places() + guardPlaces
	epsilon := decimal.New(1, -work)
	two := decimal.NewFromInt(2)

	guess, ok := fromFloat(math.Sqrt(x.InexactFloat64()))
	if !ok || guess.Sign() <= 0 {
		guess = x
	}
	for i := 0; i < 200; i++ {
		next := guess.Add(x.DivRound(guess, work)).DivRound(two, work)
		if next.Sub(guess).Abs().LessThanOrEqual(epsilon) {
			guess = next
			break
		}
		guess = next
	}
	return guess.Round(a.Places())
}

// Pow returns x raised to exp. Integer exponents up to MaxExactExponent in
// magnitude are exact in decimal mode (negative ones round like Div).
// Half-integer exponents go through Sqrt; other fractional exponents and
// larger exponents are computed in binary64, and a result that overflows
// binary64 is ErrDomain.
func (a Arithmetic) Pow(x, exp decimal.Decimal) (decimal.Decimal, error) {
	if exp.IsZero() {
		return decimal.NewFromInt(1), nil
	}
	if x.IsZero() {
		if exp.Sign() < 0 {
			return decimal.Zero, fmt.Errorf("%w: zero raised to %s", ErrDomain, exp)
		}
		return decimal.Zero, nil
	}
	if exp.Abs().GreaterThan(decimal.NewFromInt(MaxExactExponent)) {
		return a.powFloat(x, exp)
	}
	if exp.IsInteger() {
		return a.powInt(x, exp.IntPart())
	}
	if x.Sign() < 0 {
		return decimal.Zero, fmt.Errorf("%w: %s raised to fractional %s", ErrDomain, x, exp)
	}
	if a.mode == ModeDecimal {
		twice := exp.Mul(decimal.NewFromInt(2))
		if twice.IsInteger() {
			k := twice.IntPart()
			inner, err := a.powInt(x, abs64(k))
			if err != nil {
				return decimal.Zero, err
			}
			root, err := a.Sqrt(inner)
			if err != nil {
				return decimal.Zero, err
			}
			if k < 0 {
				return a.Div(decimal.NewFromInt(1), root)
			}
			return root, nil
		}
	}
	return a.powFloat(x, exp)
}

func (a Arithmetic) powFloat(x, exp decimal.Decimal) (decimal.Decimal, error) {
	r, ok := fromFloat(math.Pow(x.InexactFloat64(), exp.InexactFloat64()))
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s raised to %s overflows", ErrDomain, x, exp)
	}
	if a.mode == ModeDecimal {
		r = r.Round(a.Places())
	}
	return r, nil
}

func (a Arithmetic) powInt(x decimal.Decimal, n int64) (decimal.Decimal, error) {
	if a.mode == ModeFloat {
		if r, ok := fromFloat(math.Pow(x.InexactFloat64(), float64(n))); ok {
			return r, nil
		}
	}
	result := decimal.NewFromInt(1)
	base := x
	for e := abs64(n); e > 0; e >>= 1 {
		if e&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
	}
	if n < 0 {
		return a.Div(decimal.NewFromInt(1), result)
	}
	return result, nil
}

// Round rounds x to places fractional digits, ties away from zero.
func Round(x decimal.Decimal, places int32) decimal.Decimal {
	return x.Round(places)
}

// FromFloat converts a finite float64 to a decimal. It reports false for NaN
// and infinities.
func FromFloat(f float64) (decimal.Decimal, bool) {
	return fromFloat(f)
}

func fromFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(f), true
}

func abs64(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
