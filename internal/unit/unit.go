package unit

import "math"

const (
	// DimensionNone is the dimension of the identity unit.
	DimensionNone = "dimensionless"
	// DimensionTemperature selects non-linear conversion.
	DimensionTemperature = "temperature"

	mulGlyph = "·"
)

// Unit describes a physical unit: a display name, a symbolic dimension, and
// the factor that converts one of it into the base unit of its dimension.
// Units are immutable values.
type Unit struct {
	name      string
	dimension string
	factor    float64
	symbolic  bool
}

// New returns a unit with the given name, dimension and factor to base.
func New(name, dimension string, factor float64) Unit {
	return Unit{name: name, dimension: dimension, factor: factor}
}

// Expr returns a symbolic unit for a free-form expression such as
// "kg*m/s^2". The name is the simplified expression and doubles as the
// dimension; the factor is 1. Units built this way combine by exponent
// arithmetic rather than by name concatenation.
func Expr(expression string) Unit {
	name := Simplify(expression)
	if name == "" {
		return Dimensionless()
	}
	return Unit{name: name, dimension: name, factor: 1, symbolic: true}
}

// Dimensionless returns the multiplicative identity.
func Dimensionless() Unit {
	return Unit{name: "", dimension: DimensionNone, factor: 1}
}

// Name returns the display symbol.
func (u Unit) Name() string { return u.name }

// Dimension returns the symbolic dimension.
func (u Unit) Dimension() string { return u.dimension }

// Factor returns the scale from this unit to its base unit.
func (u Unit) Factor() float64 {
	if u.factor == 0 && u.IsDimensionless() {
		return 1
	}
	return u.factor
}

// Symbolic reports whether the unit was built from a free-form expression.
func (u Unit) Symbolic() bool { return u.symbolic }

// IsDimensionless reports whether u is the identity unit.
func (u Unit) IsDimensionless() bool {
	return u.name == "" || u.dimension == DimensionNone
}

func (u Unit) String() string { return u.name }

// Equal reports whether a and b have the same name and dimension once both
// are simplified, so "m·s/s" equals "m" while "kg" never equals "g".
func Equal(a, b Unit) bool {
	if a.IsDimensionless() || b.IsDimensionless() {
		return a.IsDimensionless() && b.IsDimensionless()
	}
	if a.name == b.name && a.dimension == b.dimension {
		return true
	}
	return Simplify(a.name) == Simplify(b.name) && Simplify(a.dimension) == Simplify(b.dimension)
}

// Multiply combines two units. A dimensionless operand yields the other.
// Names keep operand order; the two dimensions are joined in sorted order so
// Multiply(a, b) and Multiply(b, a) have the same dimension.
func Multiply(a, b Unit) Unit {
	if a.IsDimensionless() {
		return b
	}
	if b.IsDimensionless() {
		return a
	}
	if a.symbolic || b.symbolic {
		return combineSymbolic(a, b, 1)
	}
	return Unit{
		name:      join(a.name, b.name, mulGlyph),
		dimension: join(min(a.dimension, b.dimension), max(a.dimension, b.dimension), mulGlyph),
		factor:    a.Factor() * b.Factor(),
	}
}

// Divide divides a by b. Units with identical factor and dimension cancel
// to dimensionless.
func Divide(a, b Unit) Unit {
	if a.Factor() == b.Factor() && a.dimension == b.dimension {
		return Dimensionless()
	}
	if b.IsDimensionless() {
		return a
	}
	if a.symbolic || b.symbolic {
		return combineSymbolic(a, b, -1)
	}
	if a.IsDimensionless() {
		return Unit{
			name:      "1/" + b.name,
			dimension: "1/" + b.dimension,
			factor:    1 / b.Factor(),
		}
	}
	return Unit{
		name:      join(a.name, b.name, "/"),
		dimension: join(a.dimension, b.dimension, "/"),
		factor:    a.Factor() / b.Factor(),
	}
}

// Pow raises u to exp. Every symbol exponent in the name and dimension is
// scaled by exp and the result simplified; the factor is raised to exp.
func Pow(u Unit, exp float64) Unit {
	if u.IsDimensionless() || exp == 0 {
		return Dimensionless()
	}
	if exp == 1 {
		return u
	}
	name := ParseExponents(u.name).Scale(exp).String()
	if name == "" {
		return Dimensionless()
	}
	return Unit{
		name:      name,
		dimension: ParseExponents(u.dimension).Scale(exp).String(),
		factor:    math.Pow(u.Factor(), exp),
		symbolic:  u.symbolic,
	}
}

func combineSymbolic(a, b Unit, sign float64) Unit {
	name := ParseExponents(a.name).Merge(ParseExponents(b.name), sign).String()
	if name == "" {
		return Dimensionless()
	}
	factor := a.Factor() * b.Factor()
	if sign < 0 {
		factor = a.Factor() / b.Factor()
	}
	dimension := name
	if !a.symbolic || !b.symbolic {
		dimension = dimensionExponents(a).Merge(dimensionExponents(b), sign).String()
	}
	return Unit{name: name, dimension: dimension, factor: factor, symbolic: true}
}

func dimensionExponents(u Unit) Exponents {
	if u.IsDimensionless() {
		return Exponents{}
	}
	return ParseExponents(u.dimension)
}

func join(a, b, glyph string) string {
	switch {
	case a != "" && b != "":
		return a + glyph + b
	case a != "":
		return a
	default:
		return b
	}
}
