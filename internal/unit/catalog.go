package unit

import "strings"

const (
	// DimensionMass is the mass family; its base unit is the gram.
	DimensionMass = "mass"
	// DimensionLength is the length family; its base unit is the millimeter.
	DimensionLength = "length"
	// DimensionTime is the time family; its base unit is the second.
	DimensionTime = "time"
)

// Kilogram is 1000 g.
func Kilogram() Unit { return New("kg", DimensionMass, 1000) }

// Gram is the base mass unit.
func Gram() Unit { return New("g", DimensionMass, 1) }

// Milligram is 0.001 g.
func Milligram() Unit { return New("mg", DimensionMass, 0.001) }

// Meter is 1000 mm.
func Meter() Unit { return New("m", DimensionLength, 1000) }

// Millimeter is the base length unit.
func Millimeter() Unit { return New("mm", DimensionLength, 1) }

// Kilometer is 1e6 mm.
func Kilometer() Unit { return New("km", DimensionLength, 1_000_000) }

// Centimeter is 10 mm.
func Centimeter() Unit { return New("cm", DimensionLength, 10) }

// Inch is 25.4 mm.
func Inch() Unit { return New("in", DimensionLength, 25.4) }

// Foot is 304.8 mm.
func Foot() Unit { return New("ft", DimensionLength, 304.8) }

// Mile is 1609344 mm.
func Mile() Unit { return New("mi", DimensionLength, 1_609_344) }

// Second is the base time unit.
func Second() Unit { return New("s", DimensionTime, 1) }

// Millisecond is 0.001 s.
func Millisecond() Unit { return New("ms", DimensionTime, 0.001) }

// Celsius is degrees Celsius. Temperature scales share factor 1 and convert
// affinely through Kelvin.
func Celsius() Unit { return New("°C", DimensionTemperature, 1) }

// Fahrenheit is degrees Fahrenheit.
func Fahrenheit() Unit { return New("°F", DimensionTemperature, 1) }

// Kelvin is the absolute temperature scale.
func Kelvin() Unit { return New("K", DimensionTemperature, 1) }

var catalog = map[string]func() Unit{
	"kg":   Kilogram,
	"g":    Gram,
	"mg":   Milligram,
	"m":    Meter,
	"mm":   Millimeter,
	"km":   Kilometer,
	"cm":   Centimeter,
	"in":   Inch,
	"ft":   Foot,
	"mi":   Mile,
	"s":    Second,
	"ms":   Millisecond,
	"°C":   Celsius,
	"C":    Celsius,
	"degC": Celsius,
	"°F":   Fahrenheit,
	"F":    Fahrenheit,
	"degF": Fahrenheit,
	"K":    Kelvin,
}

// Lookup returns the catalog unit for symbol.
func Lookup(symbol string) (Unit, bool) {
	build, ok := catalog[strings.TrimSpace(symbol)]
	if !ok {
		return Unit{}, false
	}
	return build(), true
}

// Resolve returns the catalog unit for symbol, or a symbolic unit for any
// other expression. An empty symbol is dimensionless.
func Resolve(symbol string) Unit {
	trimmed := strings.TrimSpace(symbol)
	if trimmed == "" {
		return Dimensionless()
	}
	if u, ok := Lookup(trimmed); ok {
		return u
	}
	return Expr(trimmed)
}
