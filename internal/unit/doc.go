// Package unit implements symbolic physical units.
//
// # Overview
//
// A Unit carries three things: a display name ("kg", "m/s^2"), a symbolic
// dimension ("mass", "length/time^2") and a factor that converts one of the
// unit into the base unit of its dimension family. Base units are grams,
// millimeters and seconds. Temperatures share factor 1 and convert through
// Kelvin instead.
//
// # Catalog Units
//
// Catalog constructors (Kilogram, Meter, Celsius, ...) build named units.
// Multiply and Divide on catalog units concatenate names and dimensions with
// "·" and "/" and combine factors. Multiply joins the two dimensions in sorted
// order, so operand order only shows in the name:
//
//	unit.Multiply(unit.Kilogram(), unit.Meter()) // "kg·m", "length·mass", 1e6
//	unit.Divide(unit.Meter(), unit.Meter())      // dimensionless
//
// # Symbolic Units
//
// Expr builds a unit from a free-form expression. Symbolic units combine by
// adding symbol exponents, so cancellation happens as you go:
//
//	m := unit.Multiply(unit.Expr("m"), unit.Expr("mm/m")) // "mm"
//
// Mixing a catalog unit with a symbolic one yields a symbolic unit whose
// dimension merges the catalog dimension with the symbolic symbols, so
// Multiply(Meter(), Expr("mm/m")) is named "mm" but its dimension still
// mentions length, mm and m. Such a unit converts only to units with that
// same dimension, never back to the catalog Millimeter.
//
// Simplify exposes the same algorithm on plain strings:
//
//	unit.Simplify("m*m/m")    // "m"
//	unit.Simplify("kg*m/s^2") // "kg*m/s^2"
//	unit.Simplify("m^2^0.5")  // "m"
//	unit.Simplify("/s")       // "1/s"
//
// Named derived units are never introduced; "kg*m/s^2" stays as written.
// Exponent fragments that cannot be parsed count as 1 and are logged.
//
// # Equality
//
// Equal compares names and dimensions after simplification. Catalog and
// symbolic units with the same symbol are different units because their
// dimensions differ ("mass" against "kg").
//
// # Conversion
//
// Convert and ConvertValue require equal dimensions and fail with an error
// wrapping ErrDimensionMismatch otherwise. Linear units scale by the ratio of
// their factors. Temperatures convert absolutely through Kelvin. With
// scaleOnly set, only °C and °F rescale each other (by 9/5 or 5/9) and every
// other temperature pair is unchanged; uncertainties never receive the
// offset.
package unit
