// Package measurement implements values with propagated uncertainty.
//
// # Overview
//
// A Measurement pairs a decimal value with a non-negative absolute
// uncertainty and a unit.Unit. Measurements are immutable: every operation
// returns a new value, so they can be shared between goroutines freely.
//
// # Construction
//
//	m, err := measurement.Parse("10.500", "0.005", unit.Gram(),
//		measurement.WithDecimals(3),
//		measurement.WithPolicy(measurement.Conservative))
//
// New, FromFloat and Parse validate the uncertainty. Must wraps any of them
// for literals. Options set:
//
//   - WithDecimals: value and uncertainty are rounded half-up to n places
//     after construction and after every operation
//   - WithPolicy: RootSumSquare (default) or Conservative
//   - WithArithmetic: numeric.Decimal(places) (default 30) or numeric.Float()
//
// # Propagation
//
// Add and Sub combine absolute uncertainties; Mul and Div combine relative
// ones (uncertainty/|value|, taken as 0 for a zero value). RootSumSquare
// combines as sqrt(a²+b²), Conservative as a+b. Pow scales the relative
// uncertainty by |exp|; Sqrt is Pow(0.5).
//
// A binary result uses the left operand's policy and arithmetic. Its
// decimals are the smaller of the operands' decimals, or unset when neither
// has any.
//
// # Units
//
// Add and Sub require equal units (see unit.Equal). A dimensionless operand
// stands for a promoted scalar and adopts the other operand's unit. Anything
// else fails with *UnitMismatchError, which unwraps to ErrUnitMismatch.
// Mul, Div and Pow combine units through the unit package.
//
// # Display
//
// String renders "value ± uncertainty unit". With decimals set both numbers
// show exactly that many places. Otherwise the uncertainty is cut to two
// significant figures and the value is rounded to match it. A zero
// uncertainty renders as "value unit".
package measurement
