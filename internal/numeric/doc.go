// Package numeric selects how measurement arithmetic is computed.
//
// Values always travel as decimal.Decimal. An Arithmetic value decides
// whether operations on them run as exact decimals (rounding only where a
// result cannot be represented, at a caller-chosen number of fractional
// digits) or as binary64 floats. The strategy is passed explicitly to
// whoever needs it; there is no process-wide precision context.
package numeric
