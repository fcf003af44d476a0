// Package dataset reads and writes files of named reading sets.
//
// A file names a default unit and optional rounding and policy, then lists
// sets of readings:
//
//	unit = "g"
//	decimals = 3
//
//	[[set]]
//	name = "empty cups"
//	uncertainty = "0.001"
//	values = ["20.105", "20.102", "20.108"]
//
// The same keys are accepted as YAML for .yaml and .yml paths. Readings are
// kept as decimal strings; YAML also accepts bare numbers. Units resolve
// through the unit catalog and fall back to symbolic expressions.
package dataset
