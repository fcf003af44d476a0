// Package config loads caliper's defaults for building measurements.
//
// # Resolution
//
// Load starts from Default, overlays ~/.config/caliper/config.toml (or an
// explicit path), then loads .env from the working directory and from the
// config file's directory, and finally applies CALIPER_* variables. Variables
// already present in the environment are never replaced by .env entries. A
// missing config file is not an error.
//
// # TOML Format
//
//	policy = "rss"          # or "conservative"
//	arithmetic = "decimal"  # or "float"
//	precision = 30          # fractional digits kept by decimal division and roots
//	decimals = 3            # display rounding; -1 or absent leaves values unrounded
//	theme = "Nightfox"
//	log_level = "warn"
//	log_format = "console"  # or "json"
//
// # Validation
//
// Load validates the merged result and returns a *FieldError naming the
// first bad field. MeasurementOptions turns a valid Config into options for
// measurement.New.
package config
