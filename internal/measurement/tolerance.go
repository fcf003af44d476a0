package measurement

import (
	"github.com/shopspring/decimal"

	"github.com/five82/caliper/internal/logging"
)

// Verdict is the outcome of a tolerance check.
type Verdict struct {
	Name       string
	Measured   Measurement
	Target     decimal.Decimal
	Tolerance  decimal.Decimal
	Deviation  decimal.Decimal
	Comparison string // ">", "<" or "=" comparing Deviation with Tolerance
	Within     bool
}

// CheckTolerance reports whether m's value lies in [target-tolerance,
// target+tolerance]. Target and tolerance are in m's unit. The deviation is
// rounded to m's decimals when set. Passing checks log at info level and
// failing ones at warn level.
func CheckTolerance(name string, m Measurement, target, tolerance decimal.Decimal) Verdict {
	tolerance = tolerance.Abs()
	deviation := m.arith.Sub(m.value, target).Abs()
	if m.hasDecimals {
		deviation = deviation.Round(m.decimals)
	}

	comparison := "="
	switch deviation.Cmp(tolerance) {
	case 1:
		comparison = ">"
	case -1:
		comparison = "<"
	}

	low := m.arith.Sub(target, tolerance)
	high := m.arith.Add(target, tolerance)
	within := m.value.GreaterThanOrEqual(low) && m.value.LessThanOrEqual(high)

	v := Verdict{
		Name:       name,
		Measured:   m,
		Target:     target,
		Tolerance:  tolerance,
		Deviation:  deviation,
		Comparison: comparison,
		Within:     within,
	}
	v.log()
	return v
}

func (v Verdict) log() {
	logger := logging.Component("tolerance")
	event := logger.Info()
	if !v.Within {
		event = logger.Warn()
	}
	event.
		Str("name", v.Name).
		Bool("within", v.Within).
		Str("expected", v.Target.String()+"±"+v.Tolerance.String()).
		Str("measured", v.Measured.String()).
		Str("deviation", v.Deviation.String()+" "+v.Comparison+" "+v.Tolerance.String()).
		Msg("tolerance check")
}
