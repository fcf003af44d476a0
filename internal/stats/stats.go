package stats

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/five82/caliper/internal/measurement"
	"github.com/five82/caliper/internal/numeric"
	"github.com/five82/caliper/internal/unit"
)

// ErrEmptyInput is returned when aggregating zero measurements.
var ErrEmptyInput = errors.New("no measurements provided")

// Average combines measurements into one. When no input carries an
// uncertainty the result is the plain mean with the standard error of the
// mean (Bessel-corrected sample deviation over sqrt(n)) as its uncertainty.
// Otherwise it is the inverse-variance weighted mean with uncertainty
// sqrt(1/Σw); inputs with zero uncertainty get weight 0.
func Average(ms []measurement.Measurement) (measurement.Measurement, error) {
	if err := check(ms); err != nil {
		return measurement.Measurement{}, fmt.Errorf("average: %w", err)
	}
	ar := ms[0].Arithmetic()

	weighted := false
	for _, m := range ms {
		if m.Uncertainty().Sign() > 0 {
			weighted = true
			break
		}
	}

	var mean, unc decimal.Decimal
	var err error
	if weighted {
		mean, unc, err = weightedMean(ar, ms)
	} else {
		mean, unc, err = standardError(ar, ms)
	}
	if err != nil {
		return measurement.Measurement{}, fmt.Errorf("average: %w", err)
	}
	return result(ms, mean, unc)
}

// AverageWithStdDev returns the plain mean with the Bessel-corrected sample
// standard deviation as uncertainty. It measures spread and ignores the
// inputs' own uncertainties. A single input comes back with uncertainty 0.
func AverageWithStdDev(ms []measurement.Measurement) (measurement.Measurement, error) {
	if err := check(ms); err != nil {
		return measurement.Measurement{}, fmt.Errorf("average with std dev: %w", err)
	}
	ar := ms[0].Arithmetic()
	if len(ms) == 1 {
		first := ms[0]
		return measurement.New(first.Value(), decimal.Zero, first.Units(), first.Options()...)
	}

	mean, err := arithmeticMean(ar, ms)
	if err != nil {
		return measurement.Measurement{}, fmt.Errorf("average with std dev: %w", err)
	}
	sd, err := sampleStdDev(ar, ms, mean)
	if err != nil {
		return measurement.Measurement{}, fmt.Errorf("average with std dev: %w", err)
	}
	return result(ms, mean, sd)
}

// Sum adds the measurements in order.
func Sum(ms []measurement.Measurement) (measurement.Measurement, error) {
	if len(ms) == 0 {
		return measurement.Measurement{}, fmt.Errorf("sum: %w", ErrEmptyInput)
	}
	total := ms[0]
	for _, m := range ms[1:] {
		next, err := total.Add(m)
		if err != nil {
			return measurement.Measurement{}, fmt.Errorf("sum: %w", err)
		}
		total = next
	}
	return total, nil
}

// check rejects empty input and inputs whose units differ from the first.
func check(ms []measurement.Measurement) error {
	if len(ms) == 0 {
		return ErrEmptyInput
	}
	first := ms[0].Units()
	for _, m := range ms[1:] {
		if !unit.Equal(first, m.Units()) {
			return &measurement.UnitMismatchError{Op: "aggregate", Left: first, Right: m.Units()}
		}
	}
	return nil
}

func result(ms []measurement.Measurement, mean, unc decimal.Decimal) (measurement.Measurement, error) {
	first := ms[0]
	return measurement.New(mean, unc, first.Units(),
		measurement.WithDecimals(minDecimals(ms)),
		measurement.WithPolicy(first.Policy()),
		measurement.WithArithmetic(first.Arithmetic()),
	)
}

// minDecimals returns the smallest decimals set on any input, or -1.
func minDecimals(ms []measurement.Measurement) int {
	out := -1
	for _, m := range ms {
		d, ok := m.Decimals()
		if !ok {
			continue
		}
		if out < 0 || d < out {
			out = d
		}
	}
	return out
}

func arithmeticMean(ar numeric.Arithmetic, ms []measurement.Measurement) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range ms {
		sum = ar.Add(sum, m.Value())
	}
	return ar.Div(sum, decimal.NewFromInt(int64(len(ms))))
}

func sampleStdDev(ar numeric.Arithmetic, ms []measurement.Measurement, mean decimal.Decimal) (decimal.Decimal, error) {
	squares := decimal.Zero
	for _, m := range ms {
		d := ar.Sub(m.Value(), mean)
		squares = ar.Add(squares, ar.Mul(d, d))
	}
	variance, err := ar.Div(squares, decimal.NewFromInt(int64(len(ms)-1)))
	if err != nil {
		return decimal.Zero, err
	}
	return ar.Sqrt(variance)
}

func standardError(ar numeric.Arithmetic, ms []measurement.Measurement) (decimal.Decimal, decimal.Decimal, error) {
	mean, err := arithmeticMean(ar, ms)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if len(ms) < 2 {
		return mean, decimal.Zero, nil
	}
	sd, err := sampleStdDev(ar, ms, mean)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	rootN, err := ar.Sqrt(decimal.NewFromInt(int64(len(ms))))
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	sem, err := ar.Div(sd, rootN)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return mean, sem, nil
}

func weightedMean(ar numeric.Arithmetic, ms []measurement.Measurement) (decimal.Decimal, decimal.Decimal, error) {
	one := decimal.NewFromInt(1)
	sumW := decimal.Zero
	sumWV := decimal.Zero
	for _, m := range ms {
		u := m.Uncertainty()
		if u.Sign() <= 0 {
			continue
		}
		w, err := ar.Div(one, ar.Mul(u, u))
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		sumW = ar.Add(sumW, w)
		sumWV = ar.Add(sumWV, ar.Mul(w, m.Value()))
	}
	mean, err := ar.Div(sumWV, sumW)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	inv, err := ar.Div(one, sumW)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	unc, err := ar.Sqrt(inv)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return mean, unc, nil
}
