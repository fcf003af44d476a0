package measurement

import (
	"strings"

	"github.com/shopspring/decimal"
)

// significantUncertainty is how many significant figures an uncertainty keeps
// on display when no decimals are set.
const significantUncertainty = 2

// Parts returns the display strings for value, uncertainty and unit. The
// uncertainty is empty when it is zero.
func (m Measurement) Parts() (value, uncertainty, unitName string) {
	unitName = m.units.Name()
	if m.uncertainty.Sign() <= 0 {
		if m.hasDecimals {
			return m.value.StringFixed(m.decimals), "", unitName
		}
		return m.value.String(), "", unitName
	}

	if m.hasDecimals {
		return m.value.StringFixed(m.decimals), m.uncertainty.StringFixed(m.decimals), unitName
	}

	unc := m.uncertainty
	if significantDigits(unc) > significantUncertainty {
		unc = roundSignificant(unc, significantUncertainty)
	}
	places := fractionDigits(unc)
	return m.value.StringFixed(places), unc.StringFixed(places), unitName
}

// String renders "value ± uncertainty unit", dropping empty parts.
func (m Measurement) String() string {
	value, unc, unitName := m.Parts()
	var b strings.Builder
	b.WriteString(value)
	if unc != "" {
		b.WriteString(" ± ")
		b.WriteString(unc)
	}
	if unitName != "" {
		b.WriteString(" ")
		b.WriteString(unitName)
	}
	return strings.TrimSpace(b.String())
}

// fractionDigits counts fractional digits with trailing zeros removed.
func fractionDigits(d decimal.Decimal) int32 {
	s := d.String()
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return int32(len(s) - i - 1)
	}
	return 0
}

// significantDigits counts significant digits with trailing fractional zeros
// removed.
func significantDigits(d decimal.Decimal) int {
	s := strings.TrimPrefix(d.Abs().String(), "0")
	s = strings.Replace(s, ".", "", 1)
	s = strings.TrimLeft(s, "0")
	return len(s)
}

// roundSignificant rounds d half-up to n significant figures.
func roundSignificant(d decimal.Decimal, n int) decimal.Decimal {
	if d.IsZero() {
		return d
	}
	lead := d.NumDigits() + int(d.Exponent()) - 1
	return d.Round(int32(n - 1 - lead))
}
