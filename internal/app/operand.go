package app

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/five82/caliper/internal/measurement"
	"github.com/five82/caliper/internal/unit"
)

// operandPattern matches "value[±unc][unit]". "+-" and "+/-" stand in for
// "±"; whitespace between the parts is allowed.
var operandPattern = regexp.MustCompile(`^([+-]?(?:\d+(?:\.\d*)?|\.\d+))\s*(?:(?:±|\+/-|\+-)\s*(\d+(?:\.\d*)?|\.\d+))?\s*(.*)$`)

// parseOperand reads a command-line measurement such as "10.5±0.005g",
// "4.00+-0.02 m" or "2". The unit resolves through the catalog and falls back
// to a symbolic expression.
func parseOperand(s string, opts ...measurement.Option) (measurement.Measurement, error) {
	trimmed := strings.TrimSpace(s)
	match := operandPattern.FindStringSubmatch(trimmed)
	if match == nil {
		return measurement.Measurement{}, fmt.Errorf("invalid measurement %q: want value[±uncertainty][unit]", s)
	}
	value, unc, symbol := match[1], match[2], strings.TrimSpace(match[3])
	if symbol != "" && !startsUnit(symbol) {
		return measurement.Measurement{}, fmt.Errorf("invalid measurement %q: unit %q must start with a letter", s, symbol)
	}
	m, err := measurement.Parse(value, unc, unit.Resolve(symbol), opts...)
	if err != nil {
		return measurement.Measurement{}, fmt.Errorf("invalid measurement %q: %w", s, err)
	}
	return m, nil
}

func startsUnit(symbol string) bool {
	r, _ := utf8.DecodeRuneInString(symbol)
	return unicode.IsLetter(r) || r == '°' || r == '%' || r == '('
}
