package unit

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/five82/caliper/internal/logging"
)

// exponentTolerance is the magnitude below which a net exponent cancels.
const exponentTolerance = 1e-9

// Exponents maps a base symbol onto its net signed exponent.
type Exponents map[string]float64

// Simplify reduces a free-form unit expression to canonical form. Tokens are
// separated by '*', '·' or whitespace; everything after the first '/' is in
// the denominator. Exponents may be chained ("m^2^0.5" is m^1). Symbols whose
// exponents cancel are dropped, remaining terms are sorted, and an expression
// with only denominator terms gets a "1" numerator. A unitless expression
// simplifies to "".
func Simplify(expr string) string {
	return ParseExponents(expr).String()
}

// ParseExponents parses a unit expression into net exponents per symbol.
// Tokens without a leading symbol (such as the "1" in "1/s") are ignored.
// Unparseable exponent fragments count as 1 and are logged as warnings.
func ParseExponents(expr string) Exponents {
	exps := Exponents{}
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" || trimmed == "unitless" {
		return exps
	}

	replacer := strings.NewReplacer("(", "", ")", "", "*", " ", "·", " ", "/", " / ")
	sign := 1.0
	for _, part := range strings.Fields(replacer.Replace(trimmed)) {
		if part == "/" {
			sign = -1
			continue
		}
		symbol, rest := splitSymbol(part)
		if symbol == "" {
			continue
		}
		exps[symbol] += parseExponent(expr, part, rest) * sign
	}
	return exps
}

func isSymbolRune(r rune) bool {
	return unicode.IsLetter(r) || r == '°' || r == '%'
}

func splitSymbol(part string) (string, string) {
	end := 0
	for i, r := range part {
		if !isSymbolRune(r) {
			break
		}
		end = i + len(string(r))
	}
	return part[:end], part[end:]
}

func isExponentRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '^'
}

// parseExponent reads the exponent fragment following a symbol. A leading
// '^' is optional, so "m2" reads as m^2. Chained fragments multiply.
func parseExponent(expr, token, rest string) float64 {
	explicit := strings.HasPrefix(rest, "^")
	rest = strings.TrimPrefix(rest, "^")

	end := 0
	for i, r := range rest {
		if !isExponentRune(r) {
			break
		}
		end = i + 1
	}
	logic, junk := rest[:end], rest[end:]
	if junk != "" {
		warnFragment(expr, token, junk)
	}

	if logic == "" {
		if explicit {
			warnFragment(expr, token, "^")
		}
		return 1
	}

	exp := 1.0
	parsed := false
	for _, frag := range strings.Split(logic, "^") {
		if frag == "" {
			continue
		}
		v, err := strconv.ParseFloat(frag, 64)
		if err != nil {
			warnFragment(expr, token, frag)
			continue
		}
		exp *= v
		parsed = true
	}
	if !parsed && strings.Contains(logic, "^") {
		warnFragment(expr, token, logic)
	}
	return exp
}

func warnFragment(expr, token, fragment string) {
	logger := logging.Component("unit")
	logger.Warn().
		Str("expr", expr).
		Str("token", token).
		Str("fragment", fragment).
		Msg("unparseable exponent fragment, using 1")
}

// Scale multiplies every exponent by k.
func (e Exponents) Scale(k float64) Exponents {
	out := make(Exponents, len(e))
	for sym, p := range e {
		out[sym] = p * k
	}
	return out
}

// Merge adds the exponents of other, scaled by sign, to a copy of e.
func (e Exponents) Merge(other Exponents, sign float64) Exponents {
	out := make(Exponents, len(e)+len(other))
	for sym, p := range e {
		out[sym] = p
	}
	for sym, p := range other {
		out[sym] += p * sign
	}
	return out
}

// String renders exponents in canonical form.
func (e Exponents) String() string {
	symbols := make([]string, 0, len(e))
	for sym := range e {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	var num, den []string
	for _, sym := range symbols {
		p := e[sym]
		if math.Abs(p) < exponentTolerance {
			continue
		}
		term := formatTerm(sym, math.Abs(p))
		if p > 0 {
			num = append(num, term)
		} else {
			den = append(den, term)
		}
	}

	if len(num) == 0 && len(den) == 0 {
		return ""
	}
	out := "1"
	if len(num) > 0 {
		out = strings.Join(num, "*")
	}
	if len(den) > 0 {
		out += "/" + strings.Join(den, "*")
	}
	return out
}

func formatTerm(symbol string, p float64) string {
	var rendered string
	if nearest := math.Round(p); math.Abs(p-nearest) < exponentTolerance {
		if nearest == 1 {
			return symbol
		}
		rendered = strconv.FormatFloat(nearest, 'f', 0, 64)
	} else {
		rounded := math.Round(p*100) / 100
		if rounded == 1 {
			return symbol
		}
		rendered = strconv.FormatFloat(rounded, 'f', -1, 64)
	}
	return symbol + "^" + rendered
}
