package measurement

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/five82/caliper/internal/numeric"
)

// Policy selects how independent uncertainties combine.
type Policy int

const (
	// RootSumSquare combines as sqrt(a² + b²), standard propagation for
	// independent errors. It is the default.
	RootSumSquare Policy = iota
	// Conservative combines as a + b, a worst-case bound.
	Conservative
)

func (p Policy) String() string {
	switch p {
	case Conservative:
		return "conservative"
	default:
		return "rss"
	}
}

// ParsePolicy maps a configuration string onto a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rss", "root-sum-square", "rootsumsquare", "quadrature":
		return RootSumSquare, nil
	case "conservative", "linear", "sum":
		return Conservative, nil
	default:
		return RootSumSquare, fmt.Errorf("unknown uncertainty policy %q", s)
	}
}

func (p Policy) combine(ar numeric.Arithmetic, a, b decimal.Decimal) decimal.Decimal {
	if p == Conservative {
		return ar.Add(a, b)
	}
	if a.IsZero() {
		return b
	}
	if b.IsZero() {
		return a
	}
	sum := ar.Add(ar.Mul(a, a), ar.Mul(b, b))
	root, err := ar.Sqrt(sum)
	if err != nil {
		return ar.Add(a, b)
	}
	return root
}
