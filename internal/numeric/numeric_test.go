package numeric

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAdd_DecimalIsExact(t *testing.T) {
	got := Default().Add(dec("0.1"), dec("0.2"))
	if !got.Equal(dec("0.3")) {
		t.Fatalf("Add = %s, want 0.3", got)
	}
}

func TestAdd_FloatKeepsBinaryError(t *testing.T) {
	got := Float().Add(dec("0.1"), dec("0.2"))
	if got.Equal(dec("0.3")) {
		t.Fatalf("Add = %s, want binary64 result different from 0.3", got)
	}
	if math.Abs(got.InexactFloat64()-0.3) > 1e-15 {
		t.Fatalf("Add = %s, want ~0.3", got)
	}
}

func TestDiv_RoundsToPlaces(t *testing.T) {
	got, err := Decimal(5).Div(dec("1"), dec("3"))
	if err != nil {
		t.Fatalf("Div returned error: %v", err)
	}
	if !got.Equal(dec("0.33333")) {
		t.Fatalf("Div = %s, want 0.33333", got)
	}
}

func TestDiv_ByZero(t *testing.T) {
	for _, a := range []Arithmetic{Default(), Float()} {
		if _, err := a.Div(dec("1"), decimal.Zero); !errors.Is(err, ErrDivisionByZero) {
			t.Fatalf("%s Div error = %v, want ErrDivisionByZero", a, err)
		}
	}
}

func TestSqrt(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"perfect", "16", 4},
		{"two", "2", math.Sqrt2},
		{"small", "0.00005", math.Sqrt(0.00005)},
		{"zero", "0", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Default().Sqrt(dec(tc.in))
			if err != nil {
				t.Fatalf("Sqrt returned error: %v", err)
			}
			if math.Abs(got.InexactFloat64()-tc.want) > 1e-15 {
				t.Fatalf("Sqrt(%s) = %s, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestSqrt_PerfectSquareIsExact(t *testing.T) {
	got, err := Default().Sqrt(dec("16"))
	if err != nil {
		t.Fatalf("Sqrt returned error: %v", err)
	}
	if !got.Equal(dec("4")) {
		t.Fatalf("Sqrt(16) = %s, want 4", got)
	}
}

func TestSqrt_NegativeIsDomainError(t *testing.T) {
	if _, err := Default().Sqrt(dec("-1")); !errors.Is(err, ErrDomain) {
		t.Fatalf("Sqrt(-1) error = %v, want ErrDomain", err)
	}
}

func TestPow(t *testing.T) {
	cases := []struct {
		name string
		x    string
		exp  string
		want string
	}{
		{"square", "4.00", "2", "16"},
		{"cube", "1.5", "3", "3.375"},
		{"zero exponent", "7", "0", "1"},
		{"negative", "2", "-2", "0.25"},
		{"half", "16", "0.5", "4"},
		{"three halves", "4", "1.5", "8"},
		{"zero base", "0", "3", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Default().Pow(dec(tc.x), dec(tc.exp))
			if err != nil {
				t.Fatalf("Pow returned error: %v", err)
			}
			if !got.Equal(dec(tc.want)) {
				t.Fatalf("Pow(%s, %s) = %s, want %s", tc.x, tc.exp, got, tc.want)
			}
		})
	}
}

func TestPow_FractionalFallsBackToFloat(t *testing.T) {
	got, err := Default().Pow(dec("8"), dec("0.3"))
	if err != nil {
		t.Fatalf("Pow returned error: %v", err)
	}
	if math.Abs(got.InexactFloat64()-math.Pow(8, 0.3)) > 1e-12 {
		t.Fatalf("Pow(8, 0.3) = %s, want %v", got, math.Pow(8, 0.3))
	}
}

func TestPow_LargeExponentUsesBinary64(t *testing.T) {
	got, err := Default().Pow(dec("1.0001"), dec("5000"))
	if err != nil {
		t.Fatalf("Pow returned error: %v", err)
	}
	want := math.Pow(1.0001, 5000)
	if math.Abs(got.InexactFloat64()-want)/want > 1e-12 {
		t.Fatalf("Pow(1.0001, 5000) = %s, want %v", got, want)
	}

	if _, err := Default().Pow(dec("1.5"), dec("1e9")); !errors.Is(err, ErrDomain) {
		t.Fatalf("Pow(1.5, 1e9) error = %v, want ErrDomain", err)
	}
	if _, err := Default().Pow(dec("1.5"), dec("-1e30")); err != nil {
		t.Fatalf("Pow(1.5, -1e30) returned error: %v", err)
	}

	exact, err := Default().Pow(dec("2"), decimal.NewFromInt(MaxExactExponent))
	if err != nil {
		t.Fatalf("Pow(2, MaxExactExponent) returned error: %v", err)
	}
	if exact.Exponent() != 0 || exact.NumDigits() != 309 {
		t.Fatalf("Pow(2, %d) = %s, want the exact 309-digit integer", MaxExactExponent, exact)
	}
}

func TestPow_DomainErrors(t *testing.T) {
	if _, err := Default().Pow(decimal.Zero, dec("-1")); !errors.Is(err, ErrDomain) {
		t.Fatalf("Pow(0, -1) error = %v, want ErrDomain", err)
	}
	if _, err := Default().Pow(dec("-4"), dec("0.5")); !errors.Is(err, ErrDomain) {
		t.Fatalf("Pow(-4, 0.5) error = %v, want ErrDomain", err)
	}
	if _, err := Float().Pow(dec("-4"), dec("0.5")); !errors.Is(err, ErrDomain) {
		t.Fatalf("float Pow(-4, 0.5) error = %v, want ErrDomain", err)
	}
}

func TestRound_HalfUp(t *testing.T) {
	cases := map[string]string{
		"0.0125":  "0.013",
		"0.0135":  "0.014",
		"2.5":     "2.5",
		"-0.0125": "-0.013",
	}
	for in, want := range cases {
		if got := Round(dec(in), 3); !got.Equal(dec(want)) {
			t.Fatalf("Round(%s, 3) = %s, want %s", in, got, want)
		}
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(" Float "); err != nil || m != ModeFloat {
		t.Fatalf("ParseMode(Float) = %v, %v; want ModeFloat", m, err)
	}
	if m, err := ParseMode(""); err != nil || m != ModeDecimal {
		t.Fatalf("ParseMode(empty) = %v, %v; want ModeDecimal", m, err)
	}
	if _, err := ParseMode("quad"); err == nil {
		t.Fatalf("ParseMode(quad) returned nil error")
	}
}

func TestPlaces_ZeroValueUsesDefault(t *testing.T) {
	var a Arithmetic
	if a.Places() != DefaultPlaces {
		t.Fatalf("Places = %d, want %d", a.Places(), DefaultPlaces)
	}
	if a.String() != "decimal(30)" {
		t.Fatalf("String = %q, want decimal(30)", a.String())
	}
}

func TestFromFloat_RejectsNonFinite(t *testing.T) {
	if _, ok := FromFloat(math.NaN()); ok {
		t.Fatalf("FromFloat(NaN) ok = true, want false")
	}
	if d, ok := FromFloat(0.585); !ok || !d.Equal(dec("0.585")) {
		t.Fatalf("FromFloat(0.585) = %s, %v", d, ok)
	}
}
