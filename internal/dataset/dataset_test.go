package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/five82/caliper/internal/measurement"
	"github.com/five82/caliper/internal/stats"
)

const cupsTOML = `
unit = "g"
decimals = 3

[[set]]
name = "empty"
uncertainty = "0.001"
values = ["20.105", "20.102", "20.108", "20.104", "20.106"]

[[set]]
name = "full"
uncertainty = "0.001"
values = ["55.420", "55.395", "55.450", "55.410", "55.435"]
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func intPtr(n int) *int { return &n }

func TestLoad_TOML(t *testing.T) {
	f, err := Load(writeFile(t, "cups.toml", cupsTOML))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := f.Names(); !reflect.DeepEqual(got, []string{"empty", "full"}) {
		t.Fatalf("Names = %v, want [empty full]", got)
	}

	ms, err := f.Measurements("full")
	if err != nil {
		t.Fatalf("Measurements returned error: %v", err)
	}
	if len(ms) != 5 {
		t.Fatalf("len = %d, want 5", len(ms))
	}
	avg, err := stats.AverageWithStdDev(ms)
	if err != nil {
		t.Fatalf("AverageWithStdDev returned error: %v", err)
	}
	if s := avg.String(); s != "55.422 ± 0.021 g" {
		t.Fatalf("average = %q, want %q", s, "55.422 ± 0.021 g")
	}
}

func TestLoad_YAMLAcceptsBareNumbers(t *testing.T) {
	path := writeFile(t, "rod.yaml", `
unit: mm
set:
  - name: rod
    uncertainty: 0.05
    values: [120.10, 120.25, 119.95]
`)
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	s, err := f.Set("rod")
	if err != nil {
		t.Fatalf("Set returned error: %v", err)
	}
	if want := []string{"120.10", "120.25", "119.95"}; !reflect.DeepEqual(s.Values, want) {
		t.Fatalf("Values = %v, want %v", s.Values, want)
	}

	ms, err := f.Measurements("rod")
	if err != nil {
		t.Fatalf("Measurements returned error: %v", err)
	}
	if s := ms[0].String(); s != "120.10 ± 0.05 mm" {
		t.Fatalf("first reading = %q, want %q", s, "120.10 ± 0.05 mm")
	}
}

func TestMeasurements_FileSettingsOverrideOptions(t *testing.T) {
	f := File{
		Unit:     "g",
		Decimals: intPtr(1),
		Policy:   "conservative",
		Sets:     []Set{{Name: "a", Uncertainty: "0.04", Values: []string{"1.26"}}},
	}
	ms, err := f.Measurements("a", measurement.WithDecimals(3))
	if err != nil {
		t.Fatalf("Measurements returned error: %v", err)
	}
	if d, ok := ms[0].Decimals(); !ok || d != 1 {
		t.Fatalf("Decimals = %d, %v; want 1, true", d, ok)
	}
	if ms[0].Policy() != measurement.Conservative {
		t.Fatalf("Policy = %v, want conservative", ms[0].Policy())
	}
	if s := ms[0].String(); s != "1.3 g" {
		t.Fatalf("String() = %q, want %q", s, "1.3 g")
	}
}

func TestMeasurements_SetUnitAndSymbolicFallback(t *testing.T) {
	f := File{
		Unit: "g",
		Sets: []Set{{Name: "force", Unit: "kg*m/s^2", Values: []string{"9.81"}}},
	}
	ms, err := f.Measurements("force")
	if err != nil {
		t.Fatalf("Measurements returned error: %v", err)
	}
	u := ms[0].Units()
	if !u.Symbolic() || u.Name() != "kg*m/s^2" {
		t.Fatalf("unit = %q (symbolic %v), want symbolic kg*m/s^2", u.Name(), u.Symbolic())
	}
}

func TestMeasurements_UnknownSet(t *testing.T) {
	f := File{Unit: "g", Sets: []Set{{Name: "a", Values: []string{"1"}}}}
	_, err := f.Measurements("b")
	if !errors.Is(err, ErrUnknownSet) {
		t.Fatalf("error = %v, want ErrUnknownSet", err)
	}
}

func TestMeasurements_BadReading(t *testing.T) {
	f := File{Unit: "g", Sets: []Set{{Name: "a", Values: []string{"1", "one"}}}}
	_, err := f.Measurements("a")
	if err == nil || !strings.Contains(err.Error(), "reading 2") {
		t.Fatalf("error = %v, want it to name reading 2", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		file File
		want string
	}{
		{name: "no sets", file: File{Unit: "g"}, want: "no sets"},
		{name: "unnamed", file: File{Sets: []Set{{Values: []string{"1"}}}}, want: "no name"},
		{name: "duplicate", file: File{Sets: []Set{{Name: "a", Values: []string{"1"}}, {Name: "a", Values: []string{"2"}}}}, want: "duplicate"},
		{name: "empty values", file: File{Sets: []Set{{Name: "a"}}}, want: "no values"},
		{name: "negative decimals", file: File{Decimals: intPtr(-1), Sets: []Set{{Name: "a", Values: []string{"1"}}}}, want: "decimals"},
		{name: "policy", file: File{Policy: "median", Sets: []Set{{Name: "a", Values: []string{"1"}}}}, want: "policy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.file.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Validate error = %v, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Load error = %v, want os.ErrNotExist", err)
	}
}

func TestSave_CreatesDirectoriesAndReloads(t *testing.T) {
	want := File{
		Unit:     "s",
		Decimals: intPtr(2),
		Sets: []Set{
			{Name: "pendulum", Uncertainty: "0.01", Values: []string{"1.42", "1.44"}},
			{Name: "drop", Unit: "ms", Values: []string{"451"}},
		},
	}
	for _, name := range []string{"nested/dir/set.toml", "nested/dir/set.yml"} {
		t.Run(filepath.Ext(name), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := Save(path, want); err != nil {
				t.Fatalf("Save returned error: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load returned error: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("reloaded = %+v, want %+v", got, want)
			}
		})
	}
}

func TestSave_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := Save(path, File{}); err == nil {
		t.Fatal("Save returned nil error for a file with no sets")
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Stat error = %v, want file not written", err)
	}
}
