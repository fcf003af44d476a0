package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "" || len(p.History) != 0 {
		t.Fatalf("Load = %+v, want empty prefs", p)
	}
}

func TestLoad_ReadsDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "caliper")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	body := "theme = \"Slate\"\nhistory = [\"1g + 2g\", \"simplify m*m/m\"]\n"
	if err := os.WriteFile(filepath.Join(dir, "repl.toml"), []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "Slate" {
		t.Fatalf("Theme = %q, want %q", p.Theme, "Slate")
	}
	if len(p.History) != 2 || p.History[1] != "simplify m*m/m" {
		t.Fatalf("History = %v", p.History)
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "repl.toml")

	p := Prefs{Theme: " Kanagawa ", History: []string{"a", "", "b", "b", " c "}}
	if err := Save(path, p); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.Theme != "Kanagawa" {
		t.Fatalf("Theme = %q, want %q", loaded.Theme, "Kanagawa")
	}
	want := []string{"a", "b", "c"}
	if fmt.Sprint(loaded.History) != fmt.Sprint(want) {
		t.Fatalf("History = %v, want %v", loaded.History, want)
	}
}

func TestSave_TrimsHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repl.toml")

	var history []string
	for i := 0; i < MaxHistory+10; i++ {
		history = append(history, fmt.Sprintf("%d g", i))
	}
	if err := Save(path, Prefs{History: history}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(loaded.History) != MaxHistory {
		t.Fatalf("len(History) = %d, want %d", len(loaded.History), MaxHistory)
	}
	if loaded.History[0] != "10 g" {
		t.Fatalf("oldest kept = %q, want %q", loaded.History[0], "10 g")
	}
}

func TestLoad_InvalidTOMLIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repl.toml")
	if err := os.WriteFile(path, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.Theme != "" || len(p.History) != 0 {
		t.Fatalf("Load = %+v, want empty prefs", p)
	}
}
