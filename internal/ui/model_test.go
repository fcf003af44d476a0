package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func echoEval(line string) (string, error) {
	if line == "bad" {
		return "", errors.New("invalid measurement")
	}
	return "= " + line + "\n", nil
}

func ready(t *testing.T, opts Options) Model {
	t.Helper()
	next, _ := New(opts).Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func enter(m Model, line string) Model {
	m.input.SetValue(line)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	return m
}

func TestView_LoadingBeforeSize(t *testing.T) {
	if got := New(Options{Eval: echoEval}).View(); got != "Loading..." {
		t.Fatalf("View() = %q, want Loading...", got)
	}
}

func TestSubmit_EvaluatesAndRecords(t *testing.T) {
	m := ready(t, Options{Eval: echoEval, ThemeName: "Slate"})
	m = enter(m, "  1g + 2g ")

	if len(m.entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(m.entries))
	}
	e := m.entries[0]
	if e.input != "1g + 2g" || e.output != "= 1g + 2g\n" || e.err != nil {
		t.Fatalf("entry = %+v", e)
	}
	if m.input.Value() != "" {
		t.Fatalf("input = %q, want cleared", m.input.Value())
	}
	view := m.View()
	for _, want := range []string{"caliper", "Slate", "› 1g + 2g", "= 1g + 2g"} {
		if !strings.Contains(view, want) {
			t.Fatalf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestSubmit_ShowsErrors(t *testing.T) {
	m := ready(t, Options{Eval: echoEval})
	m = enter(m, "bad")

	if m.entries[0].err == nil {
		t.Fatal("entry error = nil, want evaluator error")
	}
	if !strings.Contains(m.View(), "error: invalid measurement") {
		t.Fatalf("View() missing error:\n%s", m.View())
	}
}

func TestSubmit_IgnoresBlankInput(t *testing.T) {
	m := ready(t, Options{Eval: echoEval})
	m = enter(m, "   ")
	if len(m.entries) != 0 || len(m.history) != 0 {
		t.Fatalf("entries = %d, history = %d; want none", len(m.entries), len(m.history))
	}
}

func TestHistory_BrowsesPreviousInputs(t *testing.T) {
	m := ready(t, Options{Eval: echoEval})
	m = enter(m, "first")
	m = enter(m, "second")
	m = enter(m, "second")
	if len(m.history) != 2 {
		t.Fatalf("history = %v, want consecutive duplicates collapsed", m.history)
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.input.Value() != "second" {
		t.Fatalf("after up input = %q, want second", m.input.Value())
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.input.Value() != "first" {
		t.Fatalf("after up x3 input = %q, want first", m.input.Value())
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.input.Value() != "" {
		t.Fatalf("after browsing past newest input = %q, want empty", m.input.Value())
	}
}

func TestCycleThemeAndClear(t *testing.T) {
	m := ready(t, Options{Eval: echoEval, ThemeName: "Nightfox"})
	m = enter(m, "1")

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlT})
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if len(m.entries) != 0 {
		t.Fatalf("entries = %d after clear, want 0", len(m.entries))
	}
}

func TestHelpToggle(t *testing.T) {
	m := ready(t, Options{Eval: echoEval})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyF1})
	if !m.help.ShowAll {
		t.Fatal("ShowAll = false after f1, want true")
	}
	if !strings.Contains(m.View(), "Cycle theme") {
		t.Fatalf("full help missing bindings:\n%s", m.View())
	}
}

func TestQuit(t *testing.T) {
	m := ready(t, Options{Eval: echoEval})
	_, cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c returned nil command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("ctrl+c did not quit")
	}
}

func TestRun_RequiresEvaluator(t *testing.T) {
	if _, err := Run(Options{}); !errors.Is(err, ErrNoEvaluator) {
		t.Fatalf("Run error = %v, want ErrNoEvaluator", err)
	}
}

func TestHistory_SeededFromOptions(t *testing.T) {
	seed := []string{"1g + 2g", "simplify m/m"}
	m := ready(t, Options{Eval: echoEval, History: seed})
	seed[0] = "changed"

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.input.Value() != "simplify m/m" {
		t.Fatalf("after up input = %q, want the newest seeded input", m.input.Value())
	}

	m = enter(m, "3m")
	got := m.History()
	if len(got) != 3 || got[0] != "1g + 2g" || got[2] != "3m" {
		t.Fatalf("History() = %v", got)
	}
	if m.ThemeName() != "Nightfox" {
		t.Fatalf("ThemeName() = %q, want Nightfox", m.ThemeName())
	}
}
