package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/caliper/internal/render"
)

// EvalFunc evaluates one line of input and returns its printed result.
type EvalFunc func(line string) (string, error)

// Options configure the interactive session.
type Options struct {
	Eval      EvalFunc
	ThemeName string
	History   []string // earlier inputs, oldest first
}

// entry is one evaluated input and its outcome.
type entry struct {
	input  string
	output string
	err    error
}

// Model is the Bubble Tea state of the interactive session.
type Model struct {
	eval EvalFunc
	keys keyMap
	help help.Model

	theme  render.Theme
	styles render.Styles

	input  textinput.Model
	output viewport.Model

	entries []entry
	history []string
	histIdx int // len(history) when not browsing

	width  int
	height int
	ready  bool
}

// ErrNoEvaluator is returned by Run when Options.Eval is nil.
var ErrNoEvaluator = errors.New("interactive session requires an evaluator")

// New creates the session model.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "10.5±0.005g + 5.25±0.005g"
	ti.CharLimit = 256
	ti.Focus()

	theme := render.GetTheme(opts.ThemeName)
	history := append([]string(nil), opts.History...)
	return Model{
		eval:    opts.Eval,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		theme:   theme,
		styles:  theme.Styles(),
		input:   ti,
		history: history,
		histIdx: len(history),
	}
}

// ThemeName returns the active theme.
func (m Model) ThemeName() string { return m.theme.Name }

// History returns the inputs entered so far, oldest first.
func (m Model) History() []string {
	return append([]string(nil), m.history...)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		m.submit()
		return m, nil

	case key.Matches(msg, m.keys.HistoryPrev):
		m.browse(-1)
		return m, nil

	case key.Matches(msg, m.keys.HistoryNext):
		m.browse(1)
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.entries = nil
		m.refreshOutput()
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = render.GetTheme(render.NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		m.refreshOutput()
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit evaluates the current input and appends the result.
func (m *Model) submit() {
	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return
	}

	e := entry{input: line}
	if m.eval == nil {
		e.err = ErrNoEvaluator
	} else {
		e.output, e.err = m.eval(line)
	}
	m.entries = append(m.entries, e)

	if len(m.history) == 0 || m.history[len(m.history)-1] != line {
		m.history = append(m.history, line)
	}
	m.histIdx = len(m.history)
	m.refreshOutput()
}

// browse moves through previous inputs; moving past the newest clears the
// prompt.
func (m *Model) browse(step int) {
	if len(m.history) == 0 {
		return
	}
	m.histIdx += step
	if m.histIdx < 0 {
		m.histIdx = 0
	}
	if m.histIdx >= len(m.history) {
		m.histIdx = len(m.history)
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.history[m.histIdx])
	m.input.CursorEnd()
}

// resize fits the output viewport between the title and the input line.
func (m *Model) resize() {
	helpHeight := lipgloss.Height(m.help.View(m.keys))
	height := m.height - helpHeight - 3 // title, blank line, input
	if height < 1 {
		height = 1
	}
	if m.output.Width == 0 && m.output.Height == 0 {
		m.output = viewport.New(m.width, height)
	} else {
		m.output.Width = m.width
		m.output.Height = height
	}
	m.input.Width = max(m.width-4, 10)
	m.help.Width = m.width
	m.refreshOutput()
}

func (m *Model) refreshOutput() {
	m.output.SetContent(m.renderEntries())
	m.output.GotoBottom()
}

func (m Model) renderEntries() string {
	if len(m.entries) == 0 {
		return m.styles.Label.Render("Enter a calculation or a command (convert, simplify, average, tolerance).")
	}
	var b strings.Builder
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.styles.Label.Render("› " + e.input))
		b.WriteString("\n")
		if e.err != nil {
			b.WriteString(m.styles.Fail.Render("error: " + e.err.Error()))
			continue
		}
		b.WriteString(m.styles.Value.Render(strings.TrimRight(e.output, "\n")))
	}
	return b.String()
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := m.styles.Title.Render("caliper") + " " + m.styles.Label.Render(m.theme.Name)

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(m.output.View())
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Run starts the interactive session and blocks until the user quits. The
// returned Model holds the final theme and history.
func Run(opts Options) (Model, error) {
	if opts.Eval == nil {
		return Model{}, ErrNoEvaluator
	}
	p := tea.NewProgram(New(opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Model{}, err
	}
	m, ok := final.(Model)
	if !ok {
		return Model{}, fmt.Errorf("unexpected model type %T", final)
	}
	return m, nil
}
