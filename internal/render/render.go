package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/caliper/internal/measurement"
)

// Renderer formats results for the terminal. A plain Renderer emits
// unstyled text suitable for pipes and tests.
type Renderer struct {
	styles Styles
	plain  bool
}

// New returns a Renderer using the named theme.
func New(theme string, plain bool) Renderer {
	return Renderer{styles: GetTheme(theme).Styles(), plain: plain}
}

// Plain reports whether styling is disabled.
func (r Renderer) Plain() bool { return r.plain }

func (r Renderer) style(s lipgloss.Style, text string) string {
	if r.plain || text == "" {
		return text
	}
	return s.Render(text)
}

// Measurement renders "label: value ± uncertainty unit". An empty label
// renders the measurement alone.
func (r Renderer) Measurement(label string, m measurement.Measurement) string {
	value, unc, unitName := m.Parts()
	parts := []string{r.style(r.styles.Value, value)}
	if unc != "" {
		parts = append(parts, r.style(r.styles.PlusMinus, "±"), r.style(r.styles.Uncertainty, unc))
	}
	if unitName != "" {
		parts = append(parts, r.style(r.styles.Unit, unitName))
	}
	return r.labeled(label, strings.Join(parts, " "))
}

// Field renders a labeled line of plain text.
func (r Renderer) Field(label, text string) string {
	return r.labeled(label, r.style(r.styles.Info, text))
}

func (r Renderer) labeled(label, body string) string {
	if label == "" {
		return body
	}
	return r.style(r.styles.Label, label+":") + " " + body
}

// Verdict renders a tolerance check result on one line.
func (r Renderer) Verdict(v measurement.Verdict) string {
	status := r.style(r.styles.Pass, "PASS")
	if !v.Within {
		status = r.style(r.styles.Fail, "FAIL")
	}
	var b strings.Builder
	if v.Name != "" {
		b.WriteString(r.style(r.styles.Label, v.Name+":"))
		b.WriteString(" ")
	}
	b.WriteString(status)
	b.WriteString(" measured ")
	b.WriteString(r.Measurement("", v.Measured))
	b.WriteString(", expected ")
	b.WriteString(v.Target.String() + " ± " + v.Tolerance.String())
	b.WriteString(", deviation ")
	b.WriteString(v.Deviation.String() + " " + v.Comparison + " " + v.Tolerance.String())
	return b.String()
}

// Error renders an error message.
func (r Renderer) Error(err error) string {
	if err == nil {
		return ""
	}
	return r.style(r.styles.Fail, "error:") + " " + err.Error()
}

// Block renders a titled group of lines, boxed unless plain.
func (r Renderer) Block(title string, lines ...string) string {
	body := strings.Join(lines, "\n")
	if r.plain {
		if title == "" {
			return body
		}
		return title + "\n" + body
	}
	if title != "" {
		body = r.styles.Title.Render(title) + "\n" + body
	}
	return r.styles.Box.Render(body)
}
