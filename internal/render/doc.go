// Package render formats measurements, tolerance verdicts and errors for the
// terminal using Lipgloss themes. Plain mode drops all styling.
package render
