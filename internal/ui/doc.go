// Package ui provides the interactive Bubble Tea session started by
// "caliper repl".
//
// The session reads one line at a time, hands it to an evaluator supplied by
// the caller, and keeps the inputs and results in a scrollable viewport. Up
// and down recall earlier inputs, ctrl+t cycles the color theme, f1 toggles
// the full key help, and esc or ctrl+c quits.
package ui
