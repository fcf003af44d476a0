// Package stats aggregates repeated measurements of one quantity: weighted
// or unweighted averages, the sample spread, and plain sums.
package stats
