// Package report turns engine results into the review surface operators see
// before anything is written back: a serializable summary for scripting and
// rendered tables for terminals.
package report
