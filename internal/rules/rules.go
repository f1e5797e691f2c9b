package rules

import (
	"context"
	"strings"
)

// Key identifies the scan observation a rule matches on.
type Key struct {
	// Project is the study prefix from the subject label (e.g. "LD4"), not
	// the repository project.
	Project           string
	SeriesDescription string
	CurrentType       string
}

func (k Key) normalized() Key {
	return Key{
		Project:           strings.TrimSpace(k.Project),
		SeriesDescription: strings.TrimSpace(k.SeriesDescription),
		CurrentType:       strings.TrimSpace(k.CurrentType),
	}
}

// Candidate is one canonical type a rule proposes.
type Candidate struct {
	UpdatedType string
}

// Table is the lookup capability the rename resolver consumes.
type Table interface {
	Lookup(ctx context.Context, key Key) ([]Candidate, error)
}

// Rule is one stored rename rule, as listed for operators.
type Rule struct {
	ID                int64
	Project           string
	SeriesDescription string
	CurrentType       string
	UpdatedType       string
	CreatedAt         string
}

// StaticTable is an in-memory Table for tests and embedded rule sets.
type StaticTable map[Key][]Candidate

// Lookup implements Table.
func (t StaticTable) Lookup(_ context.Context, key Key) ([]Candidate, error) {
	candidates := t[key.normalized()]
	out := make([]Candidate, len(candidates))
	copy(out, candidates)
	return out, nil
}
