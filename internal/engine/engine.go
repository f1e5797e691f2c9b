package engine

import (
	"context"
	"fmt"
	"log/slog"

	"scantidy/internal/classify"
	"scantidy/internal/expect"
	"scantidy/internal/plan"
	"scantidy/internal/rules"
	"scantidy/internal/session"
	"scantidy/internal/xnat"
)

// Result is one subject's complete audit output.
type Result struct {
	Session  *session.Session
	Findings []classify.Finding
	Plan     plan.Plan
}

// Engine runs the audit pipeline for single subjects.
type Engine struct {
	repo         xnat.Repository
	table        rules.Table
	expectations expect.Source
	project      string
	logger       *slog.Logger
}

// New builds an Engine. The rule table may be nil to skip rename resolution;
// expectations may be nil to skip completeness checks; the logger may be nil.
func New(repo xnat.Repository, table rules.Table, expectations expect.Source, project string, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		repo:         repo,
		table:        table,
		expectations: expectations,
		project:      project,
		logger:       logger,
	}
}

// Run audits one subject and returns its findings and update plan. Fetch and
// data-integrity errors abort the run; re-fetching mid-run would invalidate
// the snapshot the duplicate checks depend on, so nothing here retries.
func (e *Engine) Run(ctx context.Context, subjectLabel string) (*Result, error) {
	logger := e.logger.With("subject", subjectLabel)

	experiments, err := e.repo.ListExperiments(ctx, e.project, subjectLabel)
	if err != nil {
		return nil, fmt.Errorf("fetch sessions for %s: %w", subjectLabel, err)
	}

	var scans []xnat.ScanRecord
	if len(experiments) == 1 {
		scans, err = e.repo.ListScans(ctx, e.project, subjectLabel, experiments[0].ID)
		if err != nil {
			return nil, fmt.Errorf("fetch scans for %s: %w", subjectLabel, err)
		}
	}

	snapshot, err := session.New(subjectLabel, e.project, experiments, scans)
	if err != nil {
		return nil, err
	}
	logger.Debug("session snapshot built", "session", snapshot.Label, "scans", snapshot.ScanCount())

	findings := classify.NewClassifier(e.expectations).Classify(snapshot)
	findings, err = classify.Resolve(ctx, e.table, snapshot, findings)
	if err != nil {
		return nil, err
	}

	built := plan.Build(snapshot, findings)
	logger.Info("audit complete",
		"session", snapshot.Label,
		"findings", len(findings),
		"unusable", len(built.Unusable),
		"renames", len(built.Rename),
	)

	return &Result{Session: snapshot, Findings: findings, Plan: built}, nil
}
