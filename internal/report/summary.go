package report

import (
	"time"

	"github.com/google/uuid"

	"scantidy/internal/engine"
	"scantidy/internal/plan"
)

// ScanSummary is one scan row in the review summary.
type ScanSummary struct {
	ID                string `json:"id"`
	Type              string `json:"type"`
	SeriesDescription string `json:"series_description"`
	Modality          string `json:"modality,omitempty"`
	Quality           string `json:"quality,omitempty"`
	Frames            int    `json:"frames,omitempty"`
}

// FindingSummary is one finding row in the review summary.
type FindingSummary struct {
	Kind    string `json:"kind"`
	ScanID  string `json:"scan_id,omitempty"`
	Detail  string `json:"detail"`
	NewType string `json:"new_type,omitempty"`
}

// Summary is the serializable review document for one subject's run. The run
// ID exists so a printed report can be referenced in lab notes; it is not part
// of the plan, which stays deterministic.
type Summary struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Subject      string `json:"subject"`
	Project      string `json:"project"`
	SessionID    string `json:"session_id"`
	SessionLabel string `json:"session_label"`
	SessionDate  string `json:"session_date,omitempty"`

	Scans    []ScanSummary    `json:"scans"`
	Findings []FindingSummary `json:"findings"`
	Plan     plan.Plan        `json:"plan"`
}

// BuildSummary assembles the review summary from an engine result.
func BuildSummary(result *engine.Result) Summary {
	summary := Summary{
		RunID:        uuid.NewString(),
		GeneratedAt:  time.Now().UTC(),
		Subject:      result.Session.SubjectLabel,
		Project:      result.Session.Project,
		SessionID:    result.Session.ID,
		SessionLabel: result.Session.Label,
		SessionDate:  result.Session.Date,
		Plan:         result.Plan,
	}
	for _, scan := range result.Session.Scans() {
		summary.Scans = append(summary.Scans, ScanSummary{
			ID:                scan.ID,
			Type:              scan.Type,
			SeriesDescription: scan.SeriesDescription,
			Modality:          scan.Modality,
			Quality:           scan.Quality,
			Frames:            scan.Frames,
		})
	}
	for _, finding := range result.Findings {
		summary.Findings = append(summary.Findings, FindingSummary{
			Kind:    string(finding.Kind),
			ScanID:  finding.ScanID,
			Detail:  finding.Detail,
			NewType: finding.NewType,
		})
	}
	return summary
}
