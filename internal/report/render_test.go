package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"scantidy/internal/classify"
	"scantidy/internal/engine"
	"scantidy/internal/plan"
	"scantidy/internal/rules"
	"scantidy/internal/session"
	"scantidy/internal/xnat"
)

func sampleResult(t *testing.T) *engine.Result {
	t.Helper()
	experiments := []xnat.Experiment{{ID: "E001", Label: "LD4001_v1_MR", Date: "2026-03-14", SubjectID: "S001"}}
	scans := []xnat.ScanRecord{
		{ID: "1", Type: "T1", SeriesDescription: "T1_MPRAGE", Frames: "176", XSIType: "xnat:mrScanData"},
		{ID: "2", Type: "rest_BAD", SeriesDescription: "REST_BOLD", XSIType: "xnat:mrScanData"},
	}
	sess, err := session.New("LD4001_v1", "CUTTING", experiments, scans)
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	table := rules.StaticTable{
		{Project: "LD4", SeriesDescription: "T1_MPRAGE", CurrentType: "T1"}: {{UpdatedType: "T1W_MPRAGE"}},
	}
	findings := classify.NewClassifier(nil).Classify(sess)
	findings, err = classify.Resolve(context.Background(), table, sess, findings)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return &engine.Result{Session: sess, Findings: findings, Plan: plan.Build(sess, findings)}
}

func TestBuildSummaryCarriesEverything(t *testing.T) {
	summary := BuildSummary(sampleResult(t))

	if summary.RunID == "" || summary.GeneratedAt.IsZero() {
		t.Fatalf("expected run metadata, got %+v", summary)
	}
	if len(summary.Scans) != 2 || len(summary.Findings) != 2 {
		t.Fatalf("expected 2 scans and 2 findings, got %+v", summary)
	}
	if summary.Plan.ItemCount() != 2 {
		t.Fatalf("expected 2 plan items, got %+v", summary.Plan)
	}
}

func TestSummarySerializesToJSON(t *testing.T) {
	summary := BuildSummary(sampleResult(t))

	payload, err := json.Marshal(summary)
	if err != nil {
		t.Fatalf("marshal summary: %v", err)
	}
	var decoded Summary
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}
	if decoded.Subject != "LD4001_v1" || len(decoded.Findings) != 2 {
		t.Fatalf("round trip lost data: %+v", decoded)
	}
}

func TestRenderIncludesFindingsAndPlan(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, BuildSummary(sampleResult(t)))

	out := buf.String()
	for _, want := range []string{"LD4001_v1", "unusable_marker", "resolved_rename", "T1W_MPRAGE", "unusable"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered report:\n%s", want, out)
		}
	}
}

func TestRenderExecutionSummarizesOutcomes(t *testing.T) {
	var buf bytes.Buffer
	RenderExecution(&buf, plan.Report{
		Subject: "LD4001_v1",
		Results: []plan.ItemResult{
			{Item: plan.Item{ScanID: "1", Field: plan.FieldQuality, NewValue: "unusable"}, Outcome: plan.OutcomeSuccess},
			{Item: plan.Item{ScanID: "2", Field: plan.FieldType, NewValue: "T1W_MPRAGE"}, Outcome: plan.OutcomeSkipped, Reason: "already set"},
		},
	})

	out := buf.String()
	if !strings.Contains(out, "applied 1, skipped 1, failed 0") {
		t.Fatalf("unexpected execution summary:\n%s", out)
	}
}
