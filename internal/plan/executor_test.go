package plan_test

import (
	"context"
	"errors"
	"testing"

	"scantidy/internal/logging"
	"scantidy/internal/plan"
	"scantidy/internal/testsupport"
)

func samplePlan() plan.Plan {
	return plan.Plan{
		Subject:      "LD4001_v1",
		Project:      "CUTTING",
		SessionID:    "E001",
		SessionLabel: "LD4001_v1_MR",
		Unusable: []plan.Item{
			{ScanID: "1", Field: plan.FieldQuality, CurrentValue: "", NewValue: plan.UnusableQuality, Reason: "marker: BAD"},
		},
		Rename: []plan.Item{
			{ScanID: "2", Field: plan.FieldType, CurrentValue: "T1", NewValue: "T1W_MPRAGE", Reason: "rule matched"},
		},
	}
}

func TestExecuteAppliesAllItems(t *testing.T) {
	writer := &testsupport.FakeWriter{Current: map[string]string{"2/type": "T1"}}
	executor := plan.NewExecutor(writer, logging.NewNop())

	report := executor.Execute(context.Background(), samplePlan(), false)

	if report.Count(plan.OutcomeSuccess) != 2 {
		t.Fatalf("expected both items applied, got %+v", report)
	}
	if !writer.WroteField("1", plan.FieldQuality) || !writer.WroteField("2", plan.FieldType) {
		t.Fatalf("expected writes for both scans, got %+v", writer.Writes)
	}
}

func TestExecuteWithoutOverwriteSkipsChangedFields(t *testing.T) {
	// Scan 2's type was hand-corrected after the snapshot was taken.
	writer := &testsupport.FakeWriter{Current: map[string]string{"2/type": "T1_corrected"}}
	executor := plan.NewExecutor(writer, logging.NewNop())

	report := executor.Execute(context.Background(), samplePlan(), false)

	if report.Count(plan.OutcomeSkipped) != 1 {
		t.Fatalf("expected the changed field skipped, got %+v", report)
	}
	if writer.WroteField("2", plan.FieldType) {
		t.Fatal("changed field must never be written without overwrite")
	}
	if !writer.WroteField("1", plan.FieldQuality) {
		t.Fatal("default-valued field should still be written")
	}
}

func TestExecuteWithOverwriteAlwaysWrites(t *testing.T) {
	writer := &testsupport.FakeWriter{Current: map[string]string{
		"1/quality": "questionable",
		"2/type":    "T1_corrected",
	}}
	executor := plan.NewExecutor(writer, logging.NewNop())

	report := executor.Execute(context.Background(), samplePlan(), true)

	if report.Count(plan.OutcomeSuccess) != 2 {
		t.Fatalf("overwrite must attempt every write, got %+v", report)
	}
}

func TestExecuteSkipsAlreadyAppliedItems(t *testing.T) {
	writer := &testsupport.FakeWriter{Current: map[string]string{
		"1/quality": plan.UnusableQuality,
		"2/type":    "T1W_MPRAGE",
	}}
	executor := plan.NewExecutor(writer, logging.NewNop())

	report := executor.Execute(context.Background(), samplePlan(), false)

	if report.Count(plan.OutcomeSkipped) != 2 {
		t.Fatalf("re-running an applied plan must be a no-op, got %+v", report)
	}
	if len(writer.Writes) != 0 {
		t.Fatalf("no writes expected, got %+v", writer.Writes)
	}
}

func TestExecuteOneFailureDoesNotAbortRemainingItems(t *testing.T) {
	writer := &testsupport.FakeWriter{
		Current:  map[string]string{"2/type": "T1"},
		WriteErr: map[string]error{"1": errors.New("permission denied")},
	}
	executor := plan.NewExecutor(writer, logging.NewNop())

	report := executor.Execute(context.Background(), samplePlan(), false)

	if report.Count(plan.OutcomeFailed) != 1 || report.Count(plan.OutcomeSuccess) != 1 {
		t.Fatalf("expected one failure and one success, got %+v", report)
	}
	if !report.Failed() {
		t.Fatal("report must surface the failure")
	}
	failed := report.Results[0]
	if failed.Item.ScanID != "1" || failed.Reason == "" {
		t.Fatalf("failure must be attributable to the scan with a reason, got %+v", failed)
	}
}

func TestExecuteReadErrorFailsItem(t *testing.T) {
	writer := &testsupport.FakeWriter{ReadErr: map[string]error{"2": errors.New("network down")}}
	executor := plan.NewExecutor(writer, logging.NewNop())

	report := executor.Execute(context.Background(), samplePlan(), false)

	var sawFailure bool
	for _, result := range report.Results {
		if result.Item.ScanID == "2" && result.Outcome == plan.OutcomeFailed {
			sawFailure = true
		}
	}
	if !sawFailure {
		t.Fatalf("read failure must fail the item, got %+v", report)
	}
}
