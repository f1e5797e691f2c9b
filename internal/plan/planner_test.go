package plan_test

import (
	"context"
	"reflect"
	"testing"

	"scantidy/internal/classify"
	"scantidy/internal/expect"
	"scantidy/internal/plan"
	"scantidy/internal/rules"
	"scantidy/internal/session"
	"scantidy/internal/xnat"
)

func buildSession(t *testing.T, label string, scans []xnat.ScanRecord) *session.Session {
	t.Helper()
	experiments := []xnat.Experiment{{ID: "E001", Label: label + "_MR", SubjectID: "S001"}}
	sess, err := session.New(label, "CUTTING", experiments, scans)
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	return sess
}

func classifyAndResolve(t *testing.T, sess *session.Session, table rules.Table, expectations expect.Source) []classify.Finding {
	t.Helper()
	findings := classify.NewClassifier(expectations).Classify(sess)
	findings, err := classify.Resolve(context.Background(), table, sess, findings)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return findings
}

func TestBuildBucketsUnusableScan(t *testing.T) {
	sess := buildSession(t, "LD4001_v1", []xnat.ScanRecord{
		{ID: "1", Type: "T1", SeriesDescription: "T1_BAD_run"},
	})
	built := plan.Build(sess, classifyAndResolve(t, sess, rules.StaticTable{}, nil))

	if len(built.Unusable) != 1 {
		t.Fatalf("expected exactly one unusable item, got %+v", built)
	}
	item := built.Unusable[0]
	if item.ScanID != "1" || item.Field != plan.FieldQuality || item.NewValue != plan.UnusableQuality {
		t.Fatalf("unexpected unusable item: %+v", item)
	}
	if item.Reason == "" {
		t.Fatal("unusable item must carry the marker reason")
	}
	if len(built.Rename) != 0 {
		t.Fatalf("unusable scan must never also be renamed: %+v", built)
	}
}

func TestBuildAccountsForEveryScanExactlyOnce(t *testing.T) {
	sess := buildSession(t, "LD4001_v1", []xnat.ScanRecord{
		{ID: "1", Type: "T1", SeriesDescription: "T1_MPRAGE"},
		{ID: "2", Type: "rest_INC", SeriesDescription: "REST_BOLD"},
		{ID: "3", Type: "localizer"},
		{ID: "4", Type: "localizer"},
		{ID: "5", Type: "flair", SeriesDescription: "FLAIR"},
	})
	table := rules.StaticTable{
		{Project: "LD4", SeriesDescription: "T1_MPRAGE", CurrentType: "T1"}: {{UpdatedType: "T1W_MPRAGE"}},
	}
	built := plan.Build(sess, classifyAndResolve(t, sess, table, nil))

	total := len(built.Unusable) + len(built.Rename) + len(built.NoAction)
	if total != sess.ScanCount() {
		t.Fatalf("buckets account for %d of %d scans: %+v", total, sess.ScanCount(), built)
	}
	seen := map[string]int{}
	for _, item := range built.Unusable {
		seen[item.ScanID]++
	}
	for _, item := range built.Rename {
		seen[item.ScanID]++
	}
	for _, id := range built.NoAction {
		seen[id]++
	}
	for id, count := range seen {
		if count != 1 {
			t.Fatalf("scan %s appears %d times across buckets: %+v", id, count, built)
		}
	}
}

func TestBuildExcludesDuplicatesFromRenameEvenWithRuleMatch(t *testing.T) {
	sess := buildSession(t, "LD4001_v1", []xnat.ScanRecord{
		{ID: "1", Type: "localizer", SeriesDescription: "LOCALIZER"},
		{ID: "2", Type: "localizer", SeriesDescription: "LOCALIZER"},
	})
	table := rules.StaticTable{
		{Project: "LD4", SeriesDescription: "LOCALIZER", CurrentType: "localizer"}: {{UpdatedType: "SCOUT"}},
	}
	built := plan.Build(sess, classifyAndResolve(t, sess, table, nil))

	if !built.Empty() {
		t.Fatalf("duplicate scans must land in no bucket, got %+v", built)
	}
	if len(built.NoAction) != 2 {
		t.Fatalf("both duplicates must be accounted as no-action, got %+v", built)
	}
}

func TestBuildExcludesIncompleteScansFromRename(t *testing.T) {
	sess := buildSession(t, "LD4001_v1", []xnat.ScanRecord{
		{ID: "1", Type: "T1", SeriesDescription: "T1_MPRAGE", Frames: "100", XSIType: "xnat:mrScanData"},
	})
	table := rules.StaticTable{
		{Project: "LD4", SeriesDescription: "T1_MPRAGE", CurrentType: "T1"}: {{UpdatedType: "T1W_MPRAGE"}},
	}
	built := plan.Build(sess, classifyAndResolve(t, sess, table, expect.Static{"MR": 176}))

	if len(built.Rename) != 0 {
		t.Fatalf("incomplete scan must not be renamed, got %+v", built)
	}
}

func TestBuildInvalidLabelYieldsEmptyPlan(t *testing.T) {
	sess := buildSession(t, "ld4001_v1", []xnat.ScanRecord{
		{ID: "1", Type: "T1", SeriesDescription: "T1_BAD_run"},
	})
	built := plan.Build(sess, classifyAndResolve(t, sess, rules.StaticTable{}, nil))

	if !built.Empty() {
		t.Fatalf("misnamed subject must get an empty plan, got %+v", built)
	}
	if len(built.NoAction) != 1 {
		t.Fatalf("scans still must be accounted for, got %+v", built)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	scans := []xnat.ScanRecord{
		{ID: "1", Type: "T1", SeriesDescription: "T1_MPRAGE"},
		{ID: "2", Type: "rest_BAD", SeriesDescription: "REST_BOLD"},
		{ID: "3", Type: "dti", SeriesDescription: "DTI_64dir"},
	}
	table := rules.StaticTable{
		{Project: "LD4", SeriesDescription: "T1_MPRAGE", CurrentType: "T1"}:  {{UpdatedType: "T1W_MPRAGE"}},
		{Project: "LD4", SeriesDescription: "DTI_64dir", CurrentType: "dti"}: {{UpdatedType: "DTI_64"}},
	}

	first := plan.Build(buildSession(t, "LD4001_v1", scans), classifyAndResolve(t, buildSession(t, "LD4001_v1", scans), table, nil))
	second := plan.Build(buildSession(t, "LD4001_v1", scans), classifyAndResolve(t, buildSession(t, "LD4001_v1", scans), table, nil))

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical inputs produced different plans:\n%+v\n%+v", first, second)
	}
}
