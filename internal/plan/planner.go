package plan

import (
	"scantidy/internal/classify"
	"scantidy/internal/session"
)

// Build folds a session's findings into an update plan.
//
// Bucket rules: a scan flagged with an unusable marker goes to the unusable
// bucket and nowhere else. A scan with a resolved rename and no duplicate,
// unusable, or incomplete finding goes to the rename bucket. Everything else
// is no-action; its findings remain visible in the report for human review.
// A session whose subject label fails validation gets an empty plan; a
// misnamed subject is never written to automatically.
func Build(sess *session.Session, findings []classify.Finding) Plan {
	built := Plan{
		Subject:      sess.SubjectLabel,
		Project:      sess.Project,
		SessionID:    sess.ID,
		SessionLabel: sess.Label,
	}

	indexed := classify.NewFindingSet(findings)
	if indexed.SessionInvalid() {
		for _, scan := range sess.Scans() {
			built.NoAction = append(built.NoAction, scan.ID)
		}
		return built
	}

	for _, scan := range sess.Scans() {
		switch {
		case indexed.Has(scan.ID, classify.KindUnusableMarker):
			built.Unusable = append(built.Unusable, Item{
				ScanID:       scan.ID,
				Field:        FieldQuality,
				CurrentValue: scan.Quality,
				NewValue:     UnusableQuality,
				Reason:       findingDetail(indexed, scan.ID, classify.KindUnusableMarker),
			})
		case renameEligible(indexed, scan.ID):
			built.Rename = append(built.Rename, Item{
				ScanID:       scan.ID,
				Field:        FieldType,
				CurrentValue: scan.Type,
				NewValue:     renameTarget(indexed, scan.ID),
				Reason:       findingDetail(indexed, scan.ID, classify.KindResolvedRename),
			})
		default:
			built.NoAction = append(built.NoAction, scan.ID)
		}
	}
	return built
}

func renameEligible(indexed classify.FindingSet, scanID string) bool {
	return indexed.Has(scanID, classify.KindResolvedRename) &&
		!indexed.Has(scanID, classify.KindDuplicateType) &&
		!indexed.Has(scanID, classify.KindIncompleteAcquisition)
}

func renameTarget(indexed classify.FindingSet, scanID string) string {
	for _, finding := range indexed.ForScan(scanID) {
		if finding.Kind == classify.KindResolvedRename {
			return finding.NewType
		}
	}
	return ""
}

func findingDetail(indexed classify.FindingSet, scanID string, kind classify.Kind) string {
	for _, finding := range indexed.ForScan(scanID) {
		if finding.Kind == kind {
			return finding.Detail
		}
	}
	return ""
}
