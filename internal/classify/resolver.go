package classify

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"scantidy/internal/rules"
	"scantidy/internal/session"
)

// Resolve queries the rule table for every scan that is a singleton of its
// current type and not flagged unusable, appending rename findings to the
// classifier's output.
//
// Zero candidates leave the scan untouched. Exactly one yields a resolved
// rename. Two or more are an ambiguity: surfaced so operators can tighten the
// rule table, never picked from.
func Resolve(ctx context.Context, table rules.Table, sess *session.Session, findings []Finding) ([]Finding, error) {
	if table == nil {
		return findings, nil
	}
	indexed := NewFindingSet(findings)
	prefix := session.StudyPrefix(sess.SubjectLabel)

	for _, scan := range sess.Scans() {
		if indexed.Has(scan.ID, KindDuplicateType) || indexed.Has(scan.ID, KindUnusableMarker) {
			continue
		}
		key := rules.Key{
			Project:           prefix,
			SeriesDescription: scan.SeriesDescription,
			CurrentType:       scan.Type,
		}
		candidates, err := table.Lookup(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("rule lookup for scan %s: %w", scan.ID, err)
		}
		switch len(candidates) {
		case 0:
		case 1:
			findings = append(findings, Finding{
				Kind:    KindResolvedRename,
				ScanID:  scan.ID,
				Detail:  fmt.Sprintf("rule %s/%s matched", key.Project, key.SeriesDescription),
				NewType: candidates[0].UpdatedType,
			})
		default:
			names := make([]string, 0, len(candidates))
			for _, candidate := range candidates {
				names = append(names, candidate.UpdatedType)
			}
			sort.Strings(names)
			findings = append(findings, Finding{
				Kind:   KindAmbiguousRename,
				ScanID: scan.ID,
				Detail: fmt.Sprintf("%d competing candidates: %s", len(names), strings.Join(names, ", ")),
			})
		}
	}
	return findings, nil
}
