package classify

import "strings"

// Kind enumerates every classification outcome the engine can produce.
type Kind string

const (
	KindInvalidLabel          Kind = "invalid_label"
	KindUnusableMarker        Kind = "unusable_marker"
	KindDuplicateType         Kind = "duplicate_type"
	KindIncompleteAcquisition Kind = "incomplete_acquisition"
	KindQualityMismatch       Kind = "quality_mismatch"
	KindResolvedRename        Kind = "resolved_rename"
	KindAmbiguousRename       Kind = "ambiguous_rename"
)

// Finding tags one scan (or, for KindInvalidLabel, the session itself) with a
// diagnostic result and a human-readable reason.
type Finding struct {
	Kind Kind
	// ScanID is empty for session-level findings.
	ScanID string
	Detail string
	// NewType is set only for KindResolvedRename.
	NewType string
}

// FindingSet indexes findings by scan for bucket decisions.
type FindingSet struct {
	findings []Finding
	byScan   map[string]map[Kind]bool
}

// NewFindingSet wraps a finding slice with per-scan indexes.
func NewFindingSet(findings []Finding) FindingSet {
	byScan := make(map[string]map[Kind]bool)
	for _, finding := range findings {
		if finding.ScanID == "" {
			continue
		}
		kinds := byScan[finding.ScanID]
		if kinds == nil {
			kinds = make(map[Kind]bool)
			byScan[finding.ScanID] = kinds
		}
		kinds[finding.Kind] = true
	}
	return FindingSet{findings: findings, byScan: byScan}
}

// All returns the findings in production order.
func (s FindingSet) All() []Finding {
	out := make([]Finding, len(s.findings))
	copy(out, s.findings)
	return out
}

// Has reports whether the scan carries a finding of the given kind.
func (s FindingSet) Has(scanID string, kind Kind) bool {
	return s.byScan[scanID][kind]
}

// ForScan returns the findings attached to one scan.
func (s FindingSet) ForScan(scanID string) []Finding {
	var out []Finding
	for _, finding := range s.findings {
		if finding.ScanID == scanID {
			out = append(out, finding)
		}
	}
	return out
}

// SessionInvalid reports whether the session carries an invalid-label finding.
func (s FindingSet) SessionInvalid() bool {
	for _, finding := range s.findings {
		if finding.Kind == KindInvalidLabel {
			return true
		}
	}
	return false
}

// detailJoin builds a stable reason string from parts.
func detailJoin(parts ...string) string {
	kept := parts[:0]
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, ": ")
}
