package classify

import (
	"fmt"
	"strings"

	"scantidy/internal/expect"
	"scantidy/internal/session"
)

// unusableMarkers are the substrings operators embed in scan names to flag
// bad or cut-short acquisitions. Matching is case-insensitive; "inc" also
// covers "incomplete".
var unusableMarkers = []string{"INC", "BAD"}

// declared quality values that contradict a clean acquisition.
var badQualityValues = map[string]bool{
	"questionable": true,
	"unusable":     true,
}

// Classifier runs the per-scan checks over a session snapshot.
type Classifier struct {
	expectations expect.Source
}

// NewClassifier builds a Classifier. A nil expectation source disables the
// completeness and frame-based quality checks.
func NewClassifier(expectations expect.Source) *Classifier {
	if expectations == nil {
		expectations = expect.None
	}
	return &Classifier{expectations: expectations}
}

// Classify evaluates the whole session and returns every finding. The label
// check runs first; duplicate grouping is computed in a single pass over the
// full scan set before any per-scan finding is finalized, so scan order never
// affects the result.
func (c *Classifier) Classify(sess *session.Session) []Finding {
	var findings []Finding

	if !session.ValidLabel(sess.SubjectLabel) {
		findings = append(findings, Finding{
			Kind:   KindInvalidLabel,
			Detail: fmt.Sprintf("subject label %q does not match the naming convention", sess.SubjectLabel),
		})
	}

	duplicated := duplicateTypes(sess)

	for _, scan := range sess.Scans() {
		if marker, found := unusableMarker(scan); found {
			findings = append(findings, Finding{
				Kind:   KindUnusableMarker,
				ScanID: scan.ID,
				Detail: detailJoin("marker", marker),
			})
		}
		if duplicated[scan.Type] {
			findings = append(findings, Finding{
				Kind:   KindDuplicateType,
				ScanID: scan.ID,
				Detail: fmt.Sprintf("type %q appears more than once in this session", scan.Type),
			})
		}
		findings = append(findings, c.expectationFindings(scan)...)
	}

	return findings
}

func duplicateTypes(sess *session.Session) map[string]bool {
	duplicated := make(map[string]bool)
	for scanType, group := range sess.ByType() {
		if len(group) > 1 {
			duplicated[scanType] = true
		}
	}
	return duplicated
}

func unusableMarker(scan session.Scan) (string, bool) {
	haystack := strings.ToUpper(scan.Type + " " + scan.SeriesDescription)
	for _, marker := range unusableMarkers {
		if strings.Contains(haystack, marker) {
			return marker, true
		}
	}
	return "", false
}

// expectationFindings compares the scan's observed quality signals against
// the expectation source. Fewer frames than expected means the acquisition
// was cut short (incomplete); any other disagreement, including a declared
// bad quality rating, is a quality mismatch for separate triage.
func (c *Classifier) expectationFindings(scan session.Scan) []Finding {
	var findings []Finding

	if expected, ok := c.expectations.ExpectedFrames(scan.Modality); ok && scan.FramesKnown {
		switch {
		case scan.Frames < expected:
			findings = append(findings, Finding{
				Kind:   KindIncompleteAcquisition,
				ScanID: scan.ID,
				Detail: fmt.Sprintf("observed %d frames, expected %d for %s", scan.Frames, expected, scan.Modality),
			})
		case scan.Frames > expected:
			findings = append(findings, Finding{
				Kind:   KindQualityMismatch,
				ScanID: scan.ID,
				Detail: fmt.Sprintf("observed %d frames, expected %d for %s", scan.Frames, expected, scan.Modality),
			})
		}
	}

	if badQualityValues[strings.ToLower(scan.Quality)] {
		findings = append(findings, Finding{
			Kind:   KindQualityMismatch,
			ScanID: scan.ID,
			Detail: fmt.Sprintf("declared quality %q", scan.Quality),
		})
	}

	return findings
}
