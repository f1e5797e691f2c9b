package session

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"scantidy/internal/xnat"
)

var (
	// ErrMissingMetadata indicates the repository supplied incomplete session
	// or scan data. Retrying cannot fix missing data, so runs fail fast.
	ErrMissingMetadata = errors.New("missing metadata")
	// ErrMultipleSessions indicates the subject has more than one visit
	// recorded; renames are defined per single visit, so the records must be
	// combined upstream first.
	ErrMultipleSessions = errors.New("subject has multiple sessions")
)

// Scan is one acquired series within a session.
type Scan struct {
	ID                string
	Type              string
	SeriesDescription string
	Modality          string
	Quality           string
	Frames            int
	// FramesKnown distinguishes "0 frames observed" from "frame count not
	// reported by the repository".
	FramesKnown bool
}

// Session is an immutable snapshot of one subject's imaging visit.
type Session struct {
	SubjectLabel string
	SubjectID    string
	Project      string
	ID           string
	Label        string
	Date         string

	scans []Scan
}

// New builds a Session snapshot from repository records. The experiments slice
// must contain exactly one visit.
func New(subjectLabel, project string, experiments []xnat.Experiment, scans []xnat.ScanRecord) (*Session, error) {
	if len(experiments) == 0 {
		return nil, fmt.Errorf("%w: subject %s has no sessions", ErrMissingMetadata, subjectLabel)
	}
	if len(experiments) > 1 {
		return nil, fmt.Errorf("%w: subject %s has %d sessions, please combine them", ErrMultipleSessions, subjectLabel, len(experiments))
	}
	if len(scans) == 0 {
		return nil, fmt.Errorf("%w: session %s has no scans", ErrMissingMetadata, experiments[0].Label)
	}

	visit := experiments[0]
	snapshot := &Session{
		SubjectLabel: subjectLabel,
		SubjectID:    visit.SubjectID,
		Project:      project,
		ID:           visit.ID,
		Label:        visit.Label,
		Date:         visit.Date,
		scans:        make([]Scan, 0, len(scans)),
	}

	for _, record := range scans {
		if strings.TrimSpace(record.ID) == "" {
			return nil, fmt.Errorf("%w: session %s contains a scan without an identifier", ErrMissingMetadata, visit.Label)
		}
		scan := Scan{
			ID:                record.ID,
			Type:              strings.TrimSpace(record.Type),
			SeriesDescription: strings.TrimSpace(record.SeriesDescription),
			Modality:          record.Modality(),
			Quality:           strings.TrimSpace(record.Quality),
		}
		if frames := strings.TrimSpace(record.Frames); frames != "" {
			parsed, err := strconv.Atoi(frames)
			if err != nil {
				return nil, fmt.Errorf("%w: scan %s has unparseable frame count %q", ErrMissingMetadata, record.ID, record.Frames)
			}
			scan.Frames = parsed
			scan.FramesKnown = true
		}
		snapshot.scans = append(snapshot.scans, scan)
	}

	sortScans(snapshot.scans)
	return snapshot, nil
}

// Scans returns the session's scans in stable identifier order. Callers
// receive a copy; the snapshot itself never changes.
func (s *Session) Scans() []Scan {
	out := make([]Scan, len(s.scans))
	copy(out, s.scans)
	return out
}

// ScanCount returns the number of scans in the snapshot.
func (s *Session) ScanCount() int {
	return len(s.scans)
}

// ByType groups scans by their current type string.
func (s *Session) ByType() map[string][]Scan {
	groups := make(map[string][]Scan)
	for _, scan := range s.scans {
		groups[scan.Type] = append(groups[scan.Type], scan)
	}
	return groups
}

// Scan ID order is numeric-aware so "10" sorts after "2", matching how the
// scanner numbers series.
func sortScans(scans []Scan) {
	collator := collate.New(language.English, collate.Numeric)
	sort.SliceStable(scans, func(i, j int) bool {
		return collator.CompareString(scans[i].ID, scans[j].ID) < 0
	})
}
