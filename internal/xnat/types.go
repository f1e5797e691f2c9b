package xnat

import "strings"

// Experiment is one imaging session record as listed by the repository.
type Experiment struct {
	ID        string `json:"ID"`
	Label     string `json:"label"`
	Date      string `json:"date"`
	SubjectID string `json:"subject_ID"`
	Project   string `json:"project"`
	XSIType   string `json:"xsiType"`
}

// ScanRecord is one scan row as listed under an experiment.
type ScanRecord struct {
	ID                string `json:"ID"`
	Type              string `json:"type"`
	SeriesDescription string `json:"series_description"`
	Quality           string `json:"quality"`
	Frames            string `json:"frames"`
	XSIType           string `json:"xsiType"`
	Note              string `json:"note"`
}

// Modality derives the modality code from the scan's xsiType, e.g.
// "xnat:mrScanData" yields "MR".
func (s ScanRecord) Modality() string {
	value := strings.TrimSpace(s.XSIType)
	if idx := strings.IndexByte(value, ':'); idx >= 0 {
		value = value[idx+1:]
	}
	value = strings.TrimSuffix(value, "ScanData")
	return strings.ToUpper(value)
}

// ScanRef addresses one scan for attribute writes.
type ScanRef struct {
	Project    string
	Subject    string
	Experiment string
	Scan       string
}

// resultSet mirrors the repository's listing envelope.
type resultSet[T any] struct {
	ResultSet struct {
		Result []T `json:"Result"`
	} `json:"ResultSet"`
}
