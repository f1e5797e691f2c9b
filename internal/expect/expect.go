package expect

import "strings"

// Source answers what a complete acquisition looks like for a modality.
type Source interface {
	// ExpectedFrames returns the expected frame count for the modality and
	// whether an expectation exists at all. Scans without an expectation are
	// not checked for completeness.
	ExpectedFrames(modality string) (int, bool)
}

// Static is a Source backed by a fixed modality-to-frames table, typically
// the [expectations] section of the config file.
type Static map[string]int

// ExpectedFrames implements Source.
func (s Static) ExpectedFrames(modality string) (int, bool) {
	frames, ok := s[strings.ToUpper(strings.TrimSpace(modality))]
	if !ok || frames <= 0 {
		return 0, false
	}
	return frames, true
}

// None is a Source with no expectations; completeness checks are skipped.
var None Source = Static(nil)
