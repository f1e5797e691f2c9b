package session

import "regexp"

// Subject labels look like LD4001_v1: a two-letter study code, a four-digit
// participant number, and a visit suffix.
var labelPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{4}_v[A-Z0-9]$`)

// ValidLabel reports whether label follows the lab naming convention. It never
// normalizes or corrects; a failing label is the caller's to fix.
func ValidLabel(label string) bool {
	return labelPattern.MatchString(label)
}

// StudyPrefix returns the leading three characters of the label, which key the
// rename rule table. Empty when the label is too short.
func StudyPrefix(label string) string {
	if len(label) < 3 {
		return ""
	}
	return label[:3]
}
