package plan

import "strings"

// Field names written back to the repository.
const (
	FieldType    = "type"
	FieldQuality = "quality"
)

// UnusableQuality is the value written when a scan is marked unusable.
const UnusableQuality = "unusable"

// Item is one proposed field change for one scan.
type Item struct {
	ScanID string `json:"scan_id"`
	Field  string `json:"field"`
	// CurrentValue is the field value at snapshot time; the no-overwrite
	// guard compares against it before writing.
	CurrentValue string `json:"current_value"`
	NewValue     string `json:"new_value"`
	Reason       string `json:"reason"`
}

// Plan is the bucketed set of proposed changes for one session.
type Plan struct {
	Subject      string `json:"subject"`
	Project      string `json:"project"`
	SessionID    string `json:"session_id"`
	SessionLabel string `json:"session_label"`

	// Unusable holds scans to be marked unusable; they are never renamed in
	// the same plan.
	Unusable []Item `json:"unusable"`
	// Rename holds scans receiving a canonical type.
	Rename []Item `json:"rename"`
	// NoAction lists scans with no proposed change, so every scan in the
	// session is accounted for exactly once.
	NoAction []string `json:"no_action"`
}

// Empty reports whether the plan proposes no changes.
func (p Plan) Empty() bool {
	return len(p.Unusable) == 0 && len(p.Rename) == 0
}

// ItemCount returns the number of proposed changes.
func (p Plan) ItemCount() int {
	return len(p.Unusable) + len(p.Rename)
}

// isDefaultValue reports whether the observed field value still counts as the
// default the plan was computed against. Quality fields default to empty or
// "usable"; for type fields the default is the snapshot value itself, so a
// human edit made after the snapshot is never clobbered silently.
func isDefaultValue(field, observed, snapshotValue string) bool {
	switch field {
	case FieldQuality:
		normalized := strings.ToLower(strings.TrimSpace(observed))
		return normalized == "" || normalized == "usable" || observed == snapshotValue
	default:
		return observed == snapshotValue
	}
}
