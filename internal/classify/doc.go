// Package classify inspects a session snapshot and produces Findings.
//
// Each scan runs through four independent checks (unusable markers,
// duplicate types, incomplete acquisitions, quality mismatches) and, when
// eligible, a rename lookup against the rule table. Findings are pure data:
// produced fresh per run, attributable to one scan, and never mutated. The
// planner turns them into an update plan; nothing here writes anywhere.
package classify
