// Package engine wires one subject's audit run end to end: fetch the visit
// from the repository, snapshot it, classify every scan, resolve renames
// against the rule table, and fold the findings into an update plan. A run is
// synchronous and works on a single point-in-time snapshot; independent runs
// for different subjects can proceed in parallel because nothing here is
// shared.
package engine
