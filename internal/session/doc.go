// Package session models one subject's imaging visit as an immutable
// snapshot.
//
// A Session is built once from repository records and never mutated; every
// downstream check and plan operates on that point-in-time view. Construction
// rejects upstream data-integrity problems (no scans, a scan without an
// identifier, a subject spread over several visits) so the rest of the engine
// can assume a well-formed snapshot.
package session
