// Package rules owns the scan-type rename rule table.
//
// The engine only depends on the Table lookup capability; the SQLite Store is
// one implementation of it, fed from the lab's scan_type_renames.csv export.
// A rule maps (study prefix, series description, current type) to the
// canonical type the scan should carry. Lookups can return several candidates
// when the table is over-broad; the resolver treats that as an ambiguity,
// never a choice.
package rules
