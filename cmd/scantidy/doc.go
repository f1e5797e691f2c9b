// Command scantidy audits subject and scan metadata in the lab's imaging
// repository and, on request, applies the resulting update plan. Run
// `scantidy check SUBJECT` for a read-only report and `scantidy apply` to
// write the proposed changes back.
package main
