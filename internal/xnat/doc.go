// Package xnat talks to the remote imaging repository over its REST API.
//
// The Client fetches a subject's experiments and scans and writes individual
// scan attributes back. Failures map onto the sentinel errors in errors.go so
// callers can distinguish missing subjects from credential and transport
// problems without string matching.
package xnat
