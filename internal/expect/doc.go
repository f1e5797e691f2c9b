// Package expect supplies the quality expectations the classifier compares
// scans against. The engine treats expectations as an external signal; this
// package only carries the configured values, it computes nothing from image
// data.
package expect
