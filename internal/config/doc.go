// Package config loads, normalizes, and validates scantidy configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// XNAT_PASSWORD. The Config type centralizes every knob the CLI needs: the
// XNAT connection, the rename rule database location, frame-count
// expectations per modality, and log routing.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
