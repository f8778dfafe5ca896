// Package config loads, normalizes, and validates compendia configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides for the
// matching thresholds. The Config type centralizes every knob the CLI and the
// matching engine need so thresholds, accepted image formats, noise words, and
// log routing are resolved in one pass.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical extensions, and clear validation errors.
package config
