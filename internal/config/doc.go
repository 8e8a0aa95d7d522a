// Package config loads, validates, and normalizes the scribe TOML
// configuration. Path fields are tilde-expanded and made absolute during
// load so downstream packages never deal with relative paths.
package config
