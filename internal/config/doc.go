// Package config loads, validates, and normalizes sceneforge's TOML
// configuration. Path fields are tilde-expanded and made absolute during
// Load; a local .env file is honored so secrets can stay out of the TOML.
package config
