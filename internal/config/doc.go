// Package config loads, validates, and normalizes winnow's TOML
// configuration. Paths are expanded (including ~) before use and a sample
// configuration can be materialized for new installations.
package config
