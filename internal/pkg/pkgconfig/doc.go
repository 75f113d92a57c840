// Package pkgconfig provides a small abstraction for reading configuration values.
//
// Business code depends on the Config interface, the Viper type reads a YAML
// file (with defaults and environment overrides) and reloads it on change.
// Getters cover the scalar types the service reads plus string lists (a
// YAML list or a comma separated string).
package pkgconfig
