// Package config loads process configuration from defaults, an optional
// YAML file named by SKILLMAP_CONFIG, and SKILLMAP_-prefixed environment
// variables, in that order of precedence.
package config
