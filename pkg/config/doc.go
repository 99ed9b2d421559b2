// Package config loads ClientLine configuration from CLIENTLINE_* environment
// variables and fails fast when required database parameters are absent.
package config
