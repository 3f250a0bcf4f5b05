// Package file provides a TOML file-based configuration store for the
// DocuQuery CLI. Configuration lives in ~/.docuquery/config.toml and
// can be overridden per-invocation through environment variables.
package file
