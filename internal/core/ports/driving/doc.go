// Package driving defines the inbound ports exposed by the core
// controllers to the CLI and TUI adapters.
package driving
