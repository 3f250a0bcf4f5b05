// Package services implements the client's reconciliation core: the
// document lifecycle tracker, the conversation controller, and the
// citation viewer controller.
//
// Each controller owns exactly one piece of state (the document
// snapshot, the turn history, the viewer session) and mutates it only
// in response to a completed remote exchange or a direct user intent.
// Controllers are safe for the call pattern the TUI uses: blocking
// methods invoked from tea.Cmd goroutines while the Elm loop reads
// finalized snapshots.
package services
