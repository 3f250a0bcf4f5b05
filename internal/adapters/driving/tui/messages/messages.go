// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewChat is the conversation view: question input and turn history.
	ViewChat ViewType = iota
	// ViewLibrary is the document library view.
	ViewLibrary
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewChat:
		return "chat"
	case ViewLibrary:
		return "library"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// LibraryUpdated carries the refreshed document snapshot after any
// library operation settles. Err is set when the operation failed and
// the previous snapshot was retained; Notice is an optional
// human-readable outcome for the status bar.
type LibraryUpdated struct {
	Documents []domain.Document
	Notice    string
	Err       error
}

// PollTick fires a scheduled library refresh. Seq ties the tick to
// the poll cycle that armed it; ticks from superseded cycles are
// ignored.
type PollTick struct {
	Seq int
}

// QueryFinished signals that an in-flight query resolved into an
// assistant turn. The turn history is read back from the conversation
// service.
type QueryFinished struct{}

// CitationOpened signals that a citation was selected for inspection.
type CitationOpened struct {
	Citation domain.Citation
}

// ViewerResolved signals that the viewer session's handle fetch
// settled, ready or failed.
type ViewerResolved struct {
	SessionID string
}

// InboxFile signals a PDF dropped into the watched inbox directory.
type InboxFile struct {
	Path string
	Err  error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
