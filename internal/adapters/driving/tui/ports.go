// Package tui provides the interactive terminal interface for
// DocuQuery. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/docuquery-labs/docuquery-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Library tracks the document lifecycle.
	Library driving.LibraryService

	// Conversation manages the turn history and querying.
	Conversation driving.ConversationService

	// Viewer owns the transient citation inspection session.
	Viewer driving.ViewerService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	library driving.LibraryService,
	conversation driving.ConversationService,
	viewer driving.ViewerService,
) *Ports {
	return &Ports{
		Library:      library,
		Conversation: conversation,
		Viewer:       viewer,
	}
}

// Validate ensures all required ports are set.
// Returns an error if any port is nil.
func (p *Ports) Validate() error {
	if p.Library == nil {
		return ErrMissingLibraryService
	}
	if p.Conversation == nil {
		return ErrMissingConversationService
	}
	if p.Viewer == nil {
		return ErrMissingViewerService
	}
	return nil
}
