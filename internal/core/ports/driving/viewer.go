package driving

import (
	"context"

	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
)

// ViewerService owns the transient "a citation is being inspected"
// state: at most one session, created on open and destroyed on close
// or replacement.
type ViewerService interface {
	// Open resolves the citation's first page and starts a new loading
	// session, implicitly discarding any prior one. The returned copy
	// carries the session id needed for Resolve.
	Open(c domain.Citation) domain.ViewerSession

	// Resolve fetches the viewable handle for the identified session
	// and transitions it to ready or failed. A resolve for a session
	// that has since been replaced or closed is a no-op. Blocks until
	// the exchange settles.
	Resolve(ctx context.Context, sessionID string)

	// Session returns a copy of the active session, or nil.
	Session() *domain.ViewerSession

	// Close destroys the active session. Idempotent.
	Close()

	// OpenExternal opens the resolved URL with the system handler.
	// Fails with domain.ErrNoSession or domain.ErrViewerNotReady.
	OpenExternal() error
}
