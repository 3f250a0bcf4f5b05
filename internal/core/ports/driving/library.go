package driving

import (
	"context"
	"time"

	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
)

// LibraryService tracks the document lifecycle across the remote
// service. It owns the authoritative local snapshot; all status
// transitions happen by re-fetching the listing, never by local edits.
type LibraryService interface {
	// Refresh fetches the full listing and replaces the snapshot
	// atomically. On failure the previous snapshot is retained and the
	// error is returned for surfacing; polling continues regardless.
	Refresh(ctx context.Context) ([]domain.Document, error)

	// Upload validates the file locally (PDF extension, non-empty),
	// uploads it, then refreshes. Validation failures make no network
	// call.
	Upload(ctx context.Context, filename string, content []byte) error

	// Rename changes a document's display name, then refreshes.
	// A blank name fails validation; an unchanged name is a no-op.
	Rename(ctx context.Context, docID, newName string) error

	// Delete removes a document, then refreshes. A server not-found is
	// treated as successful convergence, not an error.
	Delete(ctx context.Context, docID string) error

	// Snapshot returns a copy of the current document snapshot.
	Snapshot() []domain.Document

	// NeedsPolling reports whether any document is in a transient
	// status. Recomputed from the snapshot on every call.
	NeedsPolling() bool

	// HasReady reports whether at least one document is ready to
	// answer queries. Recomputed from the snapshot on every call.
	HasReady() bool

	// PollInterval is the refresh cadence while NeedsPolling holds.
	PollInterval() time.Duration
}
