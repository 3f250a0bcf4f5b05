package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
	"github.com/docuquery-labs/docuquery-cli/internal/core/ports/driven"
	"github.com/docuquery-labs/docuquery-cli/internal/core/ports/driving"
	"github.com/docuquery-labs/docuquery-cli/internal/logger"
)

// Ensure Library implements the interface.
var _ driving.LibraryService = (*Library)(nil)

// DefaultPollInterval is the refresh cadence while any document is in
// a transient status.
const DefaultPollInterval = 3 * time.Second

// Library tracks the document lifecycle across the remote service.
// The snapshot is replaced wholesale on every successful refresh; no
// partial merging, so the local view always equals the most recent
// listing.
type Library struct {
	remote       driven.RemoteService
	pollInterval time.Duration

	mu   sync.RWMutex
	docs []domain.Document
}

// NewLibrary creates a library tracker over the given remote service.
func NewLibrary(remote driven.RemoteService) *Library {
	return &Library{
		remote:       remote,
		pollInterval: DefaultPollInterval,
	}
}

// Refresh fetches the full listing and replaces the snapshot
// atomically. On failure the previous snapshot is retained.
func (l *Library) Refresh(ctx context.Context) ([]domain.Document, error) {
	docs, err := l.remote.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh documents: %w", err)
	}

	l.mu.Lock()
	l.docs = docs
	l.mu.Unlock()

	logger.Debug("library: refreshed snapshot, %d documents", len(docs))
	return copyDocs(docs), nil
}

// Upload validates the file locally, uploads it, then refreshes so the
// new document appears in the snapshot with its server status.
func (l *Library) Upload(ctx context.Context, filename string, content []byte) error {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return fmt.Errorf("upload %s: %w", filename, domain.ErrNotPDF)
	}
	if len(content) == 0 {
		return fmt.Errorf("upload %s: %w", filename, domain.ErrEmptyFile)
	}

	receipt, err := l.remote.UploadDocument(ctx, filepath.Base(filename), content)
	if err != nil {
		return fmt.Errorf("upload %s: %w", filename, err)
	}
	logger.Info("library: uploaded %s as %s (%s)", filename, receipt.DocID, receipt.Status)

	_, err = l.Refresh(ctx)
	return err
}

// Rename changes a document's display name, then refreshes. A blank
// name fails validation before any network call; an unchanged name is
// a silent no-op.
func (l *Library) Rename(ctx context.Context, docID, newName string) error {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return domain.ErrEmptyName
	}
	if current, ok := l.find(docID); ok && current.Name == newName {
		return nil
	}

	if _, err := l.remote.RenameDocument(ctx, docID, newName); err != nil {
		return fmt.Errorf("rename %s: %w", docID, err)
	}

	_, err := l.Refresh(ctx)
	return err
}

// Delete removes a document, then refreshes. A server not-found means
// the document is already gone, which is the state we wanted.
func (l *Library) Delete(ctx context.Context, docID string) error {
	if err := l.remote.DeleteDocument(ctx, docID); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("delete %s: %w", docID, err)
		}
		logger.Debug("library: delete %s reported not found, treating as converged", docID)
	}

	_, err := l.Refresh(ctx)
	return err
}

// Snapshot returns a copy of the current document snapshot.
func (l *Library) Snapshot() []domain.Document {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return copyDocs(l.docs)
}

// NeedsPolling reports whether any document is in a transient status.
func (l *Library) NeedsPolling() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := range l.docs {
		if l.docs[i].Status.Transient() {
			return true
		}
	}
	return false
}

// HasReady reports whether at least one document can answer queries.
func (l *Library) HasReady() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := range l.docs {
		if l.docs[i].Status == domain.StatusReady {
			return true
		}
	}
	return false
}

// PollInterval is the refresh cadence while NeedsPolling holds.
func (l *Library) PollInterval() time.Duration {
	return l.pollInterval
}

// SetPollInterval overrides the poll cadence. Intervals below one
// second are ignored to keep the remote service out of trouble.
func (l *Library) SetPollInterval(d time.Duration) {
	if d >= time.Second {
		l.pollInterval = d
	}
}

// find returns the snapshot entry for docID, if present.
func (l *Library) find(docID string) (domain.Document, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for i := range l.docs {
		if l.docs[i].ID == docID {
			return l.docs[i], true
		}
	}
	return domain.Document{}, false
}

func copyDocs(docs []domain.Document) []domain.Document {
	out := make([]domain.Document, len(docs))
	copy(out, docs)
	return out
}
