package driven

import (
	"context"

	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
)

// RemoteService is the REST boundary to the document QA backend.
// Implementations own no client-visible state; the controllers in
// core/services fold responses into their own snapshots.
//
// Every call either settles (success or failure) or stays pending
// until the transport gives up; the core defines no timeout of its own
// beyond what the implementation's transport enforces.
type RemoteService interface {
	// ListDocuments returns the full authoritative document listing.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// UploadDocument stores a new PDF and returns the created record.
	// The server rejects non-PDF or empty files with a client error.
	UploadDocument(ctx context.Context, filename string, content []byte) (*UploadReceipt, error)

	// RenameDocument changes a document's display name.
	// Fails with domain.ErrNotFound for an unknown id.
	RenameDocument(ctx context.Context, docID, name string) (*UploadReceipt, error)

	// DeleteDocument removes a document and all derived data.
	// Fails with domain.ErrNotFound for an unknown id.
	DeleteDocument(ctx context.Context, docID string) error

	// Query asks a question over the ready documents.
	// Fails with domain.ErrRejected for an unrecognised model.
	Query(ctx context.Context, req QueryRequest) (*QueryResult, error)

	// ViewableDocument returns a short-lived handle for displaying a
	// document's PDF. Fails with domain.ErrNotFound for an unknown id.
	ViewableDocument(ctx context.Context, docID string) (*ViewableDocument, error)

	// PageImage returns a short-lived URL for a page preview image.
	PageImage(ctx context.Context, docID string, page int) (string, error)
}

// UploadReceipt is the document summary returned by upload and rename.
type UploadReceipt struct {
	// DocID is the server-assigned identifier.
	DocID string

	// Name is the display name.
	Name string

	// Status is the lifecycle status after the operation.
	Status domain.DocStatus
}

// QueryRequest is a question plus the context it is asked in.
type QueryRequest struct {
	// Question is the user's question text.
	Question string

	// History is the prior turn history. Only role and content go on
	// the wire; citations are never sent back to the server.
	History []domain.Turn

	// Model is the answering model identifier.
	Model domain.AnswerModel
}

// QueryResult is the answer to a query.
type QueryResult struct {
	// Answer is the generated answer text.
	Answer string

	// Citations are the evidence references, in server rank order.
	Citations []domain.Citation
}

// ViewableDocument is a short-lived handle for displaying a PDF.
type ViewableDocument struct {
	// URL permits direct retrieval of the PDF, typically signed.
	URL string

	// Name is the document's display name.
	Name string

	// TotalPages is the document's page count.
	TotalPages int
}
