package domain

// DocStatus is the server-reported lifecycle status of a document.
// The client never advances a status locally; statuses only change by
// replacing the snapshot with a fresh listing from the remote service.
type DocStatus string

const (
	// StatusUploading means the document record exists but the file is
	// still being stored server-side.
	StatusUploading DocStatus = "uploading"

	// StatusProcessing means the ingestion pipeline is running.
	StatusProcessing DocStatus = "processing"

	// StatusReady means the document can answer queries.
	StatusReady DocStatus = "ready"

	// StatusError means ingestion failed; the document will not recover
	// without a new upload.
	StatusError DocStatus = "error"
)

// Transient reports whether the status is expected to change without
// further user action. Transient statuses drive the polling policy.
func (s DocStatus) Transient() bool {
	return s == StatusUploading || s == StatusProcessing
}

// Terminal reports whether the status will not change without a new
// explicit action such as a re-upload or delete.
func (s DocStatus) Terminal() bool {
	return s == StatusReady || s == StatusError
}

// Document is a server-side document as last reported by the remote
// service.
type Document struct {
	// ID is the server-assigned identifier, stable for the document's
	// lifetime.
	ID string

	// Name is the display name. It can be renamed but is never empty.
	Name string

	// Status is the lifecycle status at the time of the last listing.
	Status DocStatus

	// TotalChunks is the number of indexed chunks, zero until known.
	TotalChunks int

	// TotalPages is the page count of the PDF, zero until known.
	TotalPages int

	// UploadDate is the ISO date the document was uploaded, empty if
	// the server did not report one.
	UploadDate string
}
