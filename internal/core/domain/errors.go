package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent expected outcome paths, distinct from
// transport failures raised by the remote adapter.
var (
	// ErrNotFound indicates the remote service does not know the id.
	// A delete hitting this is treated as convergence, not failure.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates input rejected locally before any
	// network call was made.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotPDF indicates an upload whose declared type is not PDF.
	ErrNotPDF = fmt.Errorf("only PDF files are supported: %w", ErrInvalidInput)

	// ErrEmptyFile indicates an upload with no content.
	ErrEmptyFile = fmt.Errorf("file is empty: %w", ErrInvalidInput)

	// ErrEmptyName indicates a rename to a blank name.
	ErrEmptyName = fmt.Errorf("document name cannot be empty: %w", ErrInvalidInput)

	// ErrRejected indicates the remote service refused a well-formed
	// request, e.g. an unrecognised model identifier.
	ErrRejected = errors.New("request rejected by service")

	// ErrUnknownModel indicates a model identifier outside the
	// recognised set.
	ErrUnknownModel = errors.New("unknown answer model")

	// ErrNoSession indicates a viewer action with no active session.
	ErrNoSession = errors.New("no viewer session active")

	// ErrViewerNotReady indicates a viewer action that requires a
	// resolved viewable URL.
	ErrViewerNotReady = errors.New("viewer session not ready")
)
