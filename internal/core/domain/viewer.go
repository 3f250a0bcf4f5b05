package domain

// SessionStatus is the resolution state of a viewer session.
type SessionStatus string

const (
	// SessionLoading means the viewable handle is being fetched.
	SessionLoading SessionStatus = "loading"

	// SessionReady means the viewable URL has been resolved.
	SessionReady SessionStatus = "ready"

	// SessionFailed means the handle fetch failed. The session stays
	// visible as an inline error until the user dismisses it.
	SessionFailed SessionStatus = "failed"
)

// ViewerSession is the transient state of a citation under inspection.
// At most one session exists at a time; opening another citation
// replaces the current session rather than stacking.
type ViewerSession struct {
	// ID distinguishes this session from ones it replaced, so a
	// resolution landing late cannot clobber a newer session.
	ID string

	// DocID identifies the document being viewed.
	DocID string

	// DocName is the display name of the document.
	DocName string

	// Page is the resolved page to open, parsed from the citation's
	// page range (1 when absent or unparsable).
	Page int

	// Status is the resolution state.
	Status SessionStatus

	// URL is the viewable URL once Status is SessionReady, annotated
	// with the page as a display hint. Actual page navigation depends
	// on the viewer and is not guaranteed.
	URL string

	// TotalPages is the document's page count as reported with the
	// handle, zero until ready.
	TotalPages int

	// Err holds the failure when Status is SessionFailed.
	Err error
}
