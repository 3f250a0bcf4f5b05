package services

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
	"github.com/docuquery-labs/docuquery-cli/internal/core/ports/driven"
	"github.com/docuquery-labs/docuquery-cli/internal/core/ports/driving"
	"github.com/docuquery-labs/docuquery-cli/internal/logger"
)

// Ensure Viewer implements the interface.
var _ driving.ViewerService = (*Viewer)(nil)

// Viewer owns the transient state of a citation under inspection.
// Sessions are uuid-tagged so a handle fetch that settles after its
// session was replaced or closed is dropped instead of clobbering the
// newer session.
type Viewer struct {
	remote driven.RemoteService

	mu      sync.Mutex
	session *domain.ViewerSession
}

// NewViewer creates a viewer controller over the given remote service.
func NewViewer(remote driven.RemoteService) *Viewer {
	return &Viewer{remote: remote}
}

// Open starts a loading session for the citation, replacing any prior
// session. The resolved page comes from the citation's page range,
// defaulting to 1.
func (v *Viewer) Open(c domain.Citation) domain.ViewerSession {
	session := domain.ViewerSession{
		ID:      uuid.NewString(),
		DocID:   c.DocID,
		DocName: c.DocName,
		Page:    c.FirstPage(),
		Status:  domain.SessionLoading,
	}

	v.mu.Lock()
	v.session = &session
	v.mu.Unlock()

	logger.Debug("viewer: opening %s at page %d", c.DocID, session.Page)
	return session
}

// Resolve fetches the viewable handle for the identified session and
// transitions it to ready or failed. No-op when the session has been
// replaced or closed in the meantime.
func (v *Viewer) Resolve(ctx context.Context, sessionID string) {
	v.mu.Lock()
	if v.session == nil || v.session.ID != sessionID {
		v.mu.Unlock()
		return
	}
	docID, page := v.session.DocID, v.session.Page
	v.mu.Unlock()

	handle, err := v.remote.ViewableDocument(ctx, docID)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.session == nil || v.session.ID != sessionID {
		return
	}

	if err != nil {
		// Failed sessions stay visible until the user dismisses them.
		logger.Warn("viewer: handle fetch for %s failed: %v", docID, err)
		v.session.Status = domain.SessionFailed
		v.session.Err = err
		return
	}

	v.session.Status = domain.SessionReady
	v.session.URL = fmt.Sprintf("%s#page=%d", handle.URL, page)
	v.session.TotalPages = handle.TotalPages
	if handle.Name != "" {
		v.session.DocName = handle.Name
	}
}

// Session returns a copy of the active session, or nil.
func (v *Viewer) Session() *domain.ViewerSession {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.session == nil {
		return nil
	}
	session := *v.session
	return &session
}

// Close destroys the active session. Idempotent.
func (v *Viewer) Close() {
	v.mu.Lock()
	v.session = nil
	v.mu.Unlock()
}

// OpenExternal opens the resolved URL with the system handler.
func (v *Viewer) OpenExternal() error {
	v.mu.Lock()
	session := v.session
	var url string
	if session != nil {
		url = session.URL
	}
	v.mu.Unlock()

	if session == nil {
		return domain.ErrNoSession
	}
	if session.Status != domain.SessionReady || url == "" {
		return domain.ErrViewerNotReady
	}
	return openURL(url)
}

// ViewableURL fetches a short-lived viewing URL for a document
// without starting a session. Used by one-shot commands.
func (v *Viewer) ViewableURL(ctx context.Context, docID string) (string, error) {
	handle, err := v.remote.ViewableDocument(ctx, docID)
	if err != nil {
		return "", err
	}
	return handle.URL, nil
}

// PageImage fetches a short-lived preview image URL for a page.
func (v *Viewer) PageImage(ctx context.Context, docID string, page int) (string, error) {
	return v.remote.PageImage(ctx, docID, page)
}

// openURL opens a URL using the platform default handler.
func openURL(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
