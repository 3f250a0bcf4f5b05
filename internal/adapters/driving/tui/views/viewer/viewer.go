// Package viewer provides the citation inspection overlay: the
// transient session state of a document being viewed at a page.
package viewer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driving/tui/keymap"
	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driving/tui/styles"
	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
	"github.com/docuquery-labs/docuquery-cli/internal/core/ports/driving"
)

// View renders the active viewer session as an overlay.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	viewer driving.ViewerService

	width  int
	height int
	notice string
}

// NewView creates a new viewer overlay.
func NewView(s *styles.Styles, km *keymap.KeyMap, viewer driving.ViewerService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles: s,
		keymap: km,
		viewer: viewer,
		width:  80,
		height: 24,
	}
}

// Update handles messages for the viewer overlay.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	keyStr := keyMsg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.CloseViewer):
		v.viewer.Close()
		v.notice = ""
	case keymap.Matches(keyStr, v.keymap.OpenExternal):
		if err := v.viewer.OpenExternal(); err != nil {
			v.notice = err.Error()
		} else {
			v.notice = "Opened in browser"
		}
	}

	return v, nil
}

// Active reports whether a session exists to display.
func (v *View) Active() bool {
	return v.viewer.Session() != nil
}

// View renders the viewer overlay.
func (v *View) View() string {
	session := v.viewer.Session()
	if session == nil {
		return ""
	}

	lines := make([]string, 0, 8)
	lines = append(lines, v.styles.Subtitle.Render("Source: "+session.DocName))

	switch session.Status {
	case domain.SessionLoading:
		lines = append(lines, v.styles.Muted.Render(fmt.Sprintf("Loading page %d...", session.Page)))

	case domain.SessionReady:
		page := fmt.Sprintf("Page %d", session.Page)
		if session.TotalPages > 0 {
			page = fmt.Sprintf("Page %d of %d", session.Page, session.TotalPages)
		}
		lines = append(lines,
			v.styles.Normal.Render(page),
			v.styles.Muted.Render(session.URL),
		)

	case domain.SessionFailed:
		reason := "document unavailable"
		if session.Err != nil {
			reason = session.Err.Error()
		}
		lines = append(lines, v.styles.Error.Render("Could not open source: "+reason))
	}

	if v.notice != "" {
		lines = append(lines, "", v.styles.Muted.Render(v.notice))
	}

	lines = append(lines, "", v.renderHints(session.Status))

	box := v.styles.Border.Padding(1, 2)
	return box.Render(strings.Join(lines, "\n"))
}

// renderHints renders the keybinding hints for the current state.
func (v *View) renderHints(s domain.SessionStatus) string {
	hints := []string{"esc: dismiss"}
	if s == domain.SessionReady {
		hints = append([]string{"o: open in browser"}, hints...)
	}
	return v.styles.Help.Render(strings.Join(hints, " | "))
}

// SetDimensions sets the overlay dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Notice returns the transient action outcome text (for testing).
func (v *View) Notice() string {
	return v.notice
}
