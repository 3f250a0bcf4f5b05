// Package library provides the document library view for the TUI:
// the listing with lifecycle status per document, plus upload, rename,
// and delete flows.
package library

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driving/tui/components/input"
	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driving/tui/components/status"
	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driving/tui/keymap"
	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driving/tui/messages"
	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driving/tui/styles"
	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
	"github.com/docuquery-labs/docuquery-cli/internal/core/ports/driving"
)

// Mode identifies the library view's input mode.
type Mode int

const (
	// ModeBrowse navigates the listing.
	ModeBrowse Mode = iota
	// ModeUpload prompts for a PDF path.
	ModeUpload
	// ModeRename prompts for a new document name.
	ModeRename
	// ModeConfirmDelete asks before deleting.
	ModeConfirmDelete
)

// View represents the library view.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.PromptInput
	statusbar *status.Bar

	library driving.LibraryService
	ctx     context.Context

	docs     []domain.Document
	selected int
	mode     Mode

	width  int
	height int
	err    error
}

// NewView creates a new library view.
func NewView(s *styles.Styles, km *keymap.KeyMap, library driving.LibraryService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:    s,
		keymap:    km,
		input:     input.NewPromptInput(s, "Path:", "Path to a PDF file..."),
		statusbar: status.NewBar(s, km),
		library:   library,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view by refreshing the listing.
func (v *View) Init() tea.Cmd {
	return v.refresh()
}

// Update handles messages for the library view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.LibraryUpdated:
		v.handleLibraryUpdated(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleLibraryUpdated applies a fresh snapshot.
func (v *View) handleLibraryUpdated(msg messages.LibraryUpdated) {
	if msg.Err != nil {
		v.err = msg.Err
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return
	}

	v.err = nil
	v.docs = msg.Documents
	if v.selected >= len(v.docs) {
		v.selected = len(v.docs) - 1
	}
	if v.selected < 0 {
		v.selected = 0
	}

	v.statusbar.SetDocCount(len(v.docs))
	v.statusbar.SetMessage(msg.Notice)
	if v.library.NeedsPolling() {
		v.statusbar.SetState(status.StatePolling)
	} else {
		v.statusbar.SetState(status.StateReady)
	}
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch v.mode {
	case ModeUpload, ModeRename:
		return v.handlePromptKey(msg)
	case ModeConfirmDelete:
		return v.handleConfirmKey(msg)
	case ModeBrowse:
	}

	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(keyStr, v.keymap.Down):
		if v.selected < len(v.docs)-1 {
			v.selected++
		}
	case keymap.Matches(keyStr, v.keymap.Refresh):
		v.statusbar.SetMessage("Refreshing...")
		return v, v.refresh()
	case keymap.Matches(keyStr, v.keymap.Upload):
		v.mode = ModeUpload
		v.input.SetLabel("Path:")
		v.input.SetPlaceholder("Path to a PDF file...")
		v.input.SetValue("")
		return v, v.input.Focus()
	case keymap.Matches(keyStr, v.keymap.Rename):
		doc, ok := v.selectedDoc()
		if !ok {
			return v, nil
		}
		v.mode = ModeRename
		v.input.SetLabel("Name:")
		v.input.SetPlaceholder("New document name...")
		v.input.SetValue(doc.Name)
		return v, v.input.Focus()
	case keymap.Matches(keyStr, v.keymap.Delete):
		if _, ok := v.selectedDoc(); ok {
			v.mode = ModeConfirmDelete
		}
	}

	return v, nil
}

// handlePromptKey processes input while an upload or rename prompt is open.
func (v *View) handlePromptKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.mode = ModeBrowse
		v.input.SetValue("")
		return v, nil

	case tea.KeyEnter:
		value := strings.TrimSpace(v.input.Value())
		mode := v.mode
		v.mode = ModeBrowse
		v.input.SetValue("")
		if value == "" {
			return v, nil
		}
		if mode == ModeUpload {
			v.statusbar.SetMessage("Uploading...")
			return v, v.upload(value)
		}
		doc, ok := v.selectedDoc()
		if !ok {
			return v, nil
		}
		return v, v.rename(doc.ID, value)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleConfirmKey processes the delete confirmation.
func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = ModeBrowse
		doc, ok := v.selectedDoc()
		if !ok {
			return v, nil
		}
		return v, v.delete(doc.ID, doc.Name)
	case "n", "N", "esc":
		v.mode = ModeBrowse
	}
	return v, nil
}

// refresh re-fetches the document listing.
func (v *View) refresh() tea.Cmd {
	return func() tea.Msg {
		_, err := v.library.Refresh(v.ctx)
		return messages.LibraryUpdated{Documents: v.library.Snapshot(), Err: err}
	}
}

// upload reads the file and sends it to the service.
func (v *View) upload(path string) tea.Cmd {
	return func() tea.Msg {
		content, err := os.ReadFile(path)
		if err != nil {
			return messages.LibraryUpdated{Documents: v.library.Snapshot(), Err: err}
		}
		if err := v.library.Upload(v.ctx, filepath.Base(path), content); err != nil {
			return messages.LibraryUpdated{Documents: v.library.Snapshot(), Err: err}
		}
		return messages.LibraryUpdated{
			Documents: v.library.Snapshot(),
			Notice:    "Uploaded " + filepath.Base(path),
		}
	}
}

// rename applies a new display name.
func (v *View) rename(docID, name string) tea.Cmd {
	return func() tea.Msg {
		if err := v.library.Rename(v.ctx, docID, name); err != nil {
			return messages.LibraryUpdated{Documents: v.library.Snapshot(), Err: err}
		}
		return messages.LibraryUpdated{Documents: v.library.Snapshot(), Notice: "Renamed to " + name}
	}
}

// delete removes a document.
func (v *View) delete(docID, name string) tea.Cmd {
	return func() tea.Msg {
		if err := v.library.Delete(v.ctx, docID); err != nil {
			return messages.LibraryUpdated{Documents: v.library.Snapshot(), Err: err}
		}
		return messages.LibraryUpdated{Documents: v.library.Snapshot(), Notice: "Deleted " + name}
	}
}

// selectedDoc returns the currently highlighted document.
func (v *View) selectedDoc() (domain.Document, bool) {
	if v.selected < 0 || v.selected >= len(v.docs) {
		return domain.Document{}, false
	}
	return v.docs[v.selected], true
}

// View renders the library view.
func (v *View) View() string {
	sections := make([]string, 0, 8)

	header := v.styles.Title.Render("Library")
	sections = append(sections, header, "")

	sections = append(sections, v.renderListing())

	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render("Error: "+v.err.Error()))
	}

	switch v.mode {
	case ModeUpload, ModeRename:
		sections = append(sections, "", v.input.View())
	case ModeConfirmDelete:
		if doc, ok := v.selectedDoc(); ok {
			prompt := fmt.Sprintf("Delete %s? (y/n)", doc.Name)
			sections = append(sections, "", v.styles.Warning.Render(prompt))
		}
	case ModeBrowse:
	}

	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderListing renders the document rows.
func (v *View) renderListing() string {
	if len(v.docs) == 0 {
		return v.styles.Muted.Render("No documents yet. Press u to upload a PDF.")
	}

	lines := make([]string, 0, len(v.docs))
	for i, doc := range v.docs {
		line := fmt.Sprintf("%s %s %s", statusGlyph(doc.Status), doc.Name, v.renderMeta(doc))
		if i == v.selected {
			line = v.styles.Selected.Render("> " + line)
		} else {
			line = v.styles.Normal.Render("  " + line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderMeta renders the secondary document details.
func (v *View) renderMeta(doc domain.Document) string {
	switch doc.Status {
	case domain.StatusReady:
		return v.styles.Muted.Render(fmt.Sprintf("(%d pages, %d chunks)", doc.TotalPages, doc.TotalChunks))
	case domain.StatusError:
		return v.styles.Error.Render("(failed)")
	case domain.StatusUploading, domain.StatusProcessing:
		return v.styles.Warning.Render("(" + string(doc.Status) + ")")
	default:
		return ""
	}
}

// statusGlyph maps a lifecycle status to a single-cell marker.
func statusGlyph(s domain.DocStatus) string {
	switch s {
	case domain.StatusReady:
		return "●"
	case domain.StatusProcessing:
		return "◐"
	case domain.StatusUploading:
		return "○"
	case domain.StatusError:
		return "✗"
	default:
		return "?"
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Documents returns the documents currently displayed.
func (v *View) Documents() []domain.Document {
	return v.docs
}

// Selected returns the index of the highlighted document.
func (v *View) Selected() int {
	return v.selected
}

// Mode returns the current input mode.
func (v *View) Mode() Mode {
	return v.mode
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}
