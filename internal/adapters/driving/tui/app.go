package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driving/tui/keymap"
	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driving/tui/messages"
	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driving/tui/styles"
	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driving/tui/views/chat"
	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driving/tui/views/library"
	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driving/tui/views/viewer"
	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driving/watch"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// keymap holds the keybindings.
	keymap *keymap.KeyMap

	// chatView is the conversation view.
	chatView *chat.View

	// libraryView is the document library view.
	libraryView *library.View

	// viewerView is the citation inspection overlay.
	viewerView *viewer.View

	// inbox delivers auto-upload events from a watched directory.
	// Nil when no inbox is configured.
	inbox <-chan watch.Event

	// currentView tracks which view is active.
	currentView messages.ViewType

	// pollSeq identifies the live poll cycle. A fresh snapshot that
	// still needs polling bumps it and arms a tick; ticks carrying an
	// older sequence are stale and ignored.
	pollSeq int

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		chatView:    chat.NewView(s, km, ports.Conversation, ports.Library),
		libraryView: library.NewView(s, km, ports.Library),
		viewerView:  viewer.NewView(s, km, ports.Viewer),
		currentView: messages.ViewChat,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.chatView.WithContext(ctx)
	a.libraryView.WithContext(ctx)
	return a
}

// WithInbox attaches a watched-directory event stream whose PDFs are
// uploaded automatically.
func (a *App) WithInbox(events <-chan watch.Event) *App {
	a.inbox = events
	return a
}

// Init implements tea.Model.
// It runs initial commands when the program starts.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tea.SetWindowTitle("docuquery"),
		a.chatView.Init(),
		a.libraryView.Init(),
	}
	if a.inbox != nil {
		cmds = append(cmds, a.waitForInbox())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		// Forward to all views for proper sizing
		a.chatView.SetDimensions(msg.Width, msg.Height)
		a.libraryView.SetDimensions(msg.Width, msg.Height)
		a.viewerView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case messages.LibraryUpdated:
		return a.handleLibraryUpdated(msg)

	case messages.PollTick:
		// Only the live cycle's tick refreshes; rearming happens when
		// the fetched snapshot arrives, so polling self-terminates.
		if msg.Seq != a.pollSeq {
			return a, nil
		}
		return a, a.refreshLibrary()

	case messages.QueryFinished:
		a.chatView, cmd = a.chatView.Update(msg)
		return a, cmd

	case messages.CitationOpened:
		session := a.ports.Viewer.Open(msg.Citation)
		return a, a.resolveViewer(session.ID)

	case messages.ViewerResolved:
		a.viewerView, cmd = a.viewerView.Update(msg)
		return a, cmd

	case messages.InboxFile:
		return a.handleInboxFile(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		switch a.currentView {
		case messages.ViewChat:
			a.chatView, cmd = a.chatView.Update(msg)
		case messages.ViewLibrary:
			a.libraryView, cmd = a.libraryView.Update(msg)
		case messages.ViewHelp:
		}
		return a, cmd

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward other messages to active view
	switch a.currentView {
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewLibrary:
		a.libraryView, cmd = a.libraryView.Update(msg)
	case messages.ViewHelp:
	}

	return a, cmd
}

// handleKeyMsg routes keyboard input.
func (a *App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	// Global quit with ctrl+c
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// The viewer overlay captures keys while a session exists.
	if a.viewerView.Active() {
		a.viewerView, cmd = a.viewerView.Update(msg)
		return a, cmd
	}

	// View switching. In the library the chat input is not focused, so
	// plain keys are safe; in chat only tab and ? are global.
	if keymap.Matches(msg.String(), a.keymap.SwitchView) {
		if a.currentView == messages.ViewChat {
			a.currentView = messages.ViewLibrary
		} else {
			a.currentView = messages.ViewChat
		}
		return a, nil
	}
	if a.currentView != messages.ViewChat && keymap.Matches(msg.String(), a.keymap.Help) {
		a.currentView = messages.ViewHelp
		return a, nil
	}

	switch a.currentView {
	case messages.ViewChat:
		a.chatView, cmd = a.chatView.Update(msg)
	case messages.ViewLibrary:
		a.libraryView, cmd = a.libraryView.Update(msg)
	case messages.ViewHelp:
		// Any key leaves help
		a.currentView = messages.ViewChat
	}

	return a, cmd
}

// handleLibraryUpdated applies a fresh snapshot and rearms polling
// while any document is still transient.
func (a *App) handleLibraryUpdated(msg messages.LibraryUpdated) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	a.libraryView, cmd = a.libraryView.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.chatView, cmd = a.chatView.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	if a.ports.Library.NeedsPolling() {
		a.pollSeq++
		cmds = append(cmds, a.pollTick(a.pollSeq, a.ports.Library.PollInterval()))
	}

	return a, tea.Batch(cmds...)
}

// handleInboxFile uploads a PDF dropped into the watched directory.
func (a *App) handleInboxFile(msg messages.InboxFile) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{a.waitForInbox()}
	if msg.Err != nil {
		a.err = msg.Err
	} else if msg.Path != "" {
		cmds = append(cmds, a.uploadPath(msg.Path))
	}
	return a, tea.Batch(cmds...)
}

// refreshLibrary re-fetches the document listing.
func (a *App) refreshLibrary() tea.Cmd {
	return func() tea.Msg {
		_, err := a.ports.Library.Refresh(a.ctx)
		return messages.LibraryUpdated{Documents: a.ports.Library.Snapshot(), Err: err}
	}
}

// uploadPath reads and uploads a file from disk.
func (a *App) uploadPath(path string) tea.Cmd {
	return func() tea.Msg {
		content, err := os.ReadFile(path)
		if err != nil {
			return messages.LibraryUpdated{Documents: a.ports.Library.Snapshot(), Err: err}
		}
		if err := a.ports.Library.Upload(a.ctx, filepath.Base(path), content); err != nil {
			return messages.LibraryUpdated{Documents: a.ports.Library.Snapshot(), Err: err}
		}
		return messages.LibraryUpdated{
			Documents: a.ports.Library.Snapshot(),
			Notice:    "Uploaded " + filepath.Base(path),
		}
	}
}

// resolveViewer fetches the viewable handle for a session.
func (a *App) resolveViewer(sessionID string) tea.Cmd {
	return func() tea.Msg {
		a.ports.Viewer.Resolve(a.ctx, sessionID)
		return messages.ViewerResolved{SessionID: sessionID}
	}
}

// pollTick schedules the next library refresh for a poll cycle.
func (a *App) pollTick(seq int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return messages.PollTick{Seq: seq}
	})
}

// waitForInbox blocks on the next inbox event.
func (a *App) waitForInbox() tea.Cmd {
	events := a.inbox
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return messages.InboxFile{Path: ev.Path, Err: ev.Err}
	}
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	if a.viewerView.Active() {
		return a.viewerView.View()
	}

	switch a.currentView {
	case messages.ViewChat:
		return a.chatView.View()
	case messages.ViewLibrary:
		return a.libraryView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.chatView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Chat:
  (type)      Enter a question
  enter       Ask
  alt+1..9    Open numbered source
  ctrl+n      New conversation
  ctrl+p      Cycle answer model

Library:
  j/k, ↑/↓    Navigate documents
  r           Refresh listing
  u           Upload a PDF
  e           Rename selected
  d           Delete selected

Viewer:
  o           Open in browser
  esc         Dismiss

Global:
  tab         Switch chat/library
  ctrl+c      Quit

[any key] back`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// PollSeq returns the live poll cycle sequence (for testing).
func (a *App) PollSeq() int {
	return a.pollSeq
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.chatView.SetDimensions(width, height)
	a.libraryView.SetDimensions(width, height)
}
