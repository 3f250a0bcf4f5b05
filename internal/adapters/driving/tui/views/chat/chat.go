// Package chat provides the conversation view for the TUI: a question
// input above the ordered turn history, with numbered citations under
// each answer.
package chat

import (
	"context"
	"fmt"
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

// View represents the chat view with input, turn history, and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.PromptInput
	statusbar *status.Bar

	conversation driving.ConversationService
	library      driving.LibraryService
	ctx          context.Context

	width  int
	height int
	ready  bool
	err    error
}

// NewView creates a new chat view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	conversation driving.ConversationService,
	library driving.LibraryService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:       s,
		keymap:       km,
		input:        input.NewPromptInput(s, "Ask:", "Ask a question about your documents..."),
		statusbar:    status.NewBar(s, km),
		conversation: conversation,
		library:      library,
		ctx:          context.Background(),
		width:        80,
		height:       24,
	}
	if conversation != nil {
		v.statusbar.SetModel(conversation.Model())
	}
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the chat view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.QueryFinished:
		v.statusbar.SetState(status.StateReady)
		return v, nil

	case messages.LibraryUpdated:
		v.statusbar.SetDocCount(len(msg.Documents))
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

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case msg.Type == tea.KeyEnter:
		return v.submit()

	case keymap.Matches(keyStr, v.keymap.NewConversation):
		v.conversation.NewConversation()
		v.err = nil
		v.statusbar.Clear()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.CycleModel):
		next := v.conversation.Model().Next()
		if err := v.conversation.SetModel(next); err == nil {
			v.statusbar.SetModel(next)
		}
		return v, nil
	}

	// Alt+digit opens the numbered citation of the latest answer.
	// Plain digits stay with the input so questions can contain them.
	if msg.Alt && len(keyStr) == 5 && keyStr[:4] == "alt+" && keyStr[4] >= '1' && keyStr[4] <= '9' {
		return v, v.openCitation(int(keyStr[4] - '0'))
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// submit validates and dispatches the typed question.
func (v *View) submit() (*View, tea.Cmd) {
	question := strings.TrimSpace(v.input.Value())
	if question == "" {
		return v, nil
	}

	ticket, ok := v.conversation.Submit(question)
	if !ok {
		// Rejected: in flight, or no document ready. Keep the text so
		// the user can retry once the block clears.
		if v.conversation.InFlight() {
			v.statusbar.SetMessage("Still answering the previous question")
		} else {
			v.statusbar.SetMessage("No ready documents to ask")
		}
		return v, nil
	}

	v.input.SetValue("")
	v.err = nil
	v.statusbar.SetState(status.StateQuerying)
	v.statusbar.SetMessage("")

	return v, v.runQuery(ticket)
}

// runQuery performs the remote exchange off the update loop.
func (v *View) runQuery(ticket *driving.QueryTicket) tea.Cmd {
	return func() tea.Msg {
		v.conversation.Run(v.ctx, ticket)
		return messages.QueryFinished{}
	}
}

// openCitation emits the n-th citation of the most recent assistant
// turn for inspection.
func (v *View) openCitation(n int) tea.Cmd {
	turns := v.conversation.Turns()
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role != domain.RoleAssistant {
			continue
		}
		if n < 1 || n > len(turns[i].Citations) {
			return nil
		}
		citation := turns[i].Citations[n-1]
		return func() tea.Msg {
			return messages.CitationOpened{Citation: citation}
		}
	}
	return nil
}

// View renders the chat view.
func (v *View) View() string {
	sections := make([]string, 0, 8)

	header := v.styles.Title.Render("DocuQuery")
	sections = append(sections, header, "")

	sections = append(sections, v.renderTurns())

	if v.err != nil {
		sections = append(sections, "", v.styles.Error.Render("Error: "+v.err.Error()))
	}

	sections = append(sections, "", v.input.View())
	sections = append(sections, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTurns renders the ordered conversation history.
func (v *View) renderTurns() string {
	turns := v.conversation.Turns()
	if len(turns) == 0 {
		if v.library != nil && !v.library.HasReady() {
			return v.styles.Muted.Render("Upload a document to get started (tab for library).")
		}
		return v.styles.Muted.Render("Ask a question about your documents.")
	}

	lines := make([]string, 0, len(turns)*3)
	for _, turn := range turns {
		switch turn.Role {
		case domain.RoleUser:
			lines = append(lines, v.styles.UserLabel.Render("You")+" "+v.styles.Normal.Render(turn.Content))
		case domain.RoleAssistant:
			lines = append(lines, v.styles.AssistantLabel.Render("Assistant")+" "+v.styles.Normal.Render(turn.Content))
			lines = append(lines, v.renderCitations(turn.Citations)...)
		}
		lines = append(lines, "")
	}

	if v.conversation.InFlight() {
		lines = append(lines, v.styles.Muted.Render("Thinking..."))
	}

	return strings.Join(lines, "\n")
}

// renderCitations renders the numbered source list under an answer.
// Alt+number opens the matching source in the viewer.
func (v *View) renderCitations(citations []domain.Citation) []string {
	lines := make([]string, 0, len(citations))
	for i, c := range citations {
		ref := fmt.Sprintf("  [%d] %s", i+1, c.DocName)
		if c.HeadingPath != "" {
			ref += " · " + c.HeadingPath
		}
		if c.SourcePages != "" {
			ref += " · p." + c.SourcePages
		}
		lines = append(lines, v.styles.Citation.Render(ref))
	}
	return lines
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputValue returns the current input text.
func (v *View) InputValue() string {
	return v.input.Value()
}

// SetInputValue sets the input text.
func (v *View) SetInputValue(value string) {
	v.input.SetValue(value)
}

// StatusState returns the status bar state (for testing).
func (v *View) StatusState() status.State {
	return v.statusbar.State()
}
