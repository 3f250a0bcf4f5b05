// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driving/tui/keymap"
	"github.com/docuquery-labs/docuquery-cli/internal/adapters/driving/tui/styles"
	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
)

// State represents the current application state for display.
type State string

const (
	StateReady    State = "ready"
	StatePolling  State = "polling"
	StateQuerying State = "querying"
	StateError    State = "error"
)

// Bar displays application status, the selected model, and
// keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	model    domain.AnswerModel
	docCount int
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// Init initialises the status bar.
func (b *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (b *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is mostly passive, updated via Set methods
	return b, nil
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := b.width - leftLen - rightLen
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the left side of the status bar.
func (b *Bar) renderLeft() string {
	var state string
	switch b.state {
	case StatePolling:
		state = b.styles.Warning.Render("Processing documents...")
	case StateQuerying:
		state = b.styles.Warning.Render("Thinking...")
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render("Error: " + b.message)
		}
		return b.styles.Error.Render("Error")
	case StateReady:
		if b.docCount > 0 {
			state = b.styles.Normal.Render(fmt.Sprintf("%d documents", b.docCount))
		} else {
			state = b.styles.Muted.Render("No documents")
		}
	default:
		state = b.styles.Muted.Render("Ready")
	}

	if b.message != "" {
		return state + b.styles.Muted.Render("  "+b.message)
	}
	return state
}

// renderRight renders the model name and keybinding hints.
func (b *Bar) renderRight() string {
	hints := make([]string, 0, 4)
	if b.model != "" {
		hints = append(hints, b.styles.Subtitle.Render(string(b.model)))
	}

	bindings := b.keymap.ShortHelp()
	for _, binding := range bindings {
		h := binding.Help()
		hints = append(hints, b.styles.Muted.Render(h.Key+": "+h.Desc))
	}
	return strings.Join(hints, b.styles.Muted.Render(" | "))
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetMessage sets a custom message.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetModel sets the displayed answering model.
func (b *Bar) SetModel(m domain.AnswerModel) {
	b.model = m
}

// SetDocCount sets the document count.
func (b *Bar) SetDocCount(count int) {
	b.docCount = count
}

// DocCount returns the current document count.
func (b *Bar) DocCount() int {
	return b.docCount
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the current width.
func (b *Bar) Width() int {
	return b.width
}

// Hints returns the rendered keybinding hints (for testing).
func (b *Bar) Hints(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, " | ")
}

// Clear resets the status bar to default state.
func (b *Bar) Clear() {
	b.state = StateReady
	b.message = ""
}
