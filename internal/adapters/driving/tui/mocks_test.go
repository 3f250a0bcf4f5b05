package tui

import (
	"context"
	"time"

	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
	"github.com/docuquery-labs/docuquery-cli/internal/core/ports/driving"
)

// MockLibraryService implements driving.LibraryService for testing.
type MockLibraryService struct {
	Docs         []domain.Document
	RefreshErr   error
	RefreshCalls int
	Polling      bool
	Ready        bool
	Interval     time.Duration
}

var _ driving.LibraryService = (*MockLibraryService)(nil)

func (m *MockLibraryService) Refresh(_ context.Context) ([]domain.Document, error) {
	m.RefreshCalls++
	if m.RefreshErr != nil {
		return nil, m.RefreshErr
	}
	return m.Docs, nil
}

func (m *MockLibraryService) Upload(_ context.Context, _ string, _ []byte) error {
	return nil
}

func (m *MockLibraryService) Rename(_ context.Context, _, _ string) error {
	return nil
}

func (m *MockLibraryService) Delete(_ context.Context, _ string) error {
	return nil
}

func (m *MockLibraryService) Snapshot() []domain.Document {
	return m.Docs
}

func (m *MockLibraryService) NeedsPolling() bool {
	return m.Polling
}

func (m *MockLibraryService) HasReady() bool {
	return m.Ready
}

func (m *MockLibraryService) PollInterval() time.Duration {
	if m.Interval == 0 {
		return 3 * time.Second
	}
	return m.Interval
}

// MockConversationService implements driving.ConversationService for testing.
type MockConversationService struct {
	History    []domain.Turn
	Flight     bool
	Selected   domain.AnswerModel
	RunCalls   int
	LastTicket *driving.QueryTicket
}

var _ driving.ConversationService = (*MockConversationService)(nil)

func (m *MockConversationService) Submit(question string) (*driving.QueryTicket, bool) {
	if m.Flight {
		return nil, false
	}
	m.History = append(m.History, domain.Turn{Role: domain.RoleUser, Content: question})
	m.Flight = true
	return &driving.QueryTicket{Question: question, Model: m.Model()}, true
}

func (m *MockConversationService) Run(_ context.Context, ticket *driving.QueryTicket) {
	m.RunCalls++
	m.LastTicket = ticket
	m.Flight = false
}

func (m *MockConversationService) NewConversation() {
	m.History = nil
}

func (m *MockConversationService) Turns() []domain.Turn {
	return m.History
}

func (m *MockConversationService) InFlight() bool {
	return m.Flight
}

func (m *MockConversationService) SetModel(model domain.AnswerModel) error {
	if !model.Valid() {
		return domain.ErrUnknownModel
	}
	m.Selected = model
	return nil
}

func (m *MockConversationService) Model() domain.AnswerModel {
	if m.Selected == "" {
		return domain.ModelGPT4o
	}
	return m.Selected
}

// MockViewerService implements driving.ViewerService for testing.
type MockViewerService struct {
	Active       *domain.ViewerSession
	ResolveCalls int
	OpenErr      error
}

var _ driving.ViewerService = (*MockViewerService)(nil)

func (m *MockViewerService) Open(c domain.Citation) domain.ViewerSession {
	session := domain.ViewerSession{
		ID:      "session-1",
		DocID:   c.DocID,
		DocName: c.DocName,
		Page:    c.FirstPage(),
		Status:  domain.SessionLoading,
	}
	m.Active = &session
	return session
}

func (m *MockViewerService) Resolve(_ context.Context, sessionID string) {
	m.ResolveCalls++
	if m.Active != nil && m.Active.ID == sessionID {
		m.Active.Status = domain.SessionReady
		m.Active.URL = "https://signed.example/doc.pdf#page=1"
	}
}

func (m *MockViewerService) Session() *domain.ViewerSession {
	return m.Active
}

func (m *MockViewerService) Close() {
	m.Active = nil
}

func (m *MockViewerService) OpenExternal() error {
	if m.Active == nil {
		return domain.ErrNoSession
	}
	return m.OpenErr
}
