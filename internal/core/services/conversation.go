package services

import (
	"context"
	"strings"
	"sync"

	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
	"github.com/docuquery-labs/docuquery-cli/internal/core/ports/driven"
	"github.com/docuquery-labs/docuquery-cli/internal/core/ports/driving"
	"github.com/docuquery-labs/docuquery-cli/internal/logger"
)

// Ensure Conversation implements the interface.
var _ driving.ConversationService = (*Conversation)(nil)

// ApologyMessage is the fixed assistant reply when a query fails.
const ApologyMessage = "I'm sorry, I encountered an error while " +
	"processing your request. Please try again later."

// ReadinessSource answers whether any document can take queries.
// Satisfied by the library tracker; submissions are gated on it.
type ReadinessSource interface {
	HasReady() bool
}

// Conversation manages the ordered turn history. User turns are
// appended optimistically on submit and never rolled back; each
// resolved query adds exactly one assistant turn. At most one query is
// in flight at a time, enforced by a flag rather than cancellation.
type Conversation struct {
	remote driven.RemoteService
	docs   ReadinessSource

	mu         sync.Mutex
	turns      []domain.Turn
	model      domain.AnswerModel
	inFlight   bool
	generation uint64
}

// NewConversation creates a conversation controller. docs gates
// submissions on document readiness and may be nil in tools that check
// readiness themselves.
func NewConversation(remote driven.RemoteService, docs ReadinessSource) *Conversation {
	return &Conversation{
		remote: remote,
		docs:   docs,
		model:  domain.ModelGPT4o,
	}
}

// Submit validates and optimistically appends a user turn. The
// returned ticket carries everything Run needs; ok is false with no
// state change when the text is blank, a query is in flight, or no
// document is ready.
func (c *Conversation) Submit(question string) (*driving.QueryTicket, bool) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.inFlight {
		return nil, false
	}
	if c.docs != nil && !c.docs.HasReady() {
		return nil, false
	}

	// History is captured before the new user turn, role and content
	// only. Citations never travel back to the server.
	history := make([]domain.Turn, len(c.turns))
	for i, t := range c.turns {
		history[i] = domain.Turn{Role: t.Role, Content: t.Content}
	}

	c.turns = append(c.turns, domain.Turn{Role: domain.RoleUser, Content: question})
	c.inFlight = true

	return &driving.QueryTicket{
		Question:   question,
		History:    history,
		Model:      c.model,
		Generation: c.generation,
	}, true
}

// Run performs the remote query for a ticket and resolves it. Blocks
// until the exchange settles; callers dispatch it off the event loop.
func (c *Conversation) Run(ctx context.Context, ticket *driving.QueryTicket) {
	result, err := c.remote.Query(ctx, driven.QueryRequest{
		Question: ticket.Question,
		History:  ticket.History,
		Model:    ticket.Model,
	})
	if err != nil {
		c.resolve(ticket, "", nil, err)
		return
	}
	c.resolve(ticket, result.Answer, result.Citations, nil)
}

// resolve folds a settled query into the history. Failure is visible
// as a failed answer, never as a lost question.
func (c *Conversation) resolve(ticket *driving.QueryTicket, answer string, citations []domain.Citation, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight = false

	if ticket.Generation != c.generation {
		// The conversation was cleared while this query was in flight;
		// its result belongs to a history that no longer exists.
		logger.Debug("conversation: discarding response from stale generation %d", ticket.Generation)
		return
	}

	if err != nil {
		logger.Warn("conversation: query failed: %v", err)
		c.turns = append(c.turns, domain.Turn{
			Role:    domain.RoleAssistant,
			Content: ApologyMessage,
		})
		return
	}

	c.turns = append(c.turns, domain.Turn{
		Role:      domain.RoleAssistant,
		Content:   answer,
		Citations: citations,
	})
}

// NewConversation clears the history unconditionally and advances the
// generation so an in-flight query's result is discarded on arrival.
func (c *Conversation) NewConversation() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = nil
	c.generation++
}

// Turns returns a copy of the ordered turn history.
func (c *Conversation) Turns() []domain.Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// InFlight reports whether a query is outstanding.
func (c *Conversation) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// SetModel selects the answering model for subsequent queries.
func (c *Conversation) SetModel(m domain.AnswerModel) error {
	if !m.Valid() {
		return domain.ErrUnknownModel
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.model = m
	return nil
}

// Model returns the currently selected answering model.
func (c *Conversation) Model() domain.AnswerModel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.model
}
