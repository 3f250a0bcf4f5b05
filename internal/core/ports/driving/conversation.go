package driving

import (
	"context"

	"github.com/docuquery-labs/docuquery-cli/internal/core/domain"
)

// QueryTicket describes a query that Submit accepted for dispatch.
// The holder must eventually pass it to Run exactly once; the
// controller stays in-flight until then.
type QueryTicket struct {
	// Question is the trimmed question text.
	Question string

	// History is the turn history as it stood before the question was
	// appended, with citations stripped.
	History []domain.Turn

	// Model is the answering model selected at submit time.
	Model domain.AnswerModel

	// Generation identifies the conversation the query belongs to.
	// Results from a cleared conversation are discarded.
	Generation uint64
}

// ConversationService manages the ordered turn history with optimistic
// appends and single-flight querying.
type ConversationService interface {
	// Submit validates and optimistically appends a user turn,
	// returning the ticket to dispatch. ok is false, with no state
	// change, when the text is blank, a query is already in flight, or
	// no document is ready. No queueing: a rejected submit is dropped.
	Submit(question string) (ticket *QueryTicket, ok bool)

	// Run performs the remote query for a ticket and resolves it into
	// exactly one assistant turn: the answer with its citations, or a
	// fixed apology message on failure. The user turn is never rolled
	// back. Blocks until the exchange settles.
	Run(ctx context.Context, ticket *QueryTicket)

	// NewConversation clears the history unconditionally. An in-flight
	// query is not cancelled; its eventual result is discarded because
	// it carries a stale generation.
	NewConversation()

	// Turns returns a copy of the ordered turn history.
	Turns() []domain.Turn

	// InFlight reports whether a query is outstanding.
	InFlight() bool

	// SetModel selects the answering model for subsequent queries.
	// Fails with domain.ErrUnknownModel outside the recognised set.
	SetModel(m domain.AnswerModel) error

	// Model returns the currently selected answering model.
	Model() domain.AnswerModel
}
