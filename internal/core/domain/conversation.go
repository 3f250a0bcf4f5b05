package domain

// Role identifies the author of a conversation turn.
type Role string

const (
	// RoleUser marks a question submitted by the user.
	RoleUser Role = "user"

	// RoleAssistant marks an answer (or synthesised failure message)
	// from the service.
	RoleAssistant Role = "assistant"
)

// Turn is a single entry in the conversation history.
//
// Turns are append-only and strictly ordered. Every user turn is
// eventually followed by exactly one assistant turn: either a real
// answer or a synthesised failure message. Citations appear on
// assistant turns only and keep the order the server returned them in;
// their rank implies footnote numbering [1..n].
type Turn struct {
	// Role is the author of the turn.
	Role Role

	// Content is the turn's text.
	Content string

	// Citations are the evidence references for an assistant turn.
	Citations []Citation
}
