// Package domain contains the core types for the DocuQuery client:
// documents as last reported by the remote service, conversation turns,
// citations, and transient viewer sessions.
//
// The client holds no authoritative state of its own. Documents are
// rebuilt from the remote listing on every refresh, and the only local
// state is what the controllers in core/services derive from it.
package domain
