// Package provider defines the message and event types exchanged with the
// Anthropic API and the streaming adapter that produces them. Transport
// failures are classified once here, at the boundary, so callers switch on
// an ErrorKind instead of probing error strings.
package provider

import "context"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of conversation history.
type Message struct {
	Role    Role
	Content string
}

// ChatRequest is a single exchange sent to the API.
type ChatRequest struct {
	Model     string
	Messages  []Message
	System    string
	MaxTokens int
}

type EventType int

const (
	// EventTextDelta: a text increment, rendered to the terminal as it arrives
	EventTextDelta EventType = iota

	// EventDone: the reply is complete, with token usage attached
	EventDone

	// EventError: the exchange failed; Error is a classified *APIError
	EventError
)

// Event is one element of a streaming reply.
type Event struct {
	Type EventType

	// EventTextDelta
	TextDelta string

	// EventDone
	Usage *Usage

	// EventError
	Error error
}

// Usage records the token consumption of one API call.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Provider streams chat completions.
type Provider interface {
	// Chat starts a streaming exchange. The returned channel emits events
	// until EventDone or EventError, then closes. Callers must drain it.
	Chat(ctx context.Context, req *ChatRequest) (<-chan Event, error)
}
