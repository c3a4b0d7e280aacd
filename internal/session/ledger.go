// Package session holds the conversation ledger, the trim policy that keeps
// it inside the context limit, the request composer, and flat-file
// persistence (JSON snapshots plus Markdown export).
package session

import "github.com/elistol/claude-chat/internal/provider"

// Ledger is the mutable state of one conversation: the turn sequence plus
// the running usage totals that survive trims and clears.
type Ledger struct {
	Turns   []provider.Message
	Persona string // extra system prompt text, "" = none

	// ModelName is the display name of the active model (pricing and
	// snapshot key, not the API ID).
	ModelName string

	TotalInputTokens  int
	TotalOutputTokens int
	TotalCost         float64

	// LastInputTokens is the input token count reported by the most recent
	// exchange; the trim policy reads it as the context fullness signal.
	LastInputTokens int
}

// New creates an empty ledger for the given model display name.
func New(modelName string) *Ledger {
	return &Ledger{ModelName: modelName}
}

// Append adds a turn to the conversation.
func (l *Ledger) Append(role provider.Role, content string) {
	l.Turns = append(l.Turns, provider.Message{Role: role, Content: content})
}

// PopLast removes the most recent turn. Used to roll back a user turn when
// the exchange fails.
func (l *Ledger) PopLast() {
	if len(l.Turns) > 0 {
		l.Turns = l.Turns[:len(l.Turns)-1]
	}
}

// LastAssistant returns the content of the most recent assistant turn,
// or "" when there is none.
func (l *Ledger) LastAssistant() string {
	for i := len(l.Turns) - 1; i >= 0; i-- {
		if l.Turns[i].Role == provider.RoleAssistant {
			return l.Turns[i].Content
		}
	}
	return ""
}

// Exchanges returns the number of completed user/assistant pairs.
func (l *Ledger) Exchanges() int {
	return len(l.Turns) / 2
}

// Clear drops the conversation and returns the number of exchanges removed.
// Usage totals are kept; they describe the session, not the history.
func (l *Ledger) Clear() int {
	n := l.Exchanges()
	l.Turns = nil
	return n
}

// AddUsage folds one exchange's token usage and cost into the totals.
func (l *Ledger) AddUsage(u provider.Usage, cost float64) {
	l.LastInputTokens = u.InputTokens
	l.TotalInputTokens += u.InputTokens
	l.TotalOutputTokens += u.OutputTokens
	l.TotalCost += cost
}
