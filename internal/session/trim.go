package session

import "github.com/elistol/claude-chat/internal/provider"

const (
	// trimTrigger is the fraction of the context limit at which trimming
	// starts. Below it the history is left alone.
	trimTrigger = 0.85

	// trimTarget is the fraction of the current turn count kept after a
	// trim pass.
	trimTarget = 0.7
)

// Trim drops the oldest user/assistant pairs when the last exchange's input
// token count approaches the context limit. It returns the number of
// exchanges removed.
//
// Eviction is pair-wise from the front and stops early if the head is not a
// well-formed user/assistant pair, so a malformed history is never made
// worse. The last exchange always survives.
func (l *Ledger) Trim(contextLimit int) int {
	if float64(l.LastInputTokens) < float64(contextLimit)*trimTrigger {
		return 0
	}

	target := int(float64(len(l.Turns)) * trimTarget)
	trimmed := 0
	for len(l.Turns) > target && len(l.Turns) > 2 {
		if l.Turns[0].Role == provider.RoleUser && l.Turns[1].Role == provider.RoleAssistant {
			l.Turns = l.Turns[2:]
			trimmed++
		} else {
			break
		}
	}
	return trimmed
}
