package session

import (
	"strings"

	"github.com/elistol/claude-chat/internal/provider"
)

// contextSeparator divides attached context blocks from each other and from
// the user's message text.
const contextSeparator = "\n\n---\n\n"

// defaultFilePrompt stands in for an empty message when files are attached
// with no question, so the request always carries an instruction.
const defaultFilePrompt = "Explain this code."

// JoinContext joins independent context blocks (file contents, search
// results) into one side-channel block.
func JoinContext(blocks []string) string {
	return strings.Join(blocks, contextSeparator)
}

// Augment builds the request text for a turn that carries attached context.
// The context rides in front, separated from the message; an empty message
// becomes the default prompt. With no context the message passes through
// untouched.
func Augment(context, msg string) string {
	if msg == "" {
		msg = defaultFilePrompt
	}
	if context == "" {
		return msg
	}
	return context + contextSeparator + msg
}

// Compose builds the outgoing message list for an exchange. The history is
// sent as stored except for the final user turn: when override is non-empty
// the API sees it in place of the stored text, so attached context reaches
// the model without ever entering the ledger.
func Compose(turns []provider.Message, override string) []provider.Message {
	if override == "" || len(turns) == 0 {
		return turns
	}
	out := make([]provider.Message, len(turns))
	copy(out, turns)
	out[len(out)-1] = provider.Message{Role: provider.RoleUser, Content: override}
	return out
}
