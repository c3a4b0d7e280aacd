package session

import (
	"testing"

	"github.com/elistol/claude-chat/internal/provider"
)

// Helpers to build turns for tests.
func user(text string) provider.Message {
	return provider.Message{Role: provider.RoleUser, Content: text}
}

func assistant(text string) provider.Message {
	return provider.Message{Role: provider.RoleAssistant, Content: text}
}

func TestLedger_AppendAndExchanges(t *testing.T) {
	l := New("Sonnet")
	if l.Exchanges() != 0 {
		t.Errorf("expected 0 exchanges, got %d", l.Exchanges())
	}

	l.Append(provider.RoleUser, "hello")
	if l.Exchanges() != 0 {
		t.Errorf("half a pair is not an exchange, got %d", l.Exchanges())
	}

	l.Append(provider.RoleAssistant, "hi")
	if l.Exchanges() != 1 {
		t.Errorf("expected 1 exchange, got %d", l.Exchanges())
	}
}

func TestLedger_PopLast(t *testing.T) {
	l := New("Sonnet")
	l.Append(provider.RoleUser, "first")
	l.Append(provider.RoleUser, "second")
	l.PopLast()

	if len(l.Turns) != 1 {
		t.Fatalf("expected 1 turn, got %d", len(l.Turns))
	}
	if l.Turns[0].Content != "first" {
		t.Errorf("expected first turn to survive, got %q", l.Turns[0].Content)
	}

	// PopLast on an empty ledger is a no-op.
	l.PopLast()
	l.PopLast()
	if len(l.Turns) != 0 {
		t.Errorf("expected empty ledger, got %d turns", len(l.Turns))
	}
}

func TestLedger_ClearKeepsTotals(t *testing.T) {
	l := New("Sonnet")
	l.Append(provider.RoleUser, "q1")
	l.Append(provider.RoleAssistant, "a1")
	l.Append(provider.RoleUser, "q2")
	l.Append(provider.RoleAssistant, "a2")
	l.AddUsage(provider.Usage{InputTokens: 100, OutputTokens: 50}, 0.01)

	removed := l.Clear()
	if removed != 2 {
		t.Errorf("expected 2 exchanges removed, got %d", removed)
	}
	if len(l.Turns) != 0 {
		t.Errorf("expected empty conversation, got %d turns", len(l.Turns))
	}
	if l.TotalInputTokens != 100 || l.TotalCost == 0 {
		t.Error("clear must not reset usage totals")
	}
}

func TestLedger_AddUsage(t *testing.T) {
	l := New("Sonnet")
	l.AddUsage(provider.Usage{InputTokens: 100, OutputTokens: 200}, 0.003)
	l.AddUsage(provider.Usage{InputTokens: 300, OutputTokens: 50}, 0.002)

	if l.TotalInputTokens != 400 {
		t.Errorf("expected 400 input tokens, got %d", l.TotalInputTokens)
	}
	if l.TotalOutputTokens != 250 {
		t.Errorf("expected 250 output tokens, got %d", l.TotalOutputTokens)
	}
	if l.LastInputTokens != 300 {
		t.Errorf("expected last input 300, got %d", l.LastInputTokens)
	}
	if l.TotalCost < 0.0049 || l.TotalCost > 0.0051 {
		t.Errorf("expected total cost 0.005, got %f", l.TotalCost)
	}
}

func TestLedger_LastAssistant(t *testing.T) {
	l := New("Sonnet")
	if l.LastAssistant() != "" {
		t.Error("empty ledger has no assistant turn")
	}

	l.Append(provider.RoleUser, "q1")
	l.Append(provider.RoleAssistant, "a1")
	l.Append(provider.RoleUser, "q2")
	if l.LastAssistant() != "a1" {
		t.Errorf("expected a1, got %q", l.LastAssistant())
	}

	l.Append(provider.RoleAssistant, "a2")
	if l.LastAssistant() != "a2" {
		t.Errorf("expected a2, got %q", l.LastAssistant())
	}
}
