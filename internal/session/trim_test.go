package session

import (
	"fmt"
	"testing"

	"github.com/elistol/claude-chat/internal/provider"
)

const testLimit = 180000

// ledgerWithExchanges builds a ledger holding n complete exchanges.
func ledgerWithExchanges(n int) *Ledger {
	l := New("Sonnet")
	for i := 0; i < n; i++ {
		l.Append(provider.RoleUser, fmt.Sprintf("question %d", i))
		l.Append(provider.RoleAssistant, fmt.Sprintf("answer %d", i))
	}
	return l
}

func TestTrim_BelowThresholdUntouched(t *testing.T) {
	l := ledgerWithExchanges(50)
	l.LastInputTokens = int(float64(testLimit)*0.85) - 1

	if trimmed := l.Trim(testLimit); trimmed != 0 {
		t.Errorf("expected no trim below threshold, got %d", trimmed)
	}
	if len(l.Turns) != 100 {
		t.Errorf("expected 100 turns intact, got %d", len(l.Turns))
	}
}

func TestTrim_AtThresholdTrims(t *testing.T) {
	l := ledgerWithExchanges(5)
	l.LastInputTokens = int(float64(testLimit) * 0.85)

	trimmed := l.Trim(testLimit)
	// 10 turns, target 7: two pairs go, leaving 6 turns.
	if trimmed != 2 {
		t.Errorf("expected 2 exchanges trimmed, got %d", trimmed)
	}
	if len(l.Turns) != 6 {
		t.Errorf("expected 6 turns left, got %d", len(l.Turns))
	}
	if l.Turns[0].Content != "question 2" {
		t.Errorf("oldest pairs should go first, head is %q", l.Turns[0].Content)
	}
}

func TestTrim_LastExchangeSurvives(t *testing.T) {
	l := ledgerWithExchanges(1)
	l.LastInputTokens = testLimit

	if trimmed := l.Trim(testLimit); trimmed != 0 {
		t.Errorf("a single exchange must survive, got %d trimmed", trimmed)
	}
	if len(l.Turns) != 2 {
		t.Errorf("expected 2 turns, got %d", len(l.Turns))
	}
}

func TestTrim_MalformedHeadStops(t *testing.T) {
	l := New("Sonnet")
	// Two assistant turns at the front: not an evictable pair.
	l.Append(provider.RoleAssistant, "stray")
	l.Append(provider.RoleAssistant, "stray2")
	for i := 0; i < 5; i++ {
		l.Append(provider.RoleUser, "q")
		l.Append(provider.RoleAssistant, "a")
	}
	l.LastInputTokens = testLimit

	if trimmed := l.Trim(testLimit); trimmed != 0 {
		t.Errorf("malformed head must stop eviction, got %d trimmed", trimmed)
	}
	if len(l.Turns) != 12 {
		t.Errorf("expected history untouched, got %d turns", len(l.Turns))
	}
}

func TestTrim_RepeatedCallsConverge(t *testing.T) {
	l := ledgerWithExchanges(10)
	l.LastInputTokens = testLimit

	first := l.Trim(testLimit)
	if first == 0 {
		t.Fatal("expected first trim to remove exchanges")
	}
	// Still over threshold (LastInputTokens unchanged until the next
	// exchange reports), so a second pass shrinks toward the floor.
	second := l.Trim(testLimit)
	if len(l.Turns) < 2 {
		t.Errorf("trim must never drop below one exchange, got %d turns", len(l.Turns))
	}
	if second > first {
		t.Errorf("second pass should not remove more than the first (%d > %d)", second, first)
	}
}
