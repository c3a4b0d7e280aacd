package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/elistol/claude-chat/internal/provider"
)

func testLedger() *Ledger {
	l := New("Opus")
	l.Persona = "Be terse."
	l.Append(provider.RoleUser, "what is Go?")
	l.Append(provider.RoleAssistant, "A programming language.")
	l.AddUsage(provider.Usage{InputTokens: 12, OutputTokens: 8}, 0.0006)
	return l
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	st := NewStore(t.TempDir())
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	name, err := st.Save(testLedger().Snapshot("dracula", now))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if name != "chat_20260314_150926.json" {
		t.Errorf("unexpected filename %q", name)
	}

	snap, err := st.Load(name)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Model != "Opus" || snap.Theme != "dracula" {
		t.Errorf("model/theme mismatch: %+v", snap)
	}
	if snap.SystemPrompt != "Be terse." {
		t.Errorf("persona mismatch: %q", snap.SystemPrompt)
	}

	l := snap.Restore()
	if len(l.Turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(l.Turns))
	}
	if l.Turns[1].Role != provider.RoleAssistant {
		t.Errorf("role mismatch: %s", l.Turns[1].Role)
	}
	if l.TotalInputTokens != 12 || l.TotalOutputTokens != 8 || l.LastInputTokens != 12 {
		t.Errorf("usage mismatch: %+v", l)
	}
}

func TestStore_SnapshotFieldNames(t *testing.T) {
	st := NewStore(t.TempDir())
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	name, err := st.Save(testLedger().Snapshot("ocean", now))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(st.Dir, name))
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{
		`"timestamp"`, `"model"`, `"system_prompt"`, `"theme"`,
		`"total_input_tokens"`, `"total_output_tokens"`, `"total_cost"`,
		`"last_input_tokens"`, `"conversation"`,
	} {
		if !strings.Contains(string(data), field) {
			t.Errorf("snapshot missing field %s", field)
		}
	}
}

func TestStore_ListNewestFirst(t *testing.T) {
	st := NewStore(t.TempDir())
	l := testLedger()

	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	if _, err := st.Save(l.Snapshot("ocean", older)); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Save(l.Snapshot("ocean", newer)); err != nil {
		t.Fatal(err)
	}

	infos, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(infos))
	}
	if infos[0].Filename != "chat_20260201_000000.json" {
		t.Errorf("newest should list first, got %q", infos[0].Filename)
	}
	if infos[0].Model != "Opus" || infos[0].Exchanges != 1 {
		t.Errorf("unexpected summary: %+v", infos[0])
	}
}

func TestStore_ListMarksDamagedFiles(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(dir)
	if err := os.WriteFile(filepath.Join(dir, "chat_garbage.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	infos, err := st.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(infos) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(infos))
	}
	if !infos[0].Damaged {
		t.Error("unparseable file should be marked damaged")
	}
}

func TestStore_ListMissingDir(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "never-created"))
	infos, err := st.List()
	if err != nil {
		t.Fatalf("missing dir is not an error: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("expected empty list, got %d", len(infos))
	}
}

func TestStore_ExportMarkdown(t *testing.T) {
	st := NewStore(t.TempDir())
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)

	name, err := st.ExportMarkdown(testLedger(), now)
	if err != nil {
		t.Fatalf("ExportMarkdown: %v", err)
	}
	if name != "chat_20260314_150926.md" {
		t.Errorf("unexpected filename %q", name)
	}

	data, err := os.ReadFile(filepath.Join(st.Dir, name))
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)

	for _, want := range []string{
		"# Claude Chat Export",
		"**Model:** Opus",
		"**Date:** 2026-03-14 15:09",
		"**Messages:** 1 exchanges",
		"**Cost:** $0.0006",
		"**You:**",
		"**Claude:**",
		"what is Go?",
		"A programming language.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("export missing %q", want)
		}
	}
}

func TestSnapshot_RestoreAppliesDefaults(t *testing.T) {
	snap := &Snapshot{
		Conversation: []SnapshotMessage{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
		},
	}
	l := snap.Restore()
	if l.TotalCost != 0 || l.LastInputTokens != 0 || l.Persona != "" {
		t.Errorf("absent fields should restore to zero values: %+v", l)
	}
	if len(l.Turns) != 2 {
		t.Errorf("expected 2 turns, got %d", len(l.Turns))
	}
}

func TestStore_LoadMissingConversationField(t *testing.T) {
	dir := t.TempDir()
	st := NewStore(dir)
	name := "chat_20260101_000000.json"
	data := `{"timestamp": "20260101_000000", "model": "Sonnet", "theme": "ocean"}`
	if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	snap, err := st.Load(name)
	if err != nil {
		t.Fatalf("a file without a conversation is still loadable: %v", err)
	}
	l := snap.Restore()
	if len(l.Turns) != 0 {
		t.Errorf("expected empty history, got %d turns", len(l.Turns))
	}
	if l.ModelName != "Sonnet" {
		t.Errorf("present fields should still restore: %q", l.ModelName)
	}
}
