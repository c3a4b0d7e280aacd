package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/elistol/claude-chat/internal/provider"
)

// snapshotTimeFormat names snapshot files chronologically, so a reverse
// lexical sort lists newest first.
const snapshotTimeFormat = "20060102_150405"

// Snapshot is the on-disk form of a conversation.
type Snapshot struct {
	Timestamp         string            `json:"timestamp"`
	Model             string            `json:"model"`
	SystemPrompt      string            `json:"system_prompt"`
	Theme             string            `json:"theme"`
	TotalInputTokens  int               `json:"total_input_tokens"`
	TotalOutputTokens int               `json:"total_output_tokens"`
	TotalCost         float64           `json:"total_cost"`
	LastInputTokens   int               `json:"last_input_tokens"`
	Conversation      []SnapshotMessage `json:"conversation"`
}

// SnapshotMessage is one stored turn.
type SnapshotMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Snapshot captures the ledger and theme for persistence.
func (l *Ledger) Snapshot(themeKey string, now time.Time) *Snapshot {
	conv := make([]SnapshotMessage, len(l.Turns))
	for i, t := range l.Turns {
		conv[i] = SnapshotMessage{Role: string(t.Role), Content: t.Content}
	}
	return &Snapshot{
		Timestamp:         now.Format(snapshotTimeFormat),
		Model:             l.ModelName,
		SystemPrompt:      l.Persona,
		Theme:             themeKey,
		TotalInputTokens:  l.TotalInputTokens,
		TotalOutputTokens: l.TotalOutputTokens,
		TotalCost:         l.TotalCost,
		LastInputTokens:   l.LastInputTokens,
		Conversation:      conv,
	}
}

// Restore rebuilds a ledger from the snapshot. Absent fields come back as
// zero values; the model name is copied as-is and callers decide whether it
// still maps to a known model.
func (s *Snapshot) Restore() *Ledger {
	l := &Ledger{
		Persona:           s.SystemPrompt,
		ModelName:         s.Model,
		TotalInputTokens:  s.TotalInputTokens,
		TotalOutputTokens: s.TotalOutputTokens,
		TotalCost:         s.TotalCost,
		LastInputTokens:   s.LastInputTokens,
	}
	for _, m := range s.Conversation {
		l.Turns = append(l.Turns, provider.Message{Role: provider.Role(m.Role), Content: m.Content})
	}
	return l
}

// Store reads and writes conversation snapshots under a single directory.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Save writes the snapshot as chat_<timestamp>.json, creating the directory
// if needed. Returns the filename.
func (st *Store) Save(snap *Snapshot) (string, error) {
	if err := os.MkdirAll(st.Dir, 0755); err != nil {
		return "", fmt.Errorf("create save dir: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	name := "chat_" + snap.Timestamp + ".json"
	if err := os.WriteFile(filepath.Join(st.Dir, name), data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return name, nil
}

// Load reads one snapshot by filename.
func (st *Store) Load(filename string) (*Snapshot, error) {
	data, err := os.ReadFile(filepath.Join(st.Dir, filename))
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", filename, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot %s: %w", filename, err)
	}
	return &snap, nil
}

// SavedInfo summarizes one snapshot file for the load picker.
type SavedInfo struct {
	Filename  string
	Model     string
	Exchanges int
	Damaged   bool // file exists but cannot be parsed
}

// List returns the saved snapshots, newest first. Unreadable files are
// listed as damaged rather than dropped, so the user can still see them.
// A missing directory is an empty list, not an error.
func (st *Store) List() ([]SavedInfo, error) {
	entries, err := os.ReadDir(st.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	infos := make([]SavedInfo, 0, len(names))
	for _, name := range names {
		info := SavedInfo{Filename: name}
		snap, err := st.Load(name)
		if err != nil {
			info.Damaged = true
		} else {
			info.Model = snap.Model
			if info.Model == "" {
				info.Model = "Unknown"
			}
			info.Exchanges = len(snap.Conversation) / 2
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// ExportMarkdown writes the conversation as a readable transcript named
// chat_<timestamp>.md. Returns the filename.
func (st *Store) ExportMarkdown(l *Ledger, now time.Time) (string, error) {
	if err := os.MkdirAll(st.Dir, 0755); err != nil {
		return "", fmt.Errorf("create save dir: %w", err)
	}

	lines := []string{
		"# Claude Chat Export",
		"",
		fmt.Sprintf("**Model:** %s  ", l.ModelName),
		fmt.Sprintf("**Date:** %s  ", now.Format("2006-01-02 15:04")),
		fmt.Sprintf("**Messages:** %d exchanges  ", l.Exchanges()),
		fmt.Sprintf("**Cost:** $%.4f", l.TotalCost),
		"",
		"---",
		"",
	}
	for _, turn := range l.Turns {
		label := "**Claude:**"
		if turn.Role == provider.RoleUser {
			label = "**You:**"
		}
		lines = append(lines, label, "", turn.Content, "", "---", "")
	}

	name := "chat_" + now.Format(snapshotTimeFormat) + ".md"
	if err := os.WriteFile(filepath.Join(st.Dir, name), []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return name, nil
}
