package tui

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// PromptEntry is one canned prompt from prompts.json.
type PromptEntry struct {
	Text string `json:"text"`
	Desc string `json:"desc"`
}

// LoadPrompts reads prompts.json, a map of category name to entries, and
// flattens it with categories in alphabetical order so completion results
// are stable.
func LoadPrompts(path string) ([]PromptEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts: %w", err)
	}

	var byCategory map[string][]PromptEntry
	if err := json.Unmarshal(data, &byCategory); err != nil {
		return nil, fmt.Errorf("parse prompts: %w", err)
	}

	categories := make([]string, 0, len(byCategory))
	for name := range byCategory {
		categories = append(categories, name)
	}
	sort.Strings(categories)

	var entries []PromptEntry
	for _, name := range categories {
		entries = append(entries, byCategory[name]...)
	}
	return entries, nil
}

// PromptCompleter completes against the full line typed so far, so
// multi-word phrases like "Write a function" complete properly. It merges
// canned prompts with the command names.
type PromptCompleter struct {
	items []string
}

// NewPromptCompleter builds a completer from canned prompts plus command
// names. Either list may be empty.
func NewPromptCompleter(entries []PromptEntry, commands []string) *PromptCompleter {
	items := make([]string, 0, len(entries)+len(commands))
	for _, e := range entries {
		items = append(items, e.Text)
	}
	items = append(items, commands...)
	return &PromptCompleter{items: items}
}

// Do implements readline.AutoCompleter. Candidates are returned as the
// suffix remaining after what was typed.
func (p *PromptCompleter) Do(line []rune, pos int) ([][]rune, int) {
	typed := strings.ToLower(string(line[:pos]))
	if typed == "" {
		return nil, 0
	}

	var out [][]rune
	for _, item := range p.items {
		runes := []rune(item)
		if len(runes) < pos {
			continue
		}
		if strings.HasPrefix(strings.ToLower(item), typed) {
			out = append(out, runes[pos:])
		}
	}
	return out, pos
}
