package chat

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elistol/claude-chat/internal/config"
	"github.com/elistol/claude-chat/internal/tui"
	"github.com/elistol/claude-chat/internal/voice"
)

const voiceUnavailableHint = "Requires a system speech engine (say, espeak, or Windows SAPI)."

func (a *App) pickModel() {
	t := tui.Table{Title: "Pick a Model", Columns: []string{"#", "Model", "Description"}}
	for i, m := range config.Models {
		t.Rows = append(t.Rows, []string{strconv.Itoa(i + 1), m.Name, m.Description})
	}
	a.io.Table(t)

	for {
		choice, err := a.io.Ask("Enter 1-3 (or empty to cancel) > ")
		if err != nil {
			return
		}
		choice = strings.TrimSpace(choice)
		if choice == "" {
			a.io.Muted("Cancelled, keeping current model.")
			return
		}
		if idx, convErr := strconv.Atoi(choice); convErr == nil && idx >= 1 && idx <= len(config.Models) {
			a.model = config.Models[idx-1]
			a.ledger.ModelName = a.model.Name
			a.io.Success("-> Model set to: " + a.model.Name)
			a.saveConfig()
			return
		}
		a.io.ErrorLine("Invalid choice. Enter 1, 2, or 3.")
	}
}

func (a *App) pickBrain() {
	t := tui.Table{Title: "Pick Response Depth", Columns: []string{"#", "Mode", "Tokens", "Best for"}}
	for i, d := range config.Depths {
		t.Rows = append(t.Rows, []string{strconv.Itoa(i + 1), d.Name, strconv.Itoa(d.MaxTokens), d.BestFor})
	}
	a.io.Table(t)

	for {
		choice, err := a.io.Ask("Enter 1-5 (or empty to cancel) > ")
		if err != nil {
			return
		}
		choice = strings.TrimSpace(choice)
		if choice == "" {
			a.io.Muted("Cancelled.")
			return
		}
		if idx, convErr := strconv.Atoi(choice); convErr == nil && idx >= 1 && idx <= len(config.Depths) {
			a.depth = config.Depths[idx-1]
			a.io.Success(fmt.Sprintf("-> Response depth: %s (%d tokens)", a.depth.Name, a.depth.MaxTokens))
			a.saveConfig()
			return
		}
		a.io.ErrorLine("Invalid choice. Enter 1-5.")
	}
}

func (a *App) pickPersona() {
	t := tui.Table{Title: "Pick a Persona", Columns: []string{"#", "Persona", "Description"}}
	for i, p := range config.Personas {
		desc := p.Prompt
		if desc == "" && !p.Custom {
			desc = "Standard Claude, no special instructions"
		}
		if r := []rune(desc); len(r) > 50 {
			desc = string(r[:50]) + "..."
		}

		marker := ""
		if !p.Custom && p.Prompt == a.ledger.Persona {
			marker = " (current)"
		}
		t.Rows = append(t.Rows, []string{strconv.Itoa(i + 1), p.Name + marker, desc})
	}
	a.io.Table(t)

	for {
		choice, err := a.io.Ask(fmt.Sprintf("Enter 1-%d (or empty to cancel) > ", len(config.Personas)))
		if err != nil {
			return
		}
		choice = strings.TrimSpace(choice)
		if choice == "" {
			a.io.Muted("Cancelled, keeping current persona.")
			return
		}
		idx, convErr := strconv.Atoi(choice)
		if convErr != nil || idx < 1 || idx > len(config.Personas) {
			a.io.ErrorLine(fmt.Sprintf("Invalid choice. Enter 1-%d.", len(config.Personas)))
			continue
		}

		picked := config.Personas[idx-1]
		if picked.Custom {
			custom, err := a.io.Ask("Enter your custom persona > ")
			if err != nil {
				return
			}
			custom = strings.TrimSpace(custom)
			if custom == "" {
				a.io.Muted("Cancelled, keeping current persona.")
				return
			}
			a.ledger.Persona = custom
			a.io.Success("-> Persona set to: " + custom)
			return
		}

		a.ledger.Persona = picked.Prompt
		if picked.Prompt == "" {
			a.io.Warn("-> Persona reset to default")
		} else {
			a.io.Success("-> Persona set to: " + picked.Name)
		}
		return
	}
}

func (a *App) pickTheme() {
	t := tui.Table{Title: "Pick a Theme", Columns: []string{"#", "Theme", "Style"}}
	for i, key := range tui.ThemeKeys {
		th, _ := tui.ThemeByKey(key)
		marker := ""
		if key == a.themeKey {
			marker = " (current)"
		}
		t.Rows = append(t.Rows, []string{strconv.Itoa(i + 1), th.Name + marker, th.Description})
	}
	a.io.Table(t)

	for {
		choice, err := a.io.Ask(fmt.Sprintf("Enter 1-%d (or empty to cancel) > ", len(tui.ThemeKeys)))
		if err != nil {
			return
		}
		choice = strings.TrimSpace(choice)
		if choice == "" {
			a.io.Muted("Cancelled.")
			return
		}
		idx, convErr := strconv.Atoi(choice)
		if convErr != nil {
			a.io.ErrorLine("Please enter a number.")
			continue
		}
		if idx < 1 || idx > len(tui.ThemeKeys) {
			a.io.ErrorLine("Invalid choice.")
			continue
		}

		a.themeKey = tui.ThemeKeys[idx-1]
		th, _ := tui.ThemeByKey(a.themeKey)
		a.io.SetTheme(th)
		a.io.Success("-> Theme set to: " + th.Name)
		a.saveConfig()
		return
	}
}

// doVoice listens for one spoken message, sends it, and speaks the reply.
func (a *App) doVoice(ctx context.Context) {
	if a.transcriber == nil || a.speaker == nil {
		a.io.Error("Voice not available", voiceUnavailableHint)
		return
	}

	a.io.Notice(fmt.Sprintf("Voice (%s)", a.speaker.Name()))
	a.io.Notice("Listening... (speak now)")

	text, err := a.transcriber.Listen(ctx)
	if err != nil {
		a.io.Warn("Could not understand. Try again or type your message.")
		return
	}
	if strings.TrimSpace(text) == "" {
		a.io.Warn("No speech detected. Try again or type your message.")
		return
	}

	a.io.Notice("You said: " + text)
	a.speakReply = true
	a.send(ctx, text, "")
}

func (a *App) pickVoiceSettings() {
	if a.speaker == nil {
		a.io.Error("Voice not available", voiceUnavailableHint)
		return
	}

	a.io.Notice("Voice engine: " + a.speaker.Name())
	a.io.Muted(fmt.Sprintf("Current speed: %d (%s)", a.cfg.VoiceRate, voice.RateLabel(a.cfg.VoiceRate)))

	input, err := a.io.Ask("Speed (-5=slow, 0=default, 2=normal, 5=fast, or Enter to keep) > ")
	if err != nil {
		return
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return
	}

	rate, convErr := strconv.Atoi(input)
	if convErr != nil {
		a.io.ErrorLine("Invalid speed, keeping current.")
		return
	}
	rate = voice.ClampRate(rate)
	a.cfg.VoiceRate = rate
	a.speaker.SetRate(rate)
	a.io.Success("-> Speed set to: " + strconv.Itoa(rate))
	a.saveConfig()
}

// doSearch prompts for a query and routes it through the search pipeline.
func (a *App) doSearch(ctx context.Context) {
	query, err := a.io.Ask("Search > ")
	if err != nil {
		return
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	a.sendWithSearch(ctx, "search for "+query)
}

func (a *App) clearConversation() {
	removed := a.ledger.Clear()
	a.io.Success(fmt.Sprintf("-> Conversation cleared! (%d exchanges removed)", removed))
}

func (a *App) saveConversation() {
	if len(a.ledger.Turns) == 0 {
		a.io.Warn("Nothing to save - conversation is empty.")
		return
	}
	name, err := a.store.Save(a.ledger.Snapshot(a.themeKey, time.Now()))
	if err != nil {
		a.io.Error("Save failed", err.Error())
		return
	}
	a.io.Success("-> Saved to: " + name)
}

func (a *App) loadConversation() {
	infos, err := a.store.List()
	if err != nil {
		a.io.Error("Load failed", err.Error())
		return
	}
	if len(infos) == 0 {
		a.io.Warn("No saved conversations found.")
		return
	}

	t := tui.Table{Title: "Saved Conversations", Columns: []string{"#", "File", "Model", "Messages"}}
	for i, info := range infos {
		model, msgs := info.Model, strconv.Itoa(info.Exchanges)
		if info.Damaged {
			model, msgs = "?", "?"
		}
		t.Rows = append(t.Rows, []string{strconv.Itoa(i + 1), info.Filename, model, msgs})
	}
	a.io.Table(t)

	choice, err := a.io.Ask("Enter number (or empty to cancel) > ")
	if err != nil {
		return
	}
	choice = strings.TrimSpace(choice)
	if choice == "" {
		a.io.Muted("Load cancelled.")
		return
	}
	idx, convErr := strconv.Atoi(choice)
	if convErr != nil {
		a.io.ErrorLine("Please enter a number.")
		return
	}
	if idx < 1 || idx > len(infos) {
		a.io.ErrorLine("Invalid number.")
		return
	}

	filename := infos[idx-1].Filename
	snap, err := a.store.Load(filename)
	if err != nil {
		a.io.Error("Load failed", err.Error())
		return
	}

	a.ledger = snap.Restore()
	if m, ok := config.ModelByName(snap.Model); ok {
		a.model = m
	} else {
		a.ledger.ModelName = a.model.Name
	}
	if th, ok := tui.ThemeByKey(snap.Theme); ok {
		a.themeKey = snap.Theme
		a.io.SetTheme(th)
	}

	a.io.Success(fmt.Sprintf("-> Loaded %s (%d exchanges restored)", filename, a.ledger.Exchanges()))

	if last := a.ledger.LastAssistant(); last != "" {
		a.io.Muted("Last reply:")
		a.io.Markdown(last)
	}
}

func (a *App) exportConversation() {
	if len(a.ledger.Turns) == 0 {
		a.io.Warn("Nothing to export - conversation is empty.")
		return
	}
	name, err := a.store.ExportMarkdown(a.ledger, time.Now())
	if err != nil {
		a.io.Error("Export failed", err.Error())
		return
	}
	a.io.Success("-> Exported to: " + name)
}
