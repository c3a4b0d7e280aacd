package chat

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/elistol/claude-chat/internal/provider"
	"github.com/elistol/claude-chat/internal/session"
	"github.com/elistol/claude-chat/internal/tui"
	"github.com/elistol/claude-chat/internal/web"
)

// baseInstructions anchor every request's system prompt. The assistant has
// to know what the app around it can do, or it gives generic answers about
// capabilities it actually has here.
const baseInstructions = "Never start your response with a title or heading. Jump straight into the answer.\n\n" +
	"IMPORTANT: You are running inside 'Claude Chat', a feature-rich terminal chatbot. " +
	"You are NOT running in a browser or API playground. " +
	"When the user asks about your capabilities, how to do something, or asks for help, " +
	"you MUST answer based on the actual features of this app listed below. " +
	"Do NOT give generic answers about what Claude can or can't do; " +
	"answer based on what THIS app supports:\n\n" +
	"FEATURES THE USER CAN USE (type these as their message):\n" +
	"- switch_model → change between Opus, Sonnet, and Haiku models\n" +
	"- brain → change response depth (128 to 4096 tokens)\n" +
	"- persona → pick a personality preset or write a custom system prompt\n" +
	"- theme → switch between 6 color themes (Ocean, Sunset, Forest, Neon, Monochrome, Dracula)\n" +
	"- voice → speak a message into the mic and hear the reply read aloud\n" +
	"- voice_settings → adjust the text-to-speech speed\n" +
	"- search → search the web via DuckDuckGo, results are fed to you as context\n" +
	"- save → save the conversation to a JSON file\n" +
	"- load → load a previously saved conversation\n" +
	"- export → export the chat as a readable Markdown file\n" +
	"- clear → clear the conversation history and start fresh\n" +
	"- help → show the help panel with all commands\n" +
	"- @file <path> → attach a local file (e.g. '@file main.go explain this'). " +
	"The file contents are sent to you so you can read, review, explain, or debug code\n" +
	"- \"\"\" → enter multi-line input mode for pasting code blocks or long text\n" +
	"- quit / exit / q → exit with a session summary showing tokens and cost\n\n" +
	"The user's preferences (model, brain mode, theme) are saved automatically between sessions. " +
	"When asked about files, sharing code, uploading, and the like, always mention the @file command. " +
	"When asked about searching, always mention the search command or trigger phrases."

// send runs one full exchange: trim, append the user turn, stream the
// reply, account usage, commit. override, when non-empty, is what the API
// sees in place of the stored message (file or search context attached).
func (a *App) send(ctx context.Context, stored, override string) {
	if trimmed := a.ledger.Trim(a.cfg.ContextLimit); trimmed > 0 {
		a.io.Warn(fmt.Sprintf("Memory trimmed: removed %d oldest exchanges to stay within context limit.", trimmed))
	}
	a.ledger.Append(provider.RoleUser, stored)

	req := &provider.ChatRequest{
		Model:     a.model.ID,
		Messages:  session.Compose(a.ledger.Turns, override),
		System:    a.systemPrompt(),
		MaxTokens: a.depth.MaxTokens,
	}

	events, err := a.provider.Chat(ctx, req)
	if err != nil {
		a.failExchange(err)
		return
	}

	a.io.ReplyStart()
	var reply strings.Builder
	var usage *provider.Usage
	var streamErr error

	for ev := range events {
		switch ev.Type {
		case provider.EventTextDelta:
			reply.WriteString(ev.TextDelta)
			a.io.TextDelta(ev.TextDelta)
		case provider.EventDone:
			usage = ev.Usage
		case provider.EventError:
			streamErr = ev.Error
		}
	}

	if streamErr != nil {
		a.io.TextDone(reply.String())
		if errors.Is(streamErr, context.Canceled) {
			a.ledger.PopLast()
			a.speakReply = false
			return
		}
		a.failExchange(streamErr)
		return
	}

	full := reply.String()
	a.io.TextDone(full)
	a.ledger.Append(provider.RoleAssistant, full)

	if usage != nil {
		cost := Cost(a.model.Name, usage.InputTokens, usage.OutputTokens)
		a.ledger.AddUsage(*usage, cost)
		a.io.Usage(tui.UsageReport{
			Model:         a.model.Name,
			InputTokens:   usage.InputTokens,
			OutputTokens:  usage.OutputTokens,
			Cost:          cost,
			SessionInput:  a.ledger.TotalInputTokens,
			SessionOutput: a.ledger.TotalOutputTokens,
			SessionCost:   a.ledger.TotalCost,
		})
	}

	if a.speakReply && a.speaker != nil {
		if err := a.speaker.Speak(ctx, full); err != nil {
			a.io.Warn("Could not speak the reply: " + err.Error())
		}
	}
	a.speakReply = false
}

// failExchange reports the classified error and rolls the user turn back
// so a failed send never poisons the history.
func (a *App) failExchange(err error) {
	apiErr := provider.Classify(err)
	a.io.Error(apiErr.Title(), apiErr.Hint())
	a.ledger.PopLast()
	a.speakReply = false
}

func (a *App) systemPrompt() string {
	if a.ledger.Persona == "" {
		return baseInstructions
	}
	return baseInstructions + "\n\n" + a.ledger.Persona
}

// sendWithFiles resolves @file references and sends the message with the
// file contents attached as context. Returns false when no paths could be
// extracted, so the message falls through to normal handling.
func (a *App) sendWithFiles(ctx context.Context, userMsg string) bool {
	paths, clean := ExtractFileRefs(userMsg)
	if len(paths) == 0 {
		return false
	}

	var blocks []string
	for _, res := range ReadFiles(a.root, paths) {
		if res.Err != nil {
			a.io.Error(res.Err.Title, res.Err.Hint)
			continue
		}
		a.io.Notice(fmt.Sprintf("Loaded: %s (%d lines)", res.Path, res.Lines))
		blocks = append(blocks, res.Block)
	}

	if len(blocks) == 0 {
		if clean != "" {
			a.send(ctx, clean, "")
		} else {
			a.io.Warn("No files loaded and no message to send.")
		}
		return true
	}

	stored := clean
	if stored == "" {
		stored = userMsg
	}
	a.send(ctx, stored, session.Augment(session.JoinContext(blocks), clean))
	return true
}

// sendWithSearch runs the message through web search first. Search
// failures degrade to a normal send.
func (a *App) sendWithSearch(ctx context.Context, userMsg string) {
	query := web.ExtractQuery(userMsg)
	a.io.Notice("Searching the web for: " + query)

	results, err := a.search.Search(ctx, query, 0)
	if err != nil {
		a.io.ErrorLine("Search failed: " + err.Error())
		a.send(ctx, userMsg, "")
		return
	}
	if len(results) == 0 {
		a.io.Warn("No results found.")
		a.send(ctx, userMsg, "")
		return
	}

	a.io.Table(searchTable(results))
	block := web.BuildContext(query, results)
	a.send(ctx, userMsg, session.Augment(block, userMsg))
}

func searchTable(results []web.Result) tui.Table {
	t := tui.Table{
		Title:   fmt.Sprintf("Web Results (%d)", len(results)),
		Columns: []string{"#", "Title", "Source"},
	}
	for i, r := range results {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(i + 1),
			truncateRunes(r.Title, 40),
			truncateRunes(web.Domain(r.URL), 25),
		})
	}
	return t
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
