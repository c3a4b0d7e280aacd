package chat

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/elistol/claude-chat/internal/config"
	"github.com/elistol/claude-chat/internal/provider"
	"github.com/elistol/claude-chat/internal/session"
	"github.com/elistol/claude-chat/internal/tui"
	"github.com/elistol/claude-chat/internal/voice"
	"github.com/elistol/claude-chat/internal/web"
)

// MagicWords are the command names the loop intercepts before anything is
// sent to the model. The completer offers them alongside canned prompts.
var MagicWords = []string{
	"switch_model", "brain", "persona", "theme",
	"voice", "voice_settings", "search",
	"clear", "save", "load", "export", "help",
	"quit", "exit",
}

// Searcher is the web search dependency, satisfied by *web.Client.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]web.Result, error)
}

// Options collects the collaborators for New. Speaker and Transcriber may
// be nil, which makes the voice commands report themselves unavailable.
type Options struct {
	IO          tui.IO
	Provider    provider.Provider
	Search      Searcher
	Speaker     voice.Speaker
	Transcriber voice.Transcriber
	Config      *config.Config
	ConfigPath  string
}

// App wires the chat client together and runs the interactive loop.
type App struct {
	io          tui.IO
	provider    provider.Provider
	search      Searcher
	speaker     voice.Speaker
	transcriber voice.Transcriber

	cfg        *config.Config
	configPath string

	ledger *session.Ledger
	store  *session.Store

	model    config.ModelOption
	depth    config.DepthOption
	themeKey string

	// root confines @file attachments; the working directory at startup.
	root string

	// speakReply makes the next successful reply spoken aloud, then resets.
	speakReply bool
}

// New builds the app from a loaded config. The config is assumed
// normalized, so the model, depth, and theme lookups always resolve.
func New(opts Options) *App {
	a := &App{
		io:          opts.IO,
		provider:    opts.Provider,
		search:      opts.Search,
		speaker:     opts.Speaker,
		transcriber: opts.Transcriber,
		cfg:         opts.Config,
		configPath:  opts.ConfigPath,
		themeKey:    opts.Config.Theme,
	}
	a.model, _ = config.ModelByName(opts.Config.Model)
	a.depth, _ = config.DepthByName(opts.Config.Depth)
	a.ledger = session.New(a.model.Name)
	a.store = session.NewStore(opts.Config.SaveDir)
	if a.root, _ = os.Getwd(); a.root == "" {
		a.root = "."
	}
	if a.speaker != nil {
		a.speaker.SetRate(opts.Config.VoiceRate)
	}
	return a
}

// Run starts the interactive loop and returns when the user leaves.
func (a *App) Run(ctx context.Context) error {
	a.io.Banner()
	a.io.Help()
	a.printStatus()
	a.io.Rule()

	for {
		if ctx.Err() != nil {
			return a.leave(io.EOF)
		}

		line, err := a.io.ReadInput()
		if err != nil {
			return a.leave(err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.TrimSpace(line) == `"""` {
			line, err = a.readMultiline()
			if err != nil {
				return a.leave(err)
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
		}

		if !a.handleInput(ctx, line) {
			return nil
		}
		a.io.Rule()
	}
}

// leave shows the session summary on a clean EOF or interrupt and passes
// real read errors through.
func (a *App) leave(err error) error {
	if errors.Is(err, io.EOF) {
		a.io.Summary(a.summary())
		return nil
	}
	return err
}

// readMultiline collects lines until a closing """ marker.
func (a *App) readMultiline() (string, error) {
	a.io.Muted(`Multi-line mode. Type """ on its own line to send.`)
	var lines []string
	for {
		line, err := a.io.Ask("... > ")
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(line) == `"""` {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n"), nil
}

// handleInput decides what to do with one line. It returns false when the
// user asked to quit.
func (a *App) handleInput(ctx context.Context, userMsg string) bool {
	stripped := strings.ToLower(strings.TrimSpace(userMsg))

	switch stripped {
	case "quit", "exit", "q":
		a.io.Summary(a.summary())
		return false
	}

	if a.runMagic(ctx, stripped) {
		a.printStatus()
		return true
	}

	if HasFileRefs(userMsg) && a.sendWithFiles(ctx, userMsg) {
		a.printStatus()
		return true
	}

	if web.HasSearchIntent(userMsg) {
		a.sendWithSearch(ctx, userMsg)
	} else {
		a.send(ctx, userMsg, "")
	}
	a.printStatus()
	return true
}

// runMagic dispatches a command word. It reports whether the word was one.
func (a *App) runMagic(ctx context.Context, word string) bool {
	switch word {
	case "switch_model":
		a.pickModel()
	case "brain":
		a.pickBrain()
	case "persona":
		a.pickPersona()
	case "theme":
		a.pickTheme()
	case "voice":
		a.doVoice(ctx)
	case "voice_settings":
		a.pickVoiceSettings()
	case "search":
		a.doSearch(ctx)
	case "clear":
		a.clearConversation()
	case "save":
		a.saveConversation()
	case "load":
		a.loadConversation()
	case "export":
		a.exportConversation()
	case "help":
		a.io.Help()
	default:
		return false
	}
	return true
}

func (a *App) printStatus() {
	a.io.Status(tui.StatusLine{
		Model:     a.model.Name,
		Depth:     a.depth.Name,
		MaxTokens: a.depth.MaxTokens,
		Persona:   a.ledger.Persona,
		Theme:     a.themeName(),
	})
}

func (a *App) summary() tui.SessionSummary {
	return tui.SessionSummary{
		Exchanges:    a.ledger.Exchanges(),
		Model:        a.model.Name,
		Theme:        a.themeName(),
		InputTokens:  a.ledger.TotalInputTokens,
		OutputTokens: a.ledger.TotalOutputTokens,
		TotalCost:    a.ledger.TotalCost,
	}
}

func (a *App) themeName() string {
	if th, ok := tui.ThemeByKey(a.themeKey); ok {
		return th.Name
	}
	return a.themeKey
}

// saveConfig persists the current model, depth, theme, and voice rate.
func (a *App) saveConfig() {
	a.cfg.Model = a.model.Name
	a.cfg.Depth = a.depth.Name
	a.cfg.Theme = a.themeKey
	if err := a.cfg.Save(a.configPath); err != nil {
		a.io.Warn("Could not save preferences: " + err.Error())
	}
}
