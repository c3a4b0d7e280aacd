package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/elistol/claude-chat/internal/chat"
	"github.com/elistol/claude-chat/internal/config"
	"github.com/elistol/claude-chat/internal/provider"
	"github.com/elistol/claude-chat/internal/tui"
	"github.com/elistol/claude-chat/internal/voice"
	"github.com/elistol/claude-chat/internal/web"
)

// runChat starts the interactive chat loop.
func runChat() error {
	cfg := initConfig()

	apiKey := config.LoadAPIKey()
	if apiKey == "" {
		printSetupPanel()
		os.Exit(1)
	}

	entries, perr := tui.LoadPrompts(promptsPath())
	completer := tui.NewPromptCompleter(entries, chat.MagicWords)

	theme, ok := tui.ThemeByKey(cfg.Theme)
	if !ok {
		theme = tui.DefaultTheme()
	}

	ui, err := tui.NewConsoleIO(theme, completer)
	if err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer ui.Close()

	if perr != nil {
		if errors.Is(perr, fs.ErrNotExist) {
			ui.Warn("Warning: prompts.json not found, autocomplete disabled.")
		} else {
			ui.Warn(fmt.Sprintf("Warning: prompts.json is invalid (%v), autocomplete disabled.", perr))
		}
	}

	app := chat.New(chat.Options{
		IO:         ui,
		Provider:   provider.NewAnthropicProvider(apiKey),
		Search:     web.NewClient(),
		Speaker:    speakerOrNil(),
		Config:     cfg,
		ConfigPath: cfgFile,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	return app.Run(ctx)
}

// speakerOrNil probes for a system TTS engine. A nil Speaker makes the
// voice commands report themselves unavailable.
func speakerOrNil() voice.Speaker {
	if s := voice.NewSystemSpeaker(); s != nil {
		return s
	}
	return nil
}

// promptsPath finds prompts.json in the working directory first, then
// next to the binary.
func promptsPath() string {
	const name = "prompts.json"
	if _, err := os.Stat(name); err == nil {
		return name
	}
	if exe, err := os.Executable(); err == nil {
		return filepath.Join(filepath.Dir(exe), name)
	}
	return name
}

// printSetupPanel explains how to configure the API key.
func printSetupPanel() {
	red := lipgloss.Color("9")
	title := lipgloss.NewStyle().Bold(true).Foreground(red)
	dim := lipgloss.NewStyle().Faint(true)
	bold := lipgloss.NewStyle().Bold(true)
	link := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

	body := title.Render("API key not found") + "\n\n" +
		dim.Render("1. Create a ") + bold.Render(".env") + dim.Render(" file in the project root") + "\n" +
		dim.Render("2. Add this line:") + "  " + bold.Render("api_key=sk-ant-your-key-here") + "\n" +
		dim.Render("3. Get a key at:") + "  " + link.Render("https://console.anthropic.com/")

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(red).
		Padding(1, 2).
		Render(body)

	fmt.Println(panel)
}
