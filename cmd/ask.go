package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/glamour"
	"github.com/elistol/claude-chat/internal/chat"
	"github.com/elistol/claude-chat/internal/config"
	"github.com/elistol/claude-chat/internal/provider"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question and exit",
		Example: `  claude-chat ask "what does errors.Is do?"
  claude-chat ask -m Haiku "give me a commit message for a typo fix"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(strings.Join(args, " "))
		},
	}
}

// runAsk sends one question and prints the reply. On a terminal the full
// reply is rendered as Markdown; piped output streams plain text as it
// arrives.
func runAsk(question string) error {
	cfg := initConfig()

	apiKey := config.LoadAPIKey()
	if apiKey == "" {
		printSetupPanel()
		os.Exit(1)
	}

	model, _ := config.ModelByName(cfg.Model)
	depth, _ := config.DepthByName(cfg.Depth)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	p := provider.NewAnthropicProvider(apiKey)
	events, err := p.Chat(ctx, &provider.ChatRequest{
		Model:     model.ID,
		Messages:  []provider.Message{{Role: provider.RoleUser, Content: question}},
		MaxTokens: depth.MaxTokens,
	})
	if err != nil {
		return askError(err)
	}

	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	var reply strings.Builder
	var usage *provider.Usage
	for ev := range events {
		switch ev.Type {
		case provider.EventTextDelta:
			if isTTY {
				reply.WriteString(ev.TextDelta)
			} else {
				fmt.Print(ev.TextDelta)
			}
		case provider.EventDone:
			usage = ev.Usage
		case provider.EventError:
			return askError(ev.Error)
		}
	}

	if isTTY {
		fmt.Println(renderMarkdown(reply.String()))
	} else {
		fmt.Println()
	}

	if usage != nil && isTTY {
		cost := chat.Cost(model.Name, usage.InputTokens, usage.OutputTokens)
		fmt.Fprintf(os.Stderr, "(%s: %d in, %d out, $%.4f)\n",
			model.Name, usage.InputTokens, usage.OutputTokens, cost)
	}
	return nil
}

func askError(err error) error {
	apiErr := provider.Classify(err)
	return fmt.Errorf("%s. %s", apiErr.Title(), apiErr.Hint())
}

func renderMarkdown(text string) string {
	width := 100
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < width {
		width = w
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}
