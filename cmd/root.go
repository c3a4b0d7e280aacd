package cmd

import (
	"fmt"
	"os"

	"github.com/elistol/claude-chat/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	modelFlag string
)

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	rootCmd := &cobra.Command{
		Use:   "claude-chat",
		Short: "Chat with Claude in your terminal",
		Long: "claude-chat is an interactive terminal client for the Anthropic API:\n" +
			"streaming replies, personas, themes, web search, file attachments,\n" +
			"voice, and conversation save/load.",
		// Running claude-chat with no subcommand starts the chat loop.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default ~/.config/claude-chat/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&modelFlag, "model", "m", "", "override model (Opus, Sonnet, or Haiku)")

	rootCmd.AddCommand(newAskCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// initConfig loads configuration, applying CLI flag overrides.
func initConfig() *config.Config {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if modelFlag != "" {
		if _, ok := config.ModelByName(modelFlag); !ok {
			fmt.Fprintf(os.Stderr, "Unknown model %q. Choose Opus, Sonnet, or Haiku.\n", modelFlag)
			os.Exit(1)
		}
		cfg.Model = modelFlag
	}

	return cfg
}
