// Package config loads and persists claude-chat preferences, and holds the
// static option tables (models, response depths, personas) the pickers
// present. Sources, highest priority first:
//  1. Environment variables (CLAUDE_CHAT_MODEL, CLAUDE_CHAT_THEME)
//  2. ~/.config/claude-chat/config.yaml
//  3. Built-in defaults
//
// Unlike most config layers this one is written back: model, depth, and
// theme choices persist across sessions.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the persisted preference set.
type Config struct {
	// Model is the display name of the active model (Opus, Sonnet, Haiku).
	Model string `yaml:"model"`

	// Depth is the response depth name; it selects the max_tokens cap.
	Depth string `yaml:"depth"`

	// Theme is the color theme key (ocean, sunset, ...).
	Theme string `yaml:"theme"`

	// ContextLimit is the token ceiling that triggers history trimming.
	// The 200K models get headroom below their real window.
	ContextLimit int `yaml:"context_limit"`

	// VoiceRate is the TTS speaking rate, -10 (slow) to 10 (fast).
	VoiceRate int `yaml:"voice_rate"`

	// SaveDir is where conversation snapshots and exports are written.
	SaveDir string `yaml:"save_dir"`
}

// DefaultConfig returns the built-in defaults: Sonnet, Standard depth,
// ocean theme.
func DefaultConfig() *Config {
	return &Config{
		Model:        "Sonnet",
		Depth:        "Standard",
		Theme:        "ocean",
		ContextLimit: 180000,
		VoiceRate:    2,
		SaveDir:      "saved_chats",
	}
}

// DefaultPath returns the canonical config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "claude-chat", "config.yaml"), nil
}

// Load reads the config file, merging environment overrides. A missing file
// yields the defaults; a malformed file is an error.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		if p, err := DefaultPath(); err == nil {
			configPath = p
		}
	}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	}

	applyEnvOverrides(cfg)
	cfg.normalize()

	return cfg, nil
}

// Save writes the config to configPath (the default path when empty),
// creating the directory if needed.
func (c *Config) Save(configPath string) error {
	if configPath == "" {
		p, err := DefaultPath()
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
		configPath = p
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(configPath, data, 0644)
}

// normalize replaces out-of-table values with defaults so a hand-edited
// file cannot leave the app with an unknown model or depth.
func (c *Config) normalize() {
	if _, ok := ModelByName(c.Model); !ok {
		c.Model = "Sonnet"
	}
	if _, ok := DepthByName(c.Depth); !ok {
		c.Depth = "Standard"
	}
	if c.ContextLimit <= 0 {
		c.ContextLimit = 180000
	}
	if c.VoiceRate < -10 {
		c.VoiceRate = -10
	}
	if c.VoiceRate > 10 {
		c.VoiceRate = 10
	}
	if c.SaveDir == "" {
		c.SaveDir = "saved_chats"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("CLAUDE_CHAT_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("CLAUDE_CHAT_THEME"); v != "" {
		cfg.Theme = v
	}
}

// LoadAPIKey reads the Anthropic API key from the environment, loading a
// .env file from the working directory first when one exists. The .env
// variable is named api_key; ANTHROPIC_API_KEY also works. Returns "" when
// no key is configured.
func LoadAPIKey() string {
	_ = godotenv.Load()
	if v := os.Getenv("api_key"); v != "" {
		return v
	}
	return os.Getenv("ANTHROPIC_API_KEY")
}
