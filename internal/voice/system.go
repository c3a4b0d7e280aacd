package voice

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// ttsEngines are probed in order; the first binary found on PATH wins.
var ttsEngines = []string{"say", "espeak-ng", "espeak", "powershell"}

// SystemSpeaker shells out to whatever text-to-speech engine the host
// provides: say on macOS, espeak on Linux, SAPI through PowerShell on
// Windows.
type SystemSpeaker struct {
	bin  string
	path string
	rate int
}

// NewSystemSpeaker probes for a speech engine. It returns nil when none
// is installed, which callers treat as voice being unavailable.
func NewSystemSpeaker() *SystemSpeaker {
	for _, bin := range ttsEngines {
		if path, err := exec.LookPath(bin); err == nil {
			return &SystemSpeaker{bin: bin, path: path, rate: 2}
		}
	}
	return nil
}

func (s *SystemSpeaker) Name() string {
	switch s.bin {
	case "say":
		return "macOS say"
	case "powershell":
		return "Windows SAPI"
	}
	return s.bin
}

func (s *SystemSpeaker) SetRate(rate int) {
	s.rate = ClampRate(rate)
}

// Speak runs the engine synchronously on the cleaned text.
func (s *SystemSpeaker) Speak(ctx context.Context, text string) error {
	clean := CleanForSpeech(text)
	if strings.TrimSpace(clean) == "" {
		return nil
	}
	cmd := exec.CommandContext(ctx, s.path, s.args(clean)...)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("speaking with %s: %w", s.bin, err)
	}
	return nil
}

func (s *SystemSpeaker) args(text string) []string {
	switch s.bin {
	case "say":
		return []string{"-r", strconv.Itoa(wordsPerMinute(s.rate)), text}
	case "espeak", "espeak-ng":
		return []string{"-s", strconv.Itoa(wordsPerMinute(s.rate)), text}
	case "powershell":
		script := fmt.Sprintf(
			"Add-Type -AssemblyName System.Speech; $s = New-Object System.Speech.Synthesis.SpeechSynthesizer; $s.Rate = %d; $s.Speak(%s)",
			s.rate, psQuote(text))
		return []string{"-NoProfile", "-Command", script}
	}
	return nil
}

// wordsPerMinute maps the -10..10 scale onto engine speech rates, with 0
// at the usual 175 wpm default.
func wordsPerMinute(rate int) int {
	return 175 + rate*12
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
