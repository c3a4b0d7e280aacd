// Package voice adds optional spoken output for replies and a pluggable
// transcriber for spoken input. Everything degrades gracefully when no
// speech engine is installed.
package voice

import (
	"context"
	"regexp"
	"strconv"
)

// Speaker reads text aloud.
type Speaker interface {
	// Speak blocks until the utterance finishes or ctx is cancelled.
	Speak(ctx context.Context, text string) error
	// Name identifies the engine for display.
	Name() string
	// SetRate adjusts speed on a -10 (slow) to 10 (fast) scale.
	SetRate(rate int)
}

// Transcriber captures one spoken utterance and returns its text.
type Transcriber interface {
	Listen(ctx context.Context) (string, error)
}

var (
	speechMarkup   = regexp.MustCompile("[#*`_~\\[\\]()]")
	speechNewlines = regexp.MustCompile(`\n+`)
)

// CleanForSpeech strips markdown markup that an engine would read aloud
// and folds line breaks into sentence pauses.
func CleanForSpeech(text string) string {
	clean := speechMarkup.ReplaceAllString(text, "")
	return speechNewlines.ReplaceAllString(clean, ". ")
}

// RateLabel names the common speed settings for display.
func RateLabel(rate int) string {
	switch rate {
	case -2:
		return "very slow"
	case 0:
		return "default"
	case 2:
		return "normal"
	case 4:
		return "fast"
	case 6:
		return "very fast"
	}
	return strconv.Itoa(rate)
}

// ClampRate bounds a speed setting to the supported -10..10 range.
func ClampRate(rate int) int {
	if rate < -10 {
		return -10
	}
	if rate > 10 {
		return 10
	}
	return rate
}
