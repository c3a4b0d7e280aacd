package tui

import "github.com/charmbracelet/lipgloss"

// Theme is one color palette. Every visual surface pulls its colors from
// here so switching themes restyles the whole app at once.
type Theme struct {
	Name        string
	Description string
	Primary     lipgloss.Color
	Secondary   lipgloss.Color
	Accent      lipgloss.Color
	Success     lipgloss.Color
	Warning     lipgloss.Color
	Error       lipgloss.Color
	Muted       lipgloss.Color
	Prompt      lipgloss.Color
}

// DefaultThemeKey is the palette used on first run.
const DefaultThemeKey = "ocean"

// ThemeKeys lists the palettes in display order.
var ThemeKeys = []string{"ocean", "sunset", "forest", "neon", "monochrome", "dracula"}

var themes = map[string]Theme{
	"ocean": {
		Name:        "Ocean",
		Description: "Cool blues and cyans",
		Primary:     "#00afff",
		Secondary:   "#00d7d7",
		Accent:      "#5fd7ff",
		Success:     "#00d787",
		Warning:     "#ffd75f",
		Error:       "#ff5f5f",
		Muted:       "#8a8a8a",
		Prompt:      "#00afff",
	},
	"sunset": {
		Name:        "Sunset",
		Description: "Warm oranges and pinks",
		Primary:     "#ff875f",
		Secondary:   "#ff5f87",
		Accent:      "#ffaf5f",
		Success:     "#87d75f",
		Warning:     "#ffd700",
		Error:       "#ff005f",
		Muted:       "#949494",
		Prompt:      "#ff875f",
	},
	"forest": {
		Name:        "Forest",
		Description: "Greens and earth tones",
		Primary:     "#5faf5f",
		Secondary:   "#87af5f",
		Accent:      "#afd75f",
		Success:     "#5fd75f",
		Warning:     "#d7af5f",
		Error:       "#d75f5f",
		Muted:       "#878787",
		Prompt:      "#5faf5f",
	},
	"neon": {
		Name:        "Neon",
		Description: "Electric magentas and greens",
		Primary:     "#ff00ff",
		Secondary:   "#00ff87",
		Accent:      "#00ffff",
		Success:     "#5fff00",
		Warning:     "#ffff00",
		Error:       "#ff0055",
		Muted:       "#808080",
		Prompt:      "#ff00ff",
	},
	"monochrome": {
		Name:        "Monochrome",
		Description: "Just grays, no color",
		Primary:     "#d0d0d0",
		Secondary:   "#a8a8a8",
		Accent:      "#ffffff",
		Success:     "#d0d0d0",
		Warning:     "#a8a8a8",
		Error:       "#eeeeee",
		Muted:       "#6c6c6c",
		Prompt:      "#d0d0d0",
	},
	"dracula": {
		Name:        "Dracula",
		Description: "The classic dark palette",
		Primary:     "#bd93f9",
		Secondary:   "#ff79c6",
		Accent:      "#8be9fd",
		Success:     "#50fa7b",
		Warning:     "#f1fa8c",
		Error:       "#ff5555",
		Muted:       "#6272a4",
		Prompt:      "#bd93f9",
	},
}

// ThemeByKey looks up a palette by its config key.
func ThemeByKey(key string) (Theme, bool) {
	t, ok := themes[key]
	return t, ok
}

// DefaultTheme returns the ocean palette.
func DefaultTheme() Theme {
	return themes[DefaultThemeKey]
}
