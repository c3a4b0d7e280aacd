package config

// ModelOption maps a display name to its Anthropic API model ID.
type ModelOption struct {
	Name        string
	ID          string
	Description string
}

// Models lists the selectable models in picker order.
var Models = []ModelOption{
	{Name: "Opus", ID: "claude-opus-4-20250514", Description: "Most powerful, slowest"},
	{Name: "Sonnet", ID: "claude-sonnet-4-20250514", Description: "Balanced speed & quality"},
	{Name: "Haiku", ID: "claude-haiku-4-5-20251001", Description: "Fastest, cheapest"},
}

// ModelByName looks up a model by display name.
func ModelByName(name string) (ModelOption, bool) {
	for _, m := range Models {
		if m.Name == name {
			return m, true
		}
	}
	return ModelOption{}, false
}

// DepthOption is a named max_tokens cap for replies.
type DepthOption struct {
	Name      string
	MaxTokens int
	BestFor   string
}

// Depths lists the response depth modes in picker order.
var Depths = []DepthOption{
	{Name: "Minimal", MaxTokens: 128, BestFor: "One-liners, yes/no, definitions"},
	{Name: "Concise", MaxTokens: 512, BestFor: "Short explanations, quick help"},
	{Name: "Standard", MaxTokens: 1024, BestFor: "Normal conversations, Q&A"},
	{Name: "Detailed", MaxTokens: 2048, BestFor: "Thorough explanations, code generation"},
	{Name: "Maximum", MaxTokens: 4096, BestFor: "Long-form content, full documents"},
}

// DepthByName looks up a response depth by name.
func DepthByName(name string) (DepthOption, bool) {
	for _, d := range Depths {
		if d.Name == name {
			return d, true
		}
	}
	return DepthOption{}, false
}

// PersonaOption is a preset system prompt. Custom entries prompt the user
// for free text instead of carrying one.
type PersonaOption struct {
	Name   string
	Prompt string
	Custom bool
}

// Personas lists the persona presets in picker order. The first entry
// clears the persona.
var Personas = []PersonaOption{
	{Name: "Reset to Default", Prompt: ""},
	{Name: "Python Tutor", Prompt: "You are a friendly Python tutor for beginners. Explain concepts simply with examples."},
	{Name: "Senior Developer", Prompt: "You are a senior software developer doing code reviews. Be thorough, suggest improvements, and catch bugs."},
	{Name: "Concise Mode", Prompt: "Be very concise. Use bullet points. No fluff. Get straight to the point."},
	{Name: "Creative Writer", Prompt: "You are a creative writer. Use vivid language, metaphors, and storytelling in your responses."},
	{Name: "Explain Like I'm 5", Prompt: "Explain everything as if I'm 5 years old. Use simple words, analogies, and fun examples."},
	{Name: "Debug Expert", Prompt: "You are a debugging expert. Analyze code carefully, find bugs, explain root causes, and suggest fixes step by step."},
	{Name: "Custom", Custom: true},
}
