// Package tui renders the chat surface: themed console output, the input
// prompt, tables, and the banner. The chat loop talks to the IO interface
// so tests can swap in a recorder.
package tui

// IO is every visual event the chat loop can emit plus its two ways of
// reading input.
type IO interface {
	// ReadInput blocks for one line at the main prompt, with history and
	// tab completion. It returns io.EOF when the user leaves with Ctrl-D
	// or Ctrl-C.
	ReadInput() (string, error)
	// Ask blocks for one line at a transient sub-prompt (pickers,
	// confirmations). EOF handling matches ReadInput.
	Ask(prompt string) (string, error)

	// ReplyStart announces the assistant is about to stream a reply.
	ReplyStart()
	// TextDelta renders one streamed chunk.
	TextDelta(delta string)
	// TextDone closes out a streamed reply.
	TextDone(full string)

	Notice(text string)
	Muted(text string)
	Success(text string)
	Warn(text string)
	ErrorLine(text string)
	// Error renders a titled error panel with a what-to-do hint.
	Error(title, hint string)

	Status(line StatusLine)
	Usage(report UsageReport)
	Table(t Table)
	Summary(s SessionSummary)

	Banner()
	Help()
	// Rule draws a divider between exchanges.
	Rule()
	// Markdown renders complete markdown text, used for restored replies
	// and one-shot output.
	Markdown(text string)

	// SetTheme restyles all future output.
	SetTheme(theme Theme)
}

// StatusLine is the settings readout printed after every action.
type StatusLine struct {
	Model     string
	Depth     string
	MaxTokens int
	Persona   string
	Theme     string
}

// UsageReport backs the post-exchange usage table: the exchange that just
// finished plus the running session totals.
type UsageReport struct {
	Model         string
	InputTokens   int
	OutputTokens  int
	Cost          float64
	SessionInput  int
	SessionOutput int
	SessionCost   float64
}

// Table is a titled grid used by the pickers and listings.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// SessionSummary is the exit recap.
type SessionSummary struct {
	Exchanges    int
	Model        string
	Theme        string
	InputTokens  int
	OutputTokens int
	TotalCost    float64
}
