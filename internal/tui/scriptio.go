package tui

import (
	"fmt"
	"io"
	"strings"
)

// ScriptIO is a test double: it replays scripted input lines and records
// every visual event so loop tests can assert on what was rendered.
type ScriptIO struct {
	Inputs []string
	Events []string
	Theme  Theme

	stream strings.Builder
}

var _ IO = (*ScriptIO)(nil)

// NewScriptIO queues the given input lines. When they run out, reads
// return io.EOF like a closed terminal.
func NewScriptIO(inputs ...string) *ScriptIO {
	return &ScriptIO{Inputs: inputs}
}

func (s *ScriptIO) ReadInput() (string, error) {
	return s.next()
}

func (s *ScriptIO) Ask(prompt string) (string, error) {
	s.record("ask", prompt)
	return s.next()
}

func (s *ScriptIO) next() (string, error) {
	if len(s.Inputs) == 0 {
		return "", io.EOF
	}
	line := s.Inputs[0]
	s.Inputs = s.Inputs[1:]
	return line, nil
}

func (s *ScriptIO) ReplyStart() {
	s.record("reply-start", "")
}

func (s *ScriptIO) TextDelta(delta string) {
	s.stream.WriteString(delta)
}

func (s *ScriptIO) TextDone(full string) {
	s.record("text-done", full)
}

func (s *ScriptIO) Notice(text string)    { s.record("notice", text) }
func (s *ScriptIO) Muted(text string)     { s.record("muted", text) }
func (s *ScriptIO) Success(text string)   { s.record("success", text) }
func (s *ScriptIO) Warn(text string)      { s.record("warn", text) }
func (s *ScriptIO) ErrorLine(text string) { s.record("error-line", text) }

func (s *ScriptIO) Error(title, hint string) {
	s.record("error", title+" | "+hint)
}

func (s *ScriptIO) Status(line StatusLine) {
	s.record("status", fmt.Sprintf("%s/%s/%s/%s", line.Model, line.Depth, line.Persona, line.Theme))
}

func (s *ScriptIO) Usage(r UsageReport) {
	s.record("usage", fmt.Sprintf("%d in %d out $%.4f", r.InputTokens, r.OutputTokens, r.SessionCost))
}

func (s *ScriptIO) Table(t Table) {
	detail := t.Title
	for _, row := range t.Rows {
		detail += " | " + strings.Join(row, " ")
	}
	s.record("table", detail)
}

func (s *ScriptIO) Summary(sum SessionSummary) {
	s.record("summary", fmt.Sprintf("%d exchanges $%.4f", sum.Exchanges, sum.TotalCost))
}

func (s *ScriptIO) Banner() { s.record("banner", "") }
func (s *ScriptIO) Help()   { s.record("help", "") }
func (s *ScriptIO) Rule()   {}

func (s *ScriptIO) Markdown(text string) {
	s.record("markdown", text)
}

func (s *ScriptIO) SetTheme(theme Theme) {
	s.Theme = theme
}

func (s *ScriptIO) record(kind, detail string) {
	s.Events = append(s.Events, kind+": "+detail)
}

// Has reports whether any recorded event of the kind contains substr.
func (s *ScriptIO) Has(kind, substr string) bool {
	prefix := kind + ": "
	for _, e := range s.Events {
		if strings.HasPrefix(e, prefix) && strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

// Streamed returns every delta received so far.
func (s *ScriptIO) Streamed() string {
	return s.stream.String()
}
