package tui

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/chzyer/readline"
	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

// claudeOrange is the brand color for the banner, independent of theme.
const claudeOrange = lipgloss.Color("#E07A5F")

// errorRed keeps error panels red in every theme.
const errorRed = lipgloss.Color("9")

const mainPrompt = "You > "

var bannerLines = []string{
	`   ██████╗██╗      █████╗ ██╗   ██╗██████╗ ███████╗`,
	`  ██╔════╝██║     ██╔══██╗██║   ██║██╔══██╗██╔════╝`,
	`  ██║     ██║     ███████║██║   ██║██║  ██║█████╗  `,
	`  ██║     ██║     ██╔══██║██║   ██║██║  ██║██╔══╝  `,
	`  ╚██████╗███████╗██║  ██║╚██████╔╝██████╔╝███████╗`,
	`   ╚═════╝╚══════╝╚═╝  ╚═╝ ╚═════╝ ╚═════╝ ╚══════╝`,
	``,
	`    ██████╗██╗  ██╗ █████╗ ████████╗`,
	`   ██╔════╝██║  ██║██╔══██╗╚══██╔══╝`,
	`   ██║     ███████║███████║   ██║   `,
	`   ██║     ██╔══██║██╔══██║   ██║   `,
	`   ╚██████╗██║  ██║██║  ██║   ██║   `,
	`    ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝   `,
}

var helpEntries = []struct{ name, desc string }{
	{"switch_model", "change the AI model"},
	{"brain", "change response depth"},
	{"persona", "set Claude's personality"},
	{"theme", "change color theme"},
	{"voice", "speak one message & hear reply"},
	{"voice_settings", "pick voice & speed"},
	{"search", "search the web & ask Claude"},
	{"clear", "start fresh conversation"},
	{"save", "save conversation to file"},
	{"load", "load a saved conversation"},
	{"export", "export chat as markdown"},
	{"help", "show this help panel"},
	{"@file <path>", "send a file to Claude"},
	{`"""`, "multi-line input mode"},
	{"quit/exit/q", "exit the chat"},
}

// depthColors shade the brain mode by how expensive it is.
var depthColors = map[int]lipgloss.Color{
	128:  "2",
	512:  "6",
	1024: "4",
	2048: "5",
	4096: "9",
}

// ConsoleIO renders to a real terminal: lipgloss for panels and tables,
// glamour for markdown, readline for the prompt.
type ConsoleIO struct {
	out      io.Writer
	theme    Theme
	rl       *readline.Instance
	markdown *glamour.TermRenderer
}

var _ IO = (*ConsoleIO)(nil)

// NewConsoleIO builds the terminal renderer. completer may be nil to run
// without tab completion.
func NewConsoleIO(theme Theme, completer readline.AutoCompleter) (*ConsoleIO, error) {
	c := &ConsoleIO{out: os.Stdout, theme: theme}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          c.promptStyle(mainPrompt),
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		HistoryLimit:    500,
	})
	if err != nil {
		return nil, fmt.Errorf("init readline: %w", err)
	}
	c.rl = rl

	wrap := 100
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 && w < wrap+4 {
		wrap = w - 4
	}
	styleOpt := glamour.WithAutoStyle()
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		styleOpt = glamour.WithStandardStyle("notty")
	}
	md, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(wrap))
	if err != nil {
		return nil, fmt.Errorf("init markdown renderer: %w", err)
	}
	c.markdown = md

	return c, nil
}

// Close releases the readline terminal state.
func (c *ConsoleIO) Close() error {
	return c.rl.Close()
}

func (c *ConsoleIO) ReadInput() (string, error) {
	c.rl.SetPrompt(c.promptStyle(mainPrompt))
	return c.readLine()
}

func (c *ConsoleIO) Ask(prompt string) (string, error) {
	c.rl.SetPrompt(c.promptStyle(prompt))
	defer c.rl.SetPrompt(c.promptStyle(mainPrompt))
	return c.readLine()
}

// readLine folds Ctrl-C into io.EOF so the loop has a single leave signal.
func (c *ConsoleIO) readLine() (string, error) {
	line, err := c.rl.Readline()
	switch {
	case err == nil:
		return line, nil
	case errors.Is(err, readline.ErrInterrupt):
		return "", io.EOF
	default:
		return "", err
	}
}

func (c *ConsoleIO) ReplyStart() {
	header := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.theme.Primary).
		Padding(0, 1).
		Render(c.bold(c.theme.Primary, "Claude"))
	fmt.Fprintln(c.out, header)
}

func (c *ConsoleIO) TextDelta(delta string) {
	fmt.Fprint(c.out, delta)
}

func (c *ConsoleIO) TextDone(string) {
	fmt.Fprintln(c.out)
}

func (c *ConsoleIO) Notice(text string) {
	fmt.Fprintf(c.out, "  %s\n", c.styled(c.theme.Accent, text))
}

func (c *ConsoleIO) Muted(text string) {
	fmt.Fprintf(c.out, "  %s\n", c.dim(text))
}

func (c *ConsoleIO) Success(text string) {
	fmt.Fprintf(c.out, "  %s\n", c.bold(c.theme.Success, text))
}

func (c *ConsoleIO) Warn(text string) {
	fmt.Fprintf(c.out, "  %s\n", c.styled(c.theme.Warning, text))
}

func (c *ConsoleIO) ErrorLine(text string) {
	fmt.Fprintf(c.out, "  %s\n", c.styled(c.theme.Error, text))
}

func (c *ConsoleIO) Error(title, hint string) {
	body := c.bold(errorRed, title)
	if hint != "" {
		body += "\n" + c.dim(hint)
	}
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(errorRed).
		Padding(0, 2).
		Render(body)
	fmt.Fprintln(c.out, panel)
}

func (c *ConsoleIO) Status(line StatusLine) {
	depthColor, ok := depthColors[line.MaxTokens]
	if !ok {
		depthColor = "3"
	}

	persona := c.dim("None")
	if line.Persona != "" {
		label := line.Persona
		if r := []rune(label); len(r) > 30 {
			label = string(r[:30]) + "..."
		}
		persona = lipgloss.NewStyle().Italic(true).Render(label)
	}

	parts := []string{
		c.dim("Model: ") + c.bold(c.theme.Primary, line.Model),
		c.dim("Brain: ") + c.styled(depthColor, line.Depth) + c.dim(fmt.Sprintf(" (%d tokens)", line.MaxTokens)),
		c.dim("Persona: ") + persona,
		c.dim("Theme: ") + c.styled(c.theme.Primary, line.Theme),
	}
	fmt.Fprintf(c.out, "  %s\n", strings.Join(parts, c.dim("  |  ")))
}

func (c *ConsoleIO) Usage(r UsageReport) {
	tbl := c.newTable([]string{"", "Input", "Output", "Cost"})
	tbl.Row("This msg",
		humanize.Comma(int64(r.InputTokens)),
		humanize.Comma(int64(r.OutputTokens)),
		fmt.Sprintf("$%.4f", r.Cost))
	tbl.Row("Session",
		humanize.Comma(int64(r.SessionInput)),
		humanize.Comma(int64(r.SessionOutput)),
		fmt.Sprintf("$%.4f", r.SessionCost))

	fmt.Fprintln(c.out, "  "+c.dim(fmt.Sprintf("Usage (%s)", r.Model)))
	fmt.Fprintln(c.out, tbl.Render())
}

func (c *ConsoleIO) Table(t Table) {
	tbl := c.newTable(t.Columns)
	for _, row := range t.Rows {
		tbl.Row(row...)
	}

	fmt.Fprintln(c.out)
	if t.Title != "" {
		fmt.Fprintln(c.out, "  "+c.bold(c.theme.Primary, t.Title))
	}
	fmt.Fprintln(c.out, tbl.Render())
}

func (c *ConsoleIO) Summary(s SessionSummary) {
	if s.Exchanges == 0 {
		c.goodbye()
		return
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(c.theme.Warning)).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return lipgloss.NewStyle().Foreground(c.theme.Muted).Padding(0, 2)
			}
			return lipgloss.NewStyle().Bold(true).Padding(0, 2)
		})
	tbl.Row("Messages", fmt.Sprintf("%d exchanges", s.Exchanges))
	tbl.Row("Model", s.Model)
	tbl.Row("Theme", s.Theme)
	tbl.Row("Tokens used", fmt.Sprintf("%s in + %s out",
		humanize.Comma(int64(s.InputTokens)), humanize.Comma(int64(s.OutputTokens))))
	tbl.Row("Total cost", fmt.Sprintf("$%.4f", s.TotalCost))

	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "  "+c.bold(c.theme.Warning, "Session Summary"))
	fmt.Fprintln(c.out, tbl.Render())
	c.goodbye()
}

func (c *ConsoleIO) goodbye() {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.theme.Warning).
		Padding(0, 2).
		Render(lipgloss.NewStyle().Bold(true).Render("Goodbye!"))
	fmt.Fprintln(c.out, panel)
}

func (c *ConsoleIO) Banner() {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprint(c.out, "\x1b[2J\x1b[H")
	}

	art := lipgloss.NewStyle().Bold(true).Foreground(claudeOrange).
		Render(strings.Join(bannerLines, "\n"))
	subtitle := c.dim("Your AI assistant in the terminal")
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(claudeOrange).
		Padding(1, 4).
		Render(lipgloss.JoinVertical(lipgloss.Center, art, "", subtitle))
	fmt.Fprintln(c.out, panel)
}

func (c *ConsoleIO) Help() {
	nameWidth := 0
	for _, e := range helpEntries {
		if len(e.name) > nameWidth {
			nameWidth = len(e.name)
		}
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Magic words:"))
	b.WriteString("\n")
	for i, e := range helpEntries {
		b.WriteString("  ")
		b.WriteString(c.rainbow(e.name, float64(i)/float64(len(helpEntries))))
		b.WriteString(strings.Repeat(" ", nameWidth-len(e.name)+2))
		b.WriteString(c.dim("- " + e.desc))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Tips: "))
	b.WriteString(c.dim("Press "))
	b.WriteString(c.rainbow("Tab", 0.4))
	b.WriteString(c.dim(" for autocomplete, "))
	b.WriteString(c.rainbow("Up Arrow", 0.6))
	b.WriteString(c.dim(" for message history"))

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.theme.Success).
		Padding(0, 1).
		Render(b.String())
	fmt.Fprintln(c.out, panel)
}

func (c *ConsoleIO) Markdown(text string) {
	rendered, err := c.markdown.Render(text)
	if err != nil {
		fmt.Fprintln(c.out, text)
		return
	}
	fmt.Fprint(c.out, rendered)
}

func (c *ConsoleIO) SetTheme(theme Theme) {
	c.theme = theme
	c.rl.SetPrompt(c.promptStyle(mainPrompt))
}

// Rule draws a dim divider across the terminal between exchanges.
func (c *ConsoleIO) Rule() {
	width := 80
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	fmt.Fprintln(c.out, c.dim(strings.Repeat("─", width)))
}

func (c *ConsoleIO) newTable(columns []string) *table.Table {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(c.theme.Primary).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(c.theme.Muted)).
		Headers(columns...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row < 0 {
				return headerStyle
			}
			return cellStyle
		})
}

// rainbow colors each character along the hue wheel starting at base.
func (c *ConsoleIO) rainbow(text string, base float64) string {
	var b strings.Builder
	i := 0
	for _, ch := range text {
		hue := math.Mod(base+float64(i)*0.03, 1.0)
		r, g, bl := hueToRGB(hue)
		color := lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, bl))
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(color).Render(string(ch)))
		i++
	}
	return b.String()
}

// hueToRGB converts a 0.0-1.0 hue to full-saturation RGB.
func hueToRGB(h float64) (int, int, int) {
	h6 := h * 6
	x := int(255 * (1 - math.Abs(math.Mod(h6, 2)-1)))
	switch int(h6) % 6 {
	case 0:
		return 255, x, 0
	case 1:
		return x, 255, 0
	case 2:
		return 0, 255, x
	case 3:
		return 0, x, 255
	case 4:
		return x, 0, 255
	}
	return 255, 0, x
}

func (c *ConsoleIO) styled(color lipgloss.Color, text string) string {
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func (c *ConsoleIO) bold(color lipgloss.Color, text string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(text)
}

func (c *ConsoleIO) dim(text string) string {
	return c.styled(c.theme.Muted, text)
}

func (c *ConsoleIO) promptStyle(text string) string {
	return lipgloss.NewStyle().Bold(true).Foreground(c.theme.Prompt).Render(text)
}
