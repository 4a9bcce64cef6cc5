package menu

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/NikitaCOEUR/promptline/internal/completion"
)

const (
	// DefaultMaxVisible is the number of items shown at once
	DefaultMaxVisible = 8
	// DefaultItemTemplate renders one menu item
	DefaultItemTemplate = `{{ .Icon | default " " }} {{ .Label }}{{ with .Description }}  {{ subtle . }}{{ end }}`
)

var (
	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Reverse(true)

	itemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Options configures a Renderer
type Options struct {
	MaxVisible   int
	Width        int // 0 disables truncation
	HideCursor   bool
	ItemTemplate string
}

// Item is the data an item template sees
type Item struct {
	Index       int
	Value       string
	Label       string
	Description string
	Icon        string
	Group       string
	Score       int
	Selected    bool
}

// Renderer turns a Menu into escape sequences that draw below the prompt
// line and always return the cursor to the prompt. On the bottom row the
// screen is scrolled up first so the prompt stays visible. It tracks how many
// lines are on screen so that they can be erased exactly.
type Renderer struct {
	opts       Options
	tmpl       *template.Template
	linesShown int
}

// NewRenderer creates a renderer. It fails if the item template does not parse.
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.MaxVisible <= 0 {
		opts.MaxVisible = DefaultMaxVisible
	}
	if opts.ItemTemplate == "" {
		opts.ItemTemplate = DefaultItemTemplate
	}

	funcs := sprig.TxtFuncMap()
	funcs["subtle"] = func(s string) string { return subtleStyle.Render(s) }

	tmpl, err := template.New("item").Funcs(funcs).Parse(opts.ItemTemplate)
	if err != nil {
		return nil, fmt.Errorf("invalid item template: %w", err)
	}
	return &Renderer{opts: opts, tmpl: tmpl}, nil
}

// LinesShown returns the number of menu lines currently on screen
func (r *Renderer) LinesShown() int {
	return r.linesShown
}

// Render draws the menu and erases any leftover lines from the previous
// draw. An idle menu renders as a clear.
func (r *Renderer) Render(m *Menu) string {
	if !m.Active() {
		return r.Clear()
	}

	lines := r.lines(m)
	total := len(lines)
	if r.linesShown > total {
		total = r.linesShown
	}

	var b strings.Builder
	b.WriteString(reserve(total))
	b.WriteString(ansi.SaveCursor)
	if r.opts.HideCursor {
		b.WriteString(ansi.HideCursor)
	}
	for i := 0; i < total; i++ {
		b.WriteString(ansi.CursorNextLine(1))
		b.WriteString(ansi.EraseEntireLine)
		if i < len(lines) {
			b.WriteString(lines[i])
		}
	}
	if r.opts.HideCursor {
		b.WriteString(ansi.ShowCursor)
	}
	b.WriteString(ansi.RestoreCursor)

	r.linesShown = len(lines)
	return b.String()
}

// Clear erases the lines drawn by the last Render
func (r *Renderer) Clear() string {
	s := ClearLines(r.linesShown)
	r.linesShown = 0
	return s
}

// reserve makes sure n rows exist below the cursor. IND scrolls the screen
// when it reaches the bottom row and keeps the column, so the cursor ends on
// the prompt line with the rows below it free.
func reserve(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(ansi.Index, n) + ansi.CursorUp(n)
}

// ClearLines erases lineCount lines below the cursor, moving up exactly
// lineCount lines, and restores the cursor
func ClearLines(lineCount int) string {
	if lineCount <= 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(ansi.SaveCursor)
	b.WriteString(ansi.CursorNextLine(lineCount))
	for i := 0; i < lineCount; i++ {
		b.WriteString(ansi.EraseEntireLine)
		b.WriteString(ansi.CursorUp(1))
	}
	b.WriteString(ansi.RestoreCursor)
	return b.String()
}

// Window returns the [start, end) range of items that fit on screen with
// the selection visible
func Window(total, selected, maxVisible int) (int, int) {
	if maxVisible <= 0 || total <= maxVisible {
		return 0, total
	}
	start := 0
	if selected >= maxVisible {
		start = selected - maxVisible + 1
	}
	return start, start + maxVisible
}

func (r *Renderer) lines(m *Menu) []string {
	list := m.Completions()
	selected := m.SelectedIndex()
	start, end := Window(len(list), selected, r.opts.MaxVisible)

	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		lines = append(lines, r.line(i, list[i], i == selected))
	}
	if end-start < len(list) {
		lines = append(lines, r.fit(subtleStyle.Render(fmt.Sprintf("  %d/%d", selected+1, len(list)))))
	}
	return lines
}

func (r *Renderer) line(i int, c completion.Completion, selected bool) string {
	item := Item{
		Index:       i,
		Value:       c.Value,
		Label:       c.Label(),
		Description: c.Description,
		Icon:        c.Icon,
		Group:       c.Group.String(),
		Score:       c.Score,
		Selected:    selected,
	}

	var buf bytes.Buffer
	text := item.Label
	if err := r.tmpl.Execute(&buf, item); err == nil {
		text = buf.String()
	}
	// A line break would push the menu into scrollback
	text = strings.NewReplacer("\r", " ", "\n", " ").Replace(text)
	text = r.fit(text)

	if selected {
		return selectedStyle.Render(text)
	}
	return itemStyle.Render(text)
}

func (r *Renderer) fit(s string) string {
	if r.opts.Width <= 0 || ansi.StringWidth(s) <= r.opts.Width {
		return s
	}
	return ansi.Truncate(s, r.opts.Width, "…")
}
