// Package ui - Terminal user interface
// Styled messages, prompts and aligned tables for the CLI.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used by the writer
type Styles struct {
	Header  lipgloss.Style
	Bold    lipgloss.Style
	Dim     lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Prompt  lipgloss.Style
}

// DefaultStyles returns the standard palette for a renderer
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		Bold:    r.NewStyle().Bold(true),
		Dim:     r.NewStyle().Faint(true),
		Success: r.NewStyle().Foreground(lipgloss.Color("2")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("3")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("1")),
		Info:    r.NewStyle().Foreground(lipgloss.Color("4")),
		Prompt:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
	}
}

// Writer is the UI output destination
type Writer struct {
	out     io.Writer
	noColor bool
	quiet   bool
	styles  Styles
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:     out,
		noColor: noColor,
		styles:  DefaultStyles(lipgloss.NewRenderer(out)),
	}
}

// SetQuiet suppresses Info messages
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// Out returns the underlying writer
func (w *Writer) Out() io.Writer {
	return w.out
}

// style applies a style if enabled
func (w *Writer) style(s lipgloss.Style, text string) string {
	if w.noColor {
		return text
	}
	return s.Render(text)
}

// Print writes formatted text
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes formatted text with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println("%s", w.style(w.styles.Header, "━━━ "+title+" ━━━"))
	w.Println("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Println("%s", w.style(w.styles.Bold, "▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.Println("%s%s", w.style(w.styles.Success, "✓ "), fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Println("%s%s", w.style(w.styles.Warning, "⚠ "), fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	w.Println("%s%s", w.style(w.styles.Error, "✗ "), fmt.Sprintf(format, args...))
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println("%s%s", w.style(w.styles.Info, "ℹ "), fmt.Sprintf(format, args...))
}

// Prompt prints a question and leaves the cursor on the same line
func (w *Writer) Prompt(format string, args ...interface{}) {
	w.Print("%s ", w.style(w.styles.Prompt, fmt.Sprintf(format, args...)))
}

// Table renders aligned columns. Cell widths are measured in terminal
// cells, so CJK names line up with Latin ones.
type Table struct {
	w       *Writer
	headers []string
	rows    [][]string
	widths  []int
	right   []bool
	footer  []string
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = DisplayWidth(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		widths:  widths,
		right:   make([]bool, len(headers)),
	}
}

// AlignRight right-aligns the given columns
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		if c >= 0 && c < len(t.right) {
			t.right[c] = true
		}
	}
	return t
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, t.fit(cells))
}

// SetFooter adds a row printed below a separator
func (t *Table) SetFooter(cells ...string) {
	t.footer = t.fit(cells)
}

func (t *Table) fit(cells []string) []string {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if w := DisplayWidth(row[i]); w > t.widths[i] {
			t.widths[i] = w
		}
	}
	return row
}

// Render prints the table
func (t *Table) Render() {
	t.w.Println("%s", t.w.style(t.w.styles.Bold, t.line(t.headers)))
	t.w.Println("%s", t.separator())
	for _, row := range t.rows {
		t.w.Println("%s", t.line(row))
	}
	if t.footer != nil {
		t.w.Println("%s", t.separator())
		t.w.Println("%s", t.w.style(t.w.styles.Bold, t.line(t.footer)))
	}
}

func (t *Table) line(cells []string) string {
	parts := make([]string, len(cells))
	for i, c := range cells {
		if t.right[i] {
			parts[i] = PadLeft(c, t.widths[i])
		} else {
			parts[i] = PadRight(c, t.widths[i])
		}
	}
	return strings.TrimRight(strings.Join(parts, " │ "), " ")
}

func (t *Table) separator() string {
	parts := make([]string, len(t.widths))
	for i, w := range t.widths {
		parts[i] = strings.Repeat("─", w)
	}
	return strings.Join(parts, "─┼─")
}
