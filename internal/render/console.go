// Package render prints chapters to a terminal.
package render

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mrlokans/archivist/internal/entities"
)

// ErrUnknownMode is returned for print modes other than text and md.
var ErrUnknownMode = errors.New("unknown print mode")

type Mode string

const (
	ModeText     Mode = "text"
	ModeMarkdown Mode = "md"
)

const defaultWidth = 80

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeText, ModeMarkdown:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q (expected text or md)", ErrUnknownMode, s)
	}
}

type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	panel    lipgloss.Style
	key      lipgloss.Style
	rule     lipgloss.Style
}

// Console writes styled chapter output to w. Colour support is detected from
// w, so plain buffers get unstyled text.
type Console struct {
	w        io.Writer
	width    int
	renderer *lipgloss.Renderer
	styles   styles
}

func NewConsole(w io.Writer) *Console {
	r := lipgloss.NewRenderer(w)
	accent := lipgloss.Color("#0ea5a4")
	muted := lipgloss.Color("#94a3b8")
	return &Console{
		w:        w,
		width:    defaultWidth,
		renderer: r,
		styles: styles{
			title:    r.NewStyle().Bold(true).Foreground(accent),
			subtitle: r.NewStyle().Italic(true).Foreground(muted),
			panel:    r.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1),
			key:      r.NewStyle().Bold(true).Foreground(muted),
			rule:     r.NewStyle().Foreground(accent),
		},
	}
}

// WithWidth sets the line width used for centring and rules.
func (c *Console) WithWidth(width int) *Console {
	if width > 0 {
		c.width = width
	}
	return c
}

// PrintChapter prints the chapter body. Text mode centres the title above an
// italic chapter line; md mode wraps the markdown in a titled panel.
func (c *Console) PrintChapter(chapter *entities.Chapter, mode Mode) error {
	subtitle := fmt.Sprintf("Chapter %d", chapter.Number)

	var out string
	switch mode {
	case ModeText:
		center := c.renderer.NewStyle().Width(c.width).Align(lipgloss.Center)
		out = lipgloss.JoinVertical(lipgloss.Left,
			center.Render(c.styles.title.Render(chapter.Title)),
			center.Render(c.styles.subtitle.Render(subtitle)),
			"",
			chapter.Text,
		)
	case ModeMarkdown:
		header := c.styles.title.Render(chapter.Title) + "\n" + c.styles.subtitle.Render(subtitle)
		out = c.styles.panel.Width(c.width - 2).Render(header + "\n\n" + strings.TrimSpace(chapter.Markdown))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	_, err := fmt.Fprintln(c.w, out)
	return err
}

// PrintDetails prints a key/value table of the chapter record.
func (c *Console) PrintDetails(chapter *entities.Chapter) error {
	rows := [][]string{
		{"Chapter", strconv.Itoa(chapter.Number)},
		{"Section", strconv.Itoa(chapter.Section)},
		{"Book", strconv.Itoa(chapter.Book)},
		{"Title", chapter.Title},
		{"Filename", chapter.Filename},
		{"Text Path", chapter.TextPath},
		{"MD Path", chapter.MDPath},
		{"HTML Path", chapter.HTMLPath},
	}
	if tags := chapter.TagNames(); len(tags) > 0 {
		rows = append(rows, []string{"Tags", strings.Join(tags, ", ")})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(c.styles.rule).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 && row != table.HeaderRow {
				return c.styles.key
			}
			return c.renderer.NewStyle()
		}).
		Headers("Key", "Value").
		Rows(rows...)

	_, err := fmt.Fprintln(c.w, t.Render())
	return err
}

// Rule prints a full-width horizontal rule with an optional centred title.
func (c *Console) Rule(title string) error {
	if title == "" {
		_, err := fmt.Fprintln(c.w, c.styles.rule.Render(strings.Repeat("─", c.width)))
		return err
	}
	label := " " + title + " "
	side := max((c.width-lipgloss.Width(label))/2, 3)
	line := strings.Repeat("─", side) + label + strings.Repeat("─", side)
	_, err := fmt.Fprintln(c.w, c.styles.rule.Render(line))
	return err
}

// Println prints plain lines, used for command results.
func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.w, args...)
}
