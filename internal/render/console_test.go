package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/archivist/internal/entities"
)

func testChapter() *entities.Chapter {
	return &entities.Chapter{
		Book:     2,
		Number:   321,
		Section:  4,
		Title:    "Crossing",
		Filename: "chapter-0321",
		Text:     "They crossed the river at dawn.",
		Markdown: "They crossed the **river** at dawn.",
		MDPath:   "/archive/books/book02/md/chapter-0321.md",
		Tags:     []entities.Tag{{Name: "river"}},
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("MD")
	require.NoError(t, err)
	assert.Equal(t, ModeMarkdown, m)

	_, err = ParseMode("pdf")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestConsole_PrintChapter(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewConsole(&buf).PrintChapter(testChapter(), ModeText))

		out := buf.String()
		assert.Contains(t, out, "Crossing")
		assert.Contains(t, out, "Chapter 321")
		assert.Contains(t, out, "They crossed the river at dawn.")
		assert.Less(t, strings.Index(out, "Crossing"), strings.Index(out, "They crossed"))
	})

	t.Run("markdown panel", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewConsole(&buf).WithWidth(60).PrintChapter(testChapter(), ModeMarkdown))

		out := buf.String()
		assert.Contains(t, out, "╭")
		assert.Contains(t, out, "Chapter 321")
		assert.Contains(t, out, "**river**")
	})

	t.Run("unknown mode", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewConsole(&buf).PrintChapter(testChapter(), Mode("pdf"))
		assert.ErrorIs(t, err, ErrUnknownMode)
		assert.Empty(t, buf.String())
	})
}

func TestConsole_PrintDetails(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConsole(&buf).PrintDetails(testChapter()))

	out := buf.String()
	for _, want := range []string{"Chapter", "321", "Section", "Book", "Title", "Crossing", "Filename", "chapter-0321", "MD Path", "book02", "Tags", "river"} {
		assert.Contains(t, out, want)
	}
}

func TestConsole_Rule(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf).WithWidth(40)
	require.NoError(t, c.Rule("Run 7"))
	require.NoError(t, c.Rule(""))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], " Run 7 ")
	assert.Equal(t, strings.Repeat("─", 40), lines[1])
}

func TestConsole_ColourFollowsWriter(t *testing.T) {
	tests := []struct {
		name    string
		profile termenv.Profile
		styled  bool
	}{
		{name: "plain writer", profile: termenv.Ascii, styled: false},
		{name: "truecolor writer", profile: termenv.TrueColor, styled: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := NewConsole(&buf).WithWidth(40)
			c.renderer.SetColorProfile(tt.profile)

			require.NoError(t, c.PrintChapter(testChapter(), ModeText))
			require.NoError(t, c.PrintDetails(testChapter()))

			out := buf.String()
			assert.Equal(t, tt.styled, strings.Contains(out, "\x1b["))
			assert.Contains(t, out, "Crossing")

			// The centred title line keeps the full console width.
			first := strings.SplitN(out, "\n", 2)[0]
			assert.Equal(t, 40, lipgloss.Width(first))
		})
	}
}
