package exporters

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/mrlokans/archivist/internal/archive"
	"github.com/mrlokans/archivist/internal/entities"
)

// csvHeader is the column order of CSV exports.
var csvHeader = []string{
	"book", "chapter", "section", "title", "url", "filename", "tags",
	"text_path", "md_path", "html_path", "json_path", "csv_path",
}

// Render produces the file content of a chapter in the given format.
func Render(md goldmark.Markdown, chapter *entities.Chapter, format archive.Format) ([]byte, error) {
	switch format {
	case archive.FormatText:
		return []byte(chapter.Text), nil
	case archive.FormatMarkdown:
		return []byte(chapter.Markdown), nil
	case archive.FormatHTML:
		if chapter.HTML != "" {
			return []byte(chapter.HTML), nil
		}
		out, err := MarkdownToHTML(md, chapter.Markdown)
		if err != nil {
			return nil, err
		}
		return []byte(out), nil
	case archive.FormatJSON:
		return renderJSON(chapter)
	case archive.FormatCSV:
		return renderCSV(chapter)
	default:
		return nil, fmt.Errorf("%w: %q", archive.ErrUnknownFormat, format)
	}
}

// renderJSON writes the full record. Marshalling a map keeps keys sorted.
func renderJSON(chapter *entities.Chapter) ([]byte, error) {
	tags := chapter.TagNames()
	record := map[string]any{
		"book":          chapter.Book,
		"chapter":       chapter.Number,
		"section":       chapter.Section,
		"title":         chapter.Title,
		"url":           chapter.URL,
		"filename":      chapter.Filename,
		"text":          chapter.Text,
		"md":            chapter.Markdown,
		"html":          chapter.HTML,
		"unparsed_text": chapter.UnparsedText,
		"text_path":     chapter.TextPath,
		"md_path":       chapter.MDPath,
		"html_path":     chapter.HTMLPath,
		"json_path":     chapter.JSONPath,
		"csv_path":      chapter.CSVPath,
		"tags":          tags,
	}
	out, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode chapter %d: %w", chapter.Number, err)
	}
	return append(out, '\n'), nil
}

func renderCSV(chapter *entities.Chapter) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	row := []string{
		strconv.Itoa(chapter.Book),
		strconv.Itoa(chapter.Number),
		strconv.Itoa(chapter.Section),
		chapter.Title,
		chapter.URL,
		chapter.Filename,
		strings.Join(chapter.TagNames(), ";"),
		chapter.TextPath,
		chapter.MDPath,
		chapter.HTMLPath,
		chapter.JSONPath,
		chapter.CSVPath,
	}
	if err := w.WriteAll([][]string{csvHeader, row}); err != nil {
		return nil, fmt.Errorf("failed to encode chapter %d: %w", chapter.Number, err)
	}
	return buf.Bytes(), nil
}
