package archive

import (
	"fmt"
	"strings"

	"github.com/mrlokans/archivist/internal/entities"
)

// Format is an export representation of a chapter.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatText     Format = "text"
)

type formatSpec struct {
	dir   string
	ext   string
	field func(*entities.Chapter) *string
}

var formats = map[Format]formatSpec{
	FormatCSV:      {dir: "csv", ext: ".csv", field: func(c *entities.Chapter) *string { return &c.CSVPath }},
	FormatHTML:     {dir: "html", ext: ".html", field: func(c *entities.Chapter) *string { return &c.HTMLPath }},
	FormatJSON:     {dir: "json", ext: ".json", field: func(c *entities.Chapter) *string { return &c.JSONPath }},
	FormatMarkdown: {dir: "md", ext: ".md", field: func(c *entities.Chapter) *string { return &c.MDPath }},
	FormatText:     {dir: "text", ext: ".txt", field: func(c *entities.Chapter) *string { return &c.TextPath }},
}

// Formats returns every supported format in a stable order.
func Formats() []Format {
	return []Format{FormatCSV, FormatHTML, FormatJSON, FormatMarkdown, FormatText}
}

// ParseFormat converts a format tag into a Format. Tags are matched
// case-insensitively; anything outside the supported set is an error.
func ParseFormat(tag string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(tag)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownFormat, tag, formatList())
	}
	return f, nil
}

// ParseFormats parses a list of tags. An empty list means every format.
func ParseFormats(tags []string) ([]Format, error) {
	if len(tags) == 0 {
		return Formats(), nil
	}
	out := make([]Format, 0, len(tags))
	seen := make(map[Format]bool, len(tags))
	for _, tag := range tags {
		f, err := ParseFormat(tag)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

func (f Format) Valid() bool {
	_, ok := formats[f]
	return ok
}

// Dir is the name of the per-book directory holding files of this format.
func (f Format) Dir() string {
	return formats[f].dir
}

// Ext is the file extension, including the leading dot.
func (f Format) Ext() string {
	return formats[f].ext
}

func (f Format) String() string {
	return string(f)
}

// PathField returns a pointer to the chapter field that stores the path of
// this format, or nil for an unknown format.
func (f Format) PathField(chapter *entities.Chapter) *string {
	spec, ok := formats[f]
	if !ok {
		return nil
	}
	return spec.field(chapter)
}

func formatList() string {
	names := make([]string, 0, len(formats))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, "|")
}
