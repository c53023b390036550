package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mrlokans/archivist/internal/entities"
	"github.com/mrlokans/archivist/internal/entrypoint"
)

// ChapterImport is the JSON shape accepted by the import command.
type ChapterImport struct {
	Book         int      `json:"book"`
	Chapter      int      `json:"chapter"`
	Section      int      `json:"section"`
	Title        string   `json:"title"`
	URL          string   `json:"url"`
	Text         string   `json:"text"`
	Markdown     string   `json:"md"`
	HTML         string   `json:"html"`
	UnparsedText string   `json:"unparsed_text"`
	Tags         []string `json:"tags"`
}

func (r ChapterImport) toEntity() *entities.Chapter {
	chapter := &entities.Chapter{
		Book:         r.Book,
		Number:       r.Chapter,
		Section:      r.Section,
		Title:        r.Title,
		URL:          r.URL,
		Text:         r.Text,
		Markdown:     r.Markdown,
		HTML:         r.HTML,
		UnparsedText: r.UnparsedText,
	}
	for _, name := range r.Tags {
		chapter.Tags = append(chapter.Tags, entities.Tag{Name: name})
	}
	return chapter
}

// decodeImport reads either a single chapter object or an array of them.
func decodeImport(r io.Reader) ([]ChapterImport, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var one ChapterImport
		if err := json.Unmarshal(data, &one); err != nil {
			return nil, fmt.Errorf("failed to parse chapter: %w", err)
		}
		return []ChapterImport{one}, nil
	}
	var many []ChapterImport
	if err := json.Unmarshal(data, &many); err != nil {
		return nil, fmt.Errorf("failed to parse chapters: %w", err)
	}
	return many, nil
}

func newImportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import chapters from a JSON file, updating existing chapter numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := afero.NewOsFs().Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open import file: %w", err)
			}
			defer file.Close()

			records, err := decodeImport(file)
			if err != nil {
				return err
			}

			return opts.withApp(cmd, func(app *entrypoint.App) error {
				imported, failed := 0, 0
				for _, record := range records {
					if err := app.Chapters.SaveChapter(record.toEntity()); err != nil {
						app.Log.Error("failed to import chapter", "chapter", record.Chapter, "error", err)
						failed++
						continue
					}
					imported++
				}
				app.Log.Info("import finished", "file", args[0], "imported", imported, "failed", failed)
				app.Console.Println(fmt.Sprintf("imported %d chapters, %d failed", imported, failed))
				if failed > 0 && imported == 0 {
					return fmt.Errorf("no chapters imported from %s", args[0])
				}
				return nil
			})
		},
	}
}
