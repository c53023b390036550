// Command seed creates a sample archive database with a handful of chapters.
// Usage: go run ./cmd/seed [-db path/to/seed.db]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mrlokans/archivist/internal/database"
	"github.com/mrlokans/archivist/internal/database/chapters"
	"github.com/mrlokans/archivist/internal/entities"
)

const defaultSeedDatabasePath = "./demo/seed.db"

type sampleChapter struct {
	book, number, section int
	title                 string
	paragraphs            []string
	tags                  []string
}

func main() {
	dbPath := flag.String("db", defaultSeedDatabasePath, "path to the seed database file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	log.Info("generating seed database", "path", *dbPath)

	if err := os.Remove(*dbPath); err != nil && !os.IsNotExist(err) {
		log.Error("failed to remove existing seed database", "error", err)
		os.Exit(1)
	}

	db, err := database.NewDatabase(*dbPath, log)
	if err != nil {
		log.Error("failed to create database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := chapters.NewRepository(db.DB)
	saved := 0
	for _, sample := range samples() {
		chapter := sample.entity()
		if err := repo.SaveChapter(chapter); err != nil {
			log.Error("failed to save chapter", "chapter", sample.number, "error", err)
			continue
		}
		saved++
		log.Info("saved chapter", "chapter", chapter.Number, "book", chapter.Book, "title", chapter.Title)
	}
	log.Info("seed database generated", "chapters", saved)
}

func (s sampleChapter) entity() *entities.Chapter {
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", s.title)
	md.WriteString(strings.Join(s.paragraphs, "\n\n"))
	md.WriteString("\n")

	chapter := &entities.Chapter{
		Book:     s.book,
		Number:   s.number,
		Section:  s.section,
		Title:    s.title,
		URL:      fmt.Sprintf("https://example.org/book-%d/chapter-%d", s.book, s.number),
		Text:     strings.Join(s.paragraphs, "\n\n"),
		Markdown: md.String(),
	}
	for _, name := range s.tags {
		chapter.Tags = append(chapter.Tags, entities.Tag{Name: name})
	}
	return chapter
}

func samples() []sampleChapter {
	return []sampleChapter{
		{
			book: 1, number: 1, section: 1,
			title: "The Gate",
			paragraphs: []string{
				"The caravan reached the gate an hour after dusk.",
				"Nobody came out to meet it, which was the first strange thing.",
			},
			tags: []string{"prologue", "arc-1"},
		},
		{
			book: 1, number: 2, section: 1,
			title: "Lanterns",
			paragraphs: []string{
				"Someone had lit the lanterns along the wall and then left.",
				"The oil in them was fresh.",
			},
			tags: []string{"arc-1"},
		},
		{
			book: 1, number: 3, section: 2,
			title: "The Empty Square",
			paragraphs: []string{
				"Market stalls stood with their goods still laid out.",
				"A cat watched them from a windowsill and did not run.",
			},
			tags: []string{"arc-1", "mystery"},
		},
		{
			book: 2, number: 1200, section: 1,
			title: "Return",
			paragraphs: []string{
				"Years later the road looked narrower than he remembered.",
			},
			tags: []string{"arc-2"},
		},
		{
			book: 10, number: 3462, section: 9,
			title: "Last Light",
			paragraphs: []string{
				"The final lantern went out on its own.",
			},
			tags: []string{"epilogue"},
		},
	}
}
