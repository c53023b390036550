package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/archivist/internal/archive"
	"github.com/mrlokans/archivist/internal/entities"
	"github.com/mrlokans/archivist/internal/exporters"
)

const (
	ExportChapterQueue = "export_chapter"
	ExportBookQueue    = "export_book"
)

// Exporter writes chapters to the archive.
type Exporter interface {
	ExportChapter(chapter *entities.Chapter, formats []archive.Format) (map[archive.Format]string, error)
	ExportBook(book int, formats []archive.Format) (exporters.ExportResult, error)
}

// ChapterLoader loads a chapter by number.
type ChapterLoader interface {
	Chapter(number int) (*entities.Chapter, error)
}

// ExportChapterTask exports a single chapter. An empty format list exports
// every format.
type ExportChapterTask struct {
	Chapter int      `json:"chapter"`
	Formats []string `json:"formats,omitempty"`
}

func (t ExportChapterTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        ExportChapterQueue,
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     2 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ExportChapterProcessor creates a processor function for ExportChapterTask.
func ExportChapterProcessor(chapters ChapterLoader, exporter Exporter, log *slog.Logger) backlite.QueueProcessor[ExportChapterTask] {
	return func(ctx context.Context, task ExportChapterTask) error {
		if chapters == nil || exporter == nil {
			return errors.New("exporter not configured")
		}
		formats, err := archive.ParseFormats(task.Formats)
		if err != nil {
			return err
		}
		chapter, err := chapters.Chapter(task.Chapter)
		if err != nil {
			return fmt.Errorf("export chapter %d: %w", task.Chapter, err)
		}
		written, err := exporter.ExportChapter(chapter, formats)
		if err != nil {
			return fmt.Errorf("export chapter %d: %w", task.Chapter, err)
		}
		log.Info("exported chapter", "chapter", task.Chapter, "files", len(written))
		return nil
	}
}

func NewExportChapterQueue(chapters ChapterLoader, exporter Exporter, log *slog.Logger) backlite.Queue {
	return backlite.NewQueue(ExportChapterProcessor(chapters, exporter, log))
}

// ExportBookTask exports every chapter of a book. Book 0 exports the whole
// archive.
type ExportBookTask struct {
	Book    int      `json:"book"`
	Formats []string `json:"formats,omitempty"`
}

func (t ExportBookTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        ExportBookQueue,
		MaxAttempts: 1,
		Backoff:     time.Minute,
		Timeout:     60 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// ExportBookProcessor creates a processor function for ExportBookTask.
// Individual chapter failures are counted, not retried; the task only fails
// when nothing could be exported.
func ExportBookProcessor(exporter Exporter, log *slog.Logger) backlite.QueueProcessor[ExportBookTask] {
	return func(ctx context.Context, task ExportBookTask) error {
		if exporter == nil {
			return errors.New("exporter not configured")
		}
		formats, err := archive.ParseFormats(task.Formats)
		if err != nil {
			return err
		}
		result, err := exporter.ExportBook(task.Book, formats)
		if err != nil {
			return fmt.Errorf("export book %d: %w", task.Book, err)
		}
		if result.ChaptersProcessed == 0 && result.ChaptersFailed > 0 {
			return fmt.Errorf("export book %d: all %d chapters failed", task.Book, result.ChaptersFailed)
		}
		log.Info("exported book",
			"book", task.Book,
			"chapters", result.ChaptersProcessed,
			"failed", result.ChaptersFailed,
			"files", result.FilesWritten)
		return nil
	}
}

func NewExportBookQueue(exporter Exporter, log *slog.Logger) backlite.Queue {
	return backlite.NewQueue(ExportBookProcessor(exporter, log))
}
