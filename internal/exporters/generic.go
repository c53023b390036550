package exporters

import (
	"github.com/mrlokans/archivist/internal/archive"
	"github.com/mrlokans/archivist/internal/entities"
)

type ChapterExporter interface {
	Export(chapters []entities.Chapter, formats []archive.Format) (ExportResult, error)
}

// PathResolver returns the on-disk location of a chapter export, creating
// the directories it lives in.
type PathResolver interface {
	Resolve(chapter *entities.Chapter, format archive.Format) (string, error)
}

// ChapterStore is the part of the document store exporters use.
type ChapterStore interface {
	ListChapters(book int) ([]entities.Chapter, error)
	SaveChapter(chapter *entities.Chapter) error
}

type ExportResult struct {
	ChaptersProcessed int `json:"chapters_processed"`
	FilesWritten      int `json:"files_written"`
	ChaptersFailed    int `json:"chapters_failed"`
	FilesFailed       int `json:"files_failed"`
}

func (r *ExportResult) Add(other ExportResult) {
	r.ChaptersProcessed += other.ChaptersProcessed
	r.FilesWritten += other.FilesWritten
	r.ChaptersFailed += other.ChaptersFailed
	r.FilesFailed += other.FilesFailed
}
