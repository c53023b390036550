package exporters

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/yuin/goldmark"

	"github.com/mrlokans/archivist/internal/archive"
	"github.com/mrlokans/archivist/internal/entities"
)

const fileMode = 0o644

// FileExporter writes chapters to the paths the archive resolves for them
// and records each written path on the chapter.
type FileExporter struct {
	fs    afero.Fs
	paths PathResolver
	store ChapterStore
	md    goldmark.Markdown
	log   *slog.Logger
}

func NewFileExporter(fsys afero.Fs, paths PathResolver, store ChapterStore, log *slog.Logger) *FileExporter {
	if log == nil {
		log = slog.Default()
	}
	return &FileExporter{
		fs:    fsys,
		paths: paths,
		store: store,
		md:    newMarkdown(),
		log:   log,
	}
}

// ExportChapter writes one chapter in every requested format and returns the
// written paths. An empty format list means every format. All paths are
// resolved and recorded on the chapter before any file is rendered, so the
// record exports (json, csv) already carry their own locations. Formats that
// fail are skipped; the joined errors are returned together with what
// succeeded.
func (e *FileExporter) ExportChapter(chapter *entities.Chapter, formats []archive.Format) (map[archive.Format]string, error) {
	if len(formats) == 0 {
		formats = archive.Formats()
	}

	var errs []error
	fail := func(format archive.Format, err error) {
		e.log.Error("failed to export chapter", "chapter", chapter.Number, "format", format.String(), "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", format, err))
	}

	resolved := make(map[archive.Format]string, len(formats))
	changed := false
	for _, format := range formats {
		path, err := e.paths.Resolve(chapter, format)
		if err != nil {
			fail(format, err)
			continue
		}
		resolved[format] = path
		if field := format.PathField(chapter); *field != path {
			*field = path
			changed = true
		}
	}

	written := make(map[archive.Format]string, len(resolved))
	for _, format := range formats {
		path, ok := resolved[format]
		if !ok {
			continue
		}
		if err := e.writeFormat(chapter, format, path); err != nil {
			fail(format, err)
			continue
		}
		written[format] = path
	}

	if changed && e.store != nil {
		if err := e.store.SaveChapter(chapter); err != nil {
			errs = append(errs, fmt.Errorf("failed to record export paths of chapter %d: %w", chapter.Number, err))
		}
	}
	return written, errors.Join(errs...)
}

func (e *FileExporter) writeFormat(chapter *entities.Chapter, format archive.Format, path string) error {
	content, err := Render(e.md, chapter, format)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(e.fs, path, content, fileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	e.log.Debug("exported chapter", "chapter", chapter.Number, "format", format.String(), "path", path)
	return nil
}

// Export writes every chapter in every requested format. Failures are counted
// and logged; the export carries on with the next chapter.
func (e *FileExporter) Export(chapters []entities.Chapter, formats []archive.Format) (ExportResult, error) {
	if len(formats) == 0 {
		formats = archive.Formats()
	}
	result := ExportResult{}
	for i := range chapters {
		chapter := &chapters[i]
		written, err := e.ExportChapter(chapter, formats)
		result.FilesWritten += len(written)
		if err != nil {
			result.ChaptersFailed++
			result.FilesFailed += len(formats) - len(written)
			continue
		}
		result.ChaptersProcessed++
	}

	e.log.Info("export completed",
		"chapters_processed", result.ChaptersProcessed,
		"files_written", result.FilesWritten,
		"chapters_failed", result.ChaptersFailed,
		"files_failed", result.FilesFailed)
	return result, nil
}

// ExportBook exports every chapter of a book. Book 0 exports the whole archive.
func (e *FileExporter) ExportBook(book int, formats []archive.Format) (ExportResult, error) {
	if book != 0 {
		if _, err := archive.BookDirName(book); err != nil {
			return ExportResult{}, err
		}
	}
	chapters, err := e.store.ListChapters(book)
	if err != nil {
		return ExportResult{}, fmt.Errorf("failed to list chapters of book %d: %w", book, err)
	}
	return e.Export(chapters, formats)
}

var _ ChapterExporter = (*FileExporter)(nil)
