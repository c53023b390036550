package archive

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mrlokans/archivist/internal/entities"
)

// ChapterSaver persists a chapter record.
type ChapterSaver interface {
	SaveChapter(chapter *entities.Chapter) error
}

// Resolver derives export paths for chapters. It generates and persists the
// chapter filename on first use and provisions directories as needed.
type Resolver struct {
	store ChapterSaver
	dirs  *Provisioner
	log   *slog.Logger
}

func NewResolver(store ChapterSaver, dirs *Provisioner, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{store: store, dirs: dirs, log: log}
}

// GenerateFilename (re)derives the chapter filename and persists it.
func (r *Resolver) GenerateFilename(chapter *entities.Chapter) (string, error) {
	if chapter == nil {
		return "", fmt.Errorf("%w: no chapter given", ErrMissingChapterNumber)
	}
	filename, err := Filename(chapter.Number)
	if err != nil {
		r.log.Error("unable to generate filename", "chapter", chapter.Number, "title", chapter.Title)
		return "", err
	}

	previous := chapter.Filename
	chapter.Filename = filename
	if err := r.store.SaveChapter(chapter); err != nil {
		chapter.Filename = previous
		return "", fmt.Errorf("failed to persist filename of chapter %d: %w", chapter.Number, err)
	}
	r.log.Debug("updated chapter filename", "chapter", chapter.Number, "filename", filename)
	return filename, nil
}

// EnsureFilename returns the stored filename, generating it when missing.
func (r *Resolver) EnsureFilename(chapter *entities.Chapter) (string, error) {
	if chapter != nil && chapter.Filename != "" {
		return chapter.Filename, nil
	}
	if chapter != nil {
		r.log.Warn("chapter does not have a filename, generating one", "chapter", chapter.Number)
	}
	return r.GenerateFilename(chapter)
}

// Resolve returns the export path of chapter in the given format, creating
// the directory chain when it does not exist yet.
func (r *Resolver) Resolve(chapter *entities.Chapter, format Format) (string, error) {
	if !format.Valid() {
		r.log.Error("invalid file format", "format", string(format))
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if chapter == nil || chapter.Number <= 0 {
		return "", fmt.Errorf("%w: cannot resolve %s path", ErrMissingChapterNumber, format)
	}
	if _, err := BookDirName(chapter.Book); err != nil {
		return "", fmt.Errorf("chapter %d: %w", chapter.Number, err)
	}

	filename, err := r.EnsureFilename(chapter)
	if err != nil {
		return "", err
	}

	dir, err := r.dirs.EnsureFormatDir(chapter.Book, format)
	if err != nil {
		return "", fmt.Errorf("chapter %d: %w", chapter.Number, err)
	}
	return filepath.Join(dir, filename+format.Ext()), nil
}

// ResolveTag parses a format tag and resolves it.
func (r *Resolver) ResolveTag(chapter *entities.Chapter, tag string) (string, error) {
	format, err := ParseFormat(tag)
	if err != nil {
		r.log.Error("invalid file format", "format", tag)
		return "", err
	}
	return r.Resolve(chapter, format)
}

// ResolveAll resolves every format, stores the paths on the chapter record
// and saves it once.
func (r *Resolver) ResolveAll(chapter *entities.Chapter) (map[Format]string, error) {
	paths := make(map[Format]string, len(formats))
	for _, format := range Formats() {
		path, err := r.Resolve(chapter, format)
		if err != nil {
			return nil, err
		}
		paths[format] = path
	}

	changed := false
	for format, path := range paths {
		field := format.PathField(chapter)
		if *field != path {
			*field = path
			changed = true
		}
	}
	if changed {
		if err := r.store.SaveChapter(chapter); err != nil {
			return nil, fmt.Errorf("failed to persist paths of chapter %d: %w", chapter.Number, err)
		}
	}
	return paths, nil
}
