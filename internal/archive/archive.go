// Package archive resolves where each chapter of the archive is exported.
//
// Every chapter has one file per export format under
//
//	<root>/books/book<BB>/<format>/chapter-<NNNN>.<ext>
//
// The chapter filename is derived from the chapter number the first time a
// path is requested and written back to the document store. Directories are
// created lazily, one level at a time, with fixed permission bits.
package archive

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chapter_store.go -package=mocks github.com/mrlokans/archivist/internal/archive ChapterStore

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/spf13/afero"

	"github.com/mrlokans/archivist/internal/entities"
)

// ChapterStore is the document store the archive reads chapters from and
// writes derived fields back to.
type ChapterStore interface {
	GetChapter(number int) (*entities.Chapter, error)
	ListChapterRange(from, to int) ([]entities.Chapter, error)
	SaveChapter(chapter *entities.Chapter) error
}

type Options struct {
	Root    string
	DirMode os.FileMode
}

// Archive serialises access to the resolver so that several callers (HTTP
// handlers, task workers, the scheduler) can share one instance.
type Archive struct {
	mu       sync.Mutex
	store    ChapterStore
	dirs     *Provisioner
	resolver *Resolver
	log      *slog.Logger
}

func New(store ChapterStore, fsys afero.Fs, opts Options, log *slog.Logger) *Archive {
	if log == nil {
		log = slog.Default()
	}
	dirs := NewProvisioner(fsys, opts.Root, opts.DirMode, log)
	return &Archive{
		store:    store,
		dirs:     dirs,
		resolver: NewResolver(store, dirs, log),
		log:      log,
	}
}

// Root returns the directory the books tree lives in.
func (a *Archive) Root() string {
	return a.dirs.Root()
}

// CheckRoot reports whether the archive root exists and is a directory.
func (a *Archive) CheckRoot() error {
	if err := a.dirs.requireDir(a.Root()); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrParentMissing, a.Root())
		}
		return err
	}
	return nil
}

// Chapter loads a chapter by number.
func (a *Archive) Chapter(number int) (*entities.Chapter, error) {
	if number <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrMissingChapterNumber, number)
	}
	return a.store.GetChapter(number)
}

// Resolve returns the export path of a loaded chapter.
func (a *Archive) Resolve(chapter *entities.Chapter, format Format) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.resolver.Resolve(chapter, format)
}

// Path loads a chapter and resolves the path of the given format tag.
func (a *Archive) Path(number int, tag string) (string, error) {
	format, err := ParseFormat(tag)
	if err != nil {
		a.log.Error("invalid file format", "format", tag, "chapter", number)
		return "", err
	}
	chapter, err := a.Chapter(number)
	if err != nil {
		return "", err
	}
	return a.Resolve(chapter, format)
}

// Paths resolves and stores every export path of a chapter.
func (a *Archive) Paths(number int) (*entities.Chapter, map[Format]string, error) {
	chapter, err := a.Chapter(number)
	if err != nil {
		return nil, nil, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	paths, err := a.resolver.ResolveAll(chapter)
	if err != nil {
		return nil, nil, err
	}
	return chapter, paths, nil
}

// GeneratePathsResult summarises a bulk path generation run.
type GeneratePathsResult struct {
	Processed int
	Missing   []int
	Failed    map[int]error
}

// GeneratePaths resolves and stores the paths of every chapter in [from, to].
// Chapter numbers without a record are reported as missing; a failure on one
// chapter does not stop the run.
func (a *Archive) GeneratePaths(from, to int) (GeneratePathsResult, error) {
	result := GeneratePathsResult{Failed: map[int]error{}}

	stored, err := a.store.ListChapterRange(from, to)
	if err != nil {
		return result, fmt.Errorf("failed to list chapters %d..%d: %w", from, to, err)
	}
	byNumber := make(map[int]*entities.Chapter, len(stored))
	for i := range stored {
		byNumber[stored[i].Number] = &stored[i]
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for number := range Chapters(from, to) {
		chapter, ok := byNumber[number]
		if !ok {
			result.Missing = append(result.Missing, number)
			continue
		}
		if _, err := a.resolver.ResolveAll(chapter); err != nil {
			a.log.Error("failed to generate paths", "chapter", number, "error", err)
			result.Failed[number] = err
			continue
		}
		result.Processed++
	}
	return result, nil
}

// ProvisionTree creates the full books tree.
func (a *Archive) ProvisionTree() ([]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dirs.ProvisionTree()
}
