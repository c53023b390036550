package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/mrlokans/archivist/internal/entities"
)

const (
	// BooksDirName is the directory under the archive root holding one
	// directory per book.
	BooksDirName = "books"

	// DefaultDirMode is applied to every directory the provisioner creates.
	DefaultDirMode os.FileMode = 0o755
)

// AssetDirs are created next to the format directories of every book by
// ProvisionTree.
var AssetDirs = []string{"Styles", "Images"}

// Provisioner creates the root/books/bookNN/<format> directory chain one
// level at a time. Existing directories are left alone.
type Provisioner struct {
	fs   afero.Fs
	root string
	mode os.FileMode
	log  *slog.Logger
}

// NewProvisioner returns a provisioner rooted at root. The root itself must
// already exist; it is never created.
func NewProvisioner(fsys afero.Fs, root string, mode os.FileMode, log *slog.Logger) *Provisioner {
	if mode == 0 {
		mode = DefaultDirMode
	}
	if log == nil {
		log = slog.Default()
	}
	return &Provisioner{
		fs:   fsys,
		root: filepath.Clean(root),
		mode: mode,
		log:  log,
	}
}

func (p *Provisioner) Root() string {
	return p.root
}

// BooksDir returns root/books without touching the filesystem.
func (p *Provisioner) BooksDir() string {
	return filepath.Join(p.root, BooksDirName)
}

// BookDir returns root/books/bookNN without touching the filesystem.
func (p *Provisioner) BookDir(book int) (string, error) {
	name, err := BookDirName(book)
	if err != nil {
		return "", err
	}
	return filepath.Join(p.BooksDir(), name), nil
}

// EnsureSubdir makes sure parent/name exists as a directory. It reports
// whether the directory was created by this call. A missing parent is an
// error wrapping ErrParentMissing.
func (p *Provisioner) EnsureSubdir(parent, name string) (bool, error) {
	if err := p.requireDir(parent); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			p.log.Error("cannot create sub-directory, parent does not exist", "subdir", name, "parent", parent)
			return false, fmt.Errorf("create %s: %w: %s", name, ErrParentMissing, parent)
		}
		return false, err
	}

	dir := filepath.Join(parent, name)
	err := p.requireDir(dir)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	p.log.Debug("sub-directory does not exist, creating", "dir", dir)
	if err := p.fs.Mkdir(dir, p.mode); err != nil {
		// Lost a race with another creator; the directory is what we wanted.
		if errors.Is(err, fs.ErrExist) && p.requireDir(dir) == nil {
			return false, nil
		}
		p.log.Error("unable to create sub-directory", "dir", dir, "error", err)
		return false, fmt.Errorf("create %s: %w", dir, err)
	}
	p.log.Info("created sub-directory", "dir", dir)
	return true, nil
}

// EnsureBookDir provisions root/books/bookNN and returns its path.
func (p *Provisioner) EnsureBookDir(book int) (string, error) {
	name, err := BookDirName(book)
	if err != nil {
		return "", err
	}
	if _, err := p.EnsureSubdir(p.root, BooksDirName); err != nil {
		return "", err
	}
	if _, err := p.EnsureSubdir(p.BooksDir(), name); err != nil {
		return "", err
	}
	return filepath.Join(p.BooksDir(), name), nil
}

// EnsureFormatDir provisions root/books/bookNN/<format> and returns its path.
func (p *Provisioner) EnsureFormatDir(book int, format Format) (string, error) {
	if !format.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	bookDir, err := p.EnsureBookDir(book)
	if err != nil {
		return "", err
	}
	if _, err := p.EnsureSubdir(bookDir, format.Dir()); err != nil {
		return "", err
	}
	return filepath.Join(bookDir, format.Dir()), nil
}

// ProvisionTree creates the directories of every book: one per export format
// plus the asset directories. It returns the directories it created.
func (p *Provisioner) ProvisionTree() ([]string, error) {
	var created []string
	for book := entities.MinBook; book <= entities.MaxBook; book++ {
		bookDir, err := p.EnsureBookDir(book)
		if err != nil {
			return created, err
		}
		subdirs := make([]string, 0, len(formats)+len(AssetDirs))
		for _, f := range Formats() {
			subdirs = append(subdirs, f.Dir())
		}
		subdirs = append(subdirs, AssetDirs...)

		for _, name := range subdirs {
			ok, err := p.EnsureSubdir(bookDir, name)
			if err != nil {
				return created, fmt.Errorf("could not create the %s directory in book %d: %w", name, book, err)
			}
			if ok {
				created = append(created, filepath.Join(bookDir, name))
			}
		}
	}
	return created, nil
}

func (p *Provisioner) requireDir(path string) error {
	info, err := p.fs.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", path, ErrNotDirectory)
	}
	return nil
}
