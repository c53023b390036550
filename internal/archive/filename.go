package archive

import (
	"fmt"

	"github.com/mrlokans/archivist/internal/entities"
)

const filenamePrefix = "chapter-"

// Filename derives the export filename of a chapter number: "chapter-"
// followed by the number zero-padded to four digits.
func Filename(number int) (string, error) {
	if number <= 0 {
		return "", fmt.Errorf("%w: got %d", ErrMissingChapterNumber, number)
	}
	return fmt.Sprintf("%s%04d", filenamePrefix, number), nil
}

// BookDirName returns the directory name of a book, e.g. "book03".
func BookDirName(book int) (string, error) {
	if book < entities.MinBook || book > entities.MaxBook {
		return "", fmt.Errorf("%w: %d (expected %d..%d)", ErrInvalidBook, book, entities.MinBook, entities.MaxBook)
	}
	return fmt.Sprintf("book%02d", book), nil
}
