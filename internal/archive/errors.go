package archive

import "errors"

var (
	// ErrMissingChapterNumber is returned when a chapter has no usable
	// chapter number to derive a filename from.
	ErrMissingChapterNumber = errors.New("chapter number is missing")

	// ErrUnknownFormat is returned for export format tags outside the
	// supported set.
	ErrUnknownFormat = errors.New("unknown export format")

	// ErrInvalidBook is returned for book numbers outside 1..10.
	ErrInvalidBook = errors.New("invalid book number")

	// ErrParentMissing is returned when a directory cannot be provisioned
	// because its parent does not exist.
	ErrParentMissing = errors.New("parent directory does not exist")

	// ErrNotDirectory is returned when a path that must be a directory is
	// occupied by something else.
	ErrNotDirectory = errors.New("not a directory")
)
