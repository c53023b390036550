// Package chapters provides database operations for chapter documents.
//
// Chapters are keyed by their chapter number, which is unique across the
// whole archive. SaveChapter upserts on that key.
//
// # Usage
//
//	repo := chapters.NewRepository(db.DB)
//	chapter, err := repo.GetChapter(42)
package chapters

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/archivist/internal/entities"
)

var (
	ErrChapterNotFound = errors.New("chapter not found")
	ErrInvalidChapter  = errors.New("invalid chapter")
)

// Repository handles all chapter and tag database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new chapters repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Validate checks the constraints of a chapter document.
func Validate(chapter *entities.Chapter) error {
	switch {
	case chapter.Number <= 0:
		return fmt.Errorf("%w: chapter number must be positive, got %d", ErrInvalidChapter, chapter.Number)
	case chapter.Book < entities.MinBook || chapter.Book > entities.MaxBook:
		return fmt.Errorf("%w: book must be between %d and %d, got %d", ErrInvalidChapter, entities.MinBook, entities.MaxBook, chapter.Book)
	case strings.TrimSpace(chapter.Title) == "":
		return fmt.Errorf("%w: title is required", ErrInvalidChapter)
	case len(chapter.Title) > entities.MaxTitleLength:
		return fmt.Errorf("%w: title longer than %d characters", ErrInvalidChapter, entities.MaxTitleLength)
	}
	for _, tag := range chapter.Tags {
		if len(tag.Name) > entities.MaxTagLength {
			return fmt.Errorf("%w: tag %q longer than %d characters", ErrInvalidChapter, tag.Name, entities.MaxTagLength)
		}
	}
	return nil
}

// GetChapter retrieves a chapter by its chapter number.
func (r *Repository) GetChapter(number int) (*entities.Chapter, error) {
	var chapter entities.Chapter
	err := r.db.Preload("Tags").Where("chapter = ?", number).First(&chapter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrChapterNotFound, number)
	}
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

// ListChapters returns all chapters ordered by chapter number. A book of 0
// lists every book.
func (r *Repository) ListChapters(book int) ([]entities.Chapter, error) {
	var chapters []entities.Chapter
	query := r.db.Preload("Tags").Order("chapter ASC")
	if book != 0 {
		query = query.Where("book = ?", book)
	}
	err := query.Find(&chapters).Error
	return chapters, err
}

// ListChapterRange returns chapters with numbers in [from, to].
func (r *Repository) ListChapterRange(from, to int) ([]entities.Chapter, error) {
	var chapters []entities.Chapter
	err := r.db.Preload("Tags").
		Where("chapter BETWEEN ? AND ?", from, to).
		Order("chapter ASC").
		Find(&chapters).Error
	return chapters, err
}

// SearchChapters searches chapter titles (case-insensitive partial match).
func (r *Repository) SearchChapters(query string) ([]entities.Chapter, error) {
	var chapters []entities.Chapter
	err := r.db.Preload("Tags").
		Where("LOWER(title) LIKE LOWER(?)", "%"+query+"%").
		Order("chapter ASC").
		Find(&chapters).Error
	return chapters, err
}

// SaveChapter upserts a chapter keyed by its chapter number. Tags attached to
// the chapter replace the stored set.
func (r *Repository) SaveChapter(chapter *entities.Chapter) error {
	if err := Validate(chapter); err != nil {
		return err
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing entities.Chapter
		err := tx.Unscoped().Where("chapter = ?", chapter.Number).First(&existing).Error
		switch {
		case err == nil:
			chapter.ID = existing.ID
			chapter.CreatedAt = existing.CreatedAt
			chapter.DeletedAt = gorm.DeletedAt{}
			keepDerivedFields(chapter, &existing)
		case errors.Is(err, gorm.ErrRecordNotFound):
			chapter.ID = 0
		default:
			return err
		}

		tags, err := resolveTags(tx, chapter.TagNames())
		if err != nil {
			return err
		}

		if err := tx.Unscoped().Omit(clause.Associations).Save(chapter).Error; err != nil {
			return fmt.Errorf("failed to save chapter %d: %w", chapter.Number, err)
		}
		if err := tx.Model(chapter).Association("Tags").Replace(tags); err != nil {
			return fmt.Errorf("failed to save tags of chapter %d: %w", chapter.Number, err)
		}
		chapter.Tags = tags
		return nil
	})
}

// keepDerivedFields carries the stored filename and export paths over to an
// incoming record that leaves them empty. They change only when regenerated.
func keepDerivedFields(chapter, existing *entities.Chapter) {
	fields := []struct{ incoming, stored *string }{
		{&chapter.Filename, &existing.Filename},
		{&chapter.TextPath, &existing.TextPath},
		{&chapter.MDPath, &existing.MDPath},
		{&chapter.HTMLPath, &existing.HTMLPath},
		{&chapter.JSONPath, &existing.JSONPath},
		{&chapter.CSVPath, &existing.CSVPath},
	}
	for _, f := range fields {
		if *f.incoming == "" {
			*f.incoming = *f.stored
		}
	}
}

// DeleteChapter soft-deletes a chapter by chapter number.
func (r *Repository) DeleteChapter(number int) error {
	result := r.db.Where("chapter = ?", number).Delete(&entities.Chapter{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %d", ErrChapterNotFound, number)
	}
	return nil
}

// AddTags adds tags to a chapter, ignoring ones it already has.
func (r *Repository) AddTags(number int, names ...string) (*entities.Chapter, error) {
	chapter, err := r.GetChapter(number)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		chapter.Tags = append(chapter.Tags, entities.Tag{Name: name})
	}
	if err := r.SaveChapter(chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

// RemoveTags removes tags from a chapter. Orphaned tags are kept.
func (r *Repository) RemoveTags(number int, names ...string) (*entities.Chapter, error) {
	chapter, err := r.GetChapter(number)
	if err != nil {
		return nil, err
	}
	remove := make(map[string]bool, len(names))
	for _, name := range names {
		remove[NormalizeTag(name)] = true
	}
	kept := chapter.Tags[:0]
	for _, tag := range chapter.Tags {
		if !remove[NormalizeTag(tag.Name)] {
			kept = append(kept, tag)
		}
	}
	chapter.Tags = kept
	if err := r.SaveChapter(chapter); err != nil {
		return nil, err
	}
	return chapter, nil
}

// CountChapters returns the number of chapters per book.
func (r *Repository) CountChapters() (map[int]int64, error) {
	var rows []struct {
		Book  int
		Count int64
	}
	err := r.db.Model(&entities.Chapter{}).
		Select("book, COUNT(*) AS count").
		Group("book").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		counts[row.Book] = row.Count
	}
	return counts, nil
}

// NormalizeTag trims and lower-cases a tag name.
func NormalizeTag(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// resolveTags normalises, deduplicates and loads-or-creates tags by name.
func resolveTags(tx *gorm.DB, names []string) ([]entities.Tag, error) {
	seen := make(map[string]bool, len(names))
	var unique []string
	for _, name := range names {
		name = NormalizeTag(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		unique = append(unique, name)
	}
	sort.Strings(unique)

	tags := make([]entities.Tag, 0, len(unique))
	for _, name := range unique {
		tag := entities.Tag{Name: name}
		if err := tx.Where("name = ?", name).FirstOrCreate(&tag).Error; err != nil {
			return nil, fmt.Errorf("failed to load tag %q: %w", name, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
