// Package cache holds read-through caches in front of the document store.
package cache

import (
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/mrlokans/archivist/internal/entities"
)

const DefaultTTL = 5 * time.Minute

type ChapterStore interface {
	GetChapter(number int) (*entities.Chapter, error)
	ListChapters(book int) ([]entities.Chapter, error)
	ListChapterRange(from, to int) ([]entities.Chapter, error)
	SearchChapters(query string) ([]entities.Chapter, error)
	SaveChapter(chapter *entities.Chapter) error
	DeleteChapter(number int) error
	AddTags(number int, names ...string) (*entities.Chapter, error)
	RemoveTags(number int, names ...string) (*entities.Chapter, error)
}

// ChapterCache caches single chapter lookups by number. Lists always go to
// the store. Cached records are copied on the way in and out, so callers
// may modify what they get back.
type ChapterCache struct {
	store ChapterStore
	cache *gocache.Cache
}

func NewChapterCache(store ChapterStore, ttl time.Duration) *ChapterCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ChapterCache{
		store: store,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func key(number int) string {
	return strconv.Itoa(number)
}

func (c *ChapterCache) GetChapter(number int) (*entities.Chapter, error) {
	if cached, ok := c.cache.Get(key(number)); ok {
		return clone(cached.(entities.Chapter)), nil
	}
	chapter, err := c.store.GetChapter(number)
	if err != nil {
		return nil, err
	}
	c.cache.SetDefault(key(number), *clone(*chapter))
	return chapter, nil
}

func (c *ChapterCache) ListChapters(book int) ([]entities.Chapter, error) {
	return c.store.ListChapters(book)
}

func (c *ChapterCache) ListChapterRange(from, to int) ([]entities.Chapter, error) {
	return c.store.ListChapterRange(from, to)
}

func (c *ChapterCache) SearchChapters(query string) ([]entities.Chapter, error) {
	return c.store.SearchChapters(query)
}

func (c *ChapterCache) SaveChapter(chapter *entities.Chapter) error {
	c.cache.Delete(key(chapter.Number))
	return c.store.SaveChapter(chapter)
}

func (c *ChapterCache) DeleteChapter(number int) error {
	c.cache.Delete(key(number))
	return c.store.DeleteChapter(number)
}

func (c *ChapterCache) AddTags(number int, names ...string) (*entities.Chapter, error) {
	c.cache.Delete(key(number))
	return c.store.AddTags(number, names...)
}

func (c *ChapterCache) RemoveTags(number int, names ...string) (*entities.Chapter, error) {
	c.cache.Delete(key(number))
	return c.store.RemoveTags(number, names...)
}

// Invalidate drops one chapter from the cache.
func (c *ChapterCache) Invalidate(number int) {
	c.cache.Delete(key(number))
}

// Flush drops every cached chapter.
func (c *ChapterCache) Flush() {
	c.cache.Flush()
}

func (c *ChapterCache) Len() int {
	return c.cache.ItemCount()
}

func clone(chapter entities.Chapter) *entities.Chapter {
	if chapter.Tags != nil {
		chapter.Tags = append([]entities.Tag(nil), chapter.Tags...)
	}
	return &chapter
}
