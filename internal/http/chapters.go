package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/archivist/internal/archive"
	"github.com/mrlokans/archivist/internal/entities"
	"github.com/mrlokans/archivist/internal/exporters"
	"github.com/mrlokans/archivist/internal/tasks"
)

// ChapterStore defines the document store operations the chapter endpoints use.
type ChapterStore interface {
	GetChapter(number int) (*entities.Chapter, error)
	ListChapters(book int) ([]entities.Chapter, error)
	SearchChapters(query string) ([]entities.Chapter, error)
	AddTags(number int, names ...string) (*entities.Chapter, error)
	RemoveTags(number int, names ...string) (*entities.Chapter, error)
}

// PathResolver resolves export paths through the archive.
type PathResolver interface {
	Path(number int, tag string) (string, error)
	Paths(number int) (*entities.Chapter, map[archive.Format]string, error)
}

type Exporter interface {
	ExportChapter(chapter *entities.Chapter, formats []archive.Format) (map[archive.Format]string, error)
	ExportBook(book int, formats []archive.Format) (exporters.ExportResult, error)
}

// ChapterSummary is the list representation of a chapter.
type ChapterSummary struct {
	Chapter  int      `json:"chapter"`
	Book     int      `json:"book"`
	Section  int      `json:"section,omitempty"`
	Title    string   `json:"title"`
	Filename string   `json:"filename,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

func summarize(ch *entities.Chapter) ChapterSummary {
	return ChapterSummary{
		Chapter:  ch.Number,
		Book:     ch.Book,
		Section:  ch.Section,
		Title:    ch.Title,
		Filename: ch.Filename,
		Tags:     ch.TagNames(),
	}
}

type ChaptersController struct {
	store    ChapterStore
	paths    PathResolver
	exporter Exporter
	queue    *tasks.Client
	log      *slog.Logger
}

// NewChaptersController creates the chapter endpoints. When queue is set,
// exports are enqueued instead of run inside the request.
func NewChaptersController(store ChapterStore, paths PathResolver, exporter Exporter, queue *tasks.Client, log *slog.Logger) *ChaptersController {
	if log == nil {
		log = slog.Default()
	}
	return &ChaptersController{store: store, paths: paths, exporter: exporter, queue: queue, log: log}
}

// ListChapters returns chapter summaries, optionally for one book or
// matching a title query.
// GET /api/chapters?book=N&q=...
func (cc *ChaptersController) ListChapters(c *gin.Context) {
	var (
		list []entities.Chapter
		err  error
	)
	if q := c.Query("q"); q != "" {
		list, err = cc.store.SearchChapters(q)
	} else {
		book := 0
		if raw := c.Query("book"); raw != "" {
			book, err = strconv.Atoi(raw)
			if err != nil {
				respondBadRequest(c, "invalid book")
				return
			}
			if _, err := archive.BookDirName(book); err != nil {
				respondBadRequest(c, err.Error())
				return
			}
		}
		list, err = cc.store.ListChapters(book)
	}
	if err != nil {
		respondInternalError(c, cc.log, err, "list chapters")
		return
	}

	summaries := make([]ChapterSummary, 0, len(list))
	for i := range list {
		summaries = append(summaries, summarize(&list[i]))
	}
	c.IndentedJSON(http.StatusOK, gin.H{"chapters": summaries, "total": len(summaries)})
}

// GetChapter returns the full chapter record.
// GET /api/chapters/:number
func (cc *ChaptersController) GetChapter(c *gin.Context) {
	number, ok := parseIntParam(c, "number")
	if !ok {
		return
	}
	chapter, err := cc.store.GetChapter(number)
	if err != nil {
		respondArchiveError(c, cc.log, err, "get chapter")
		return
	}
	c.IndentedJSON(http.StatusOK, chapter)
}

// GetPath resolves the export path of one format.
// GET /api/chapters/:number/paths/:format
func (cc *ChaptersController) GetPath(c *gin.Context) {
	number, ok := parseIntParam(c, "number")
	if !ok {
		return
	}
	format := c.Param("format")
	path, err := cc.paths.Path(number, format)
	if err != nil {
		respondArchiveError(c, cc.log, err, "resolve path")
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"chapter": number, "format": format, "path": path})
}

// GetPaths resolves and stores every export path of a chapter.
// GET /api/chapters/:number/paths
func (cc *ChaptersController) GetPaths(c *gin.Context) {
	number, ok := parseIntParam(c, "number")
	if !ok {
		return
	}
	_, paths, err := cc.paths.Paths(number)
	if err != nil {
		respondArchiveError(c, cc.log, err, "resolve paths")
		return
	}
	out := make(map[string]string, len(paths))
	for f, p := range paths {
		out[f.String()] = p
	}
	c.IndentedJSON(http.StatusOK, gin.H{"chapter": number, "paths": out})
}

// ExportChapter writes a chapter in the requested formats.
// POST /api/chapters/:number/export?format=md&format=html
func (cc *ChaptersController) ExportChapter(c *gin.Context) {
	number, ok := parseIntParam(c, "number")
	if !ok {
		return
	}
	formats, ok := parseFormats(c)
	if !ok {
		return
	}

	chapter, err := cc.store.GetChapter(number)
	if err != nil {
		respondArchiveError(c, cc.log, err, "export chapter")
		return
	}

	if cc.queue != nil {
		ids, err := cc.queue.Add(tasks.ExportChapterTask{Chapter: number, Formats: formatNames(formats)}).Save()
		if err != nil {
			respondInternalError(c, cc.log, err, "enqueue chapter export")
			return
		}
		respondAccepted(c, "export queued", gin.H{"task_ids": ids})
		return
	}

	written, err := cc.exporter.ExportChapter(chapter, formats)
	if err != nil {
		respondArchiveError(c, cc.log, err, "export chapter")
		return
	}
	out := make(map[string]string, len(written))
	for f, p := range written {
		out[f.String()] = p
	}
	c.IndentedJSON(http.StatusOK, gin.H{"chapter": number, "files": out})
}

// ExportBook exports every chapter of a book.
// POST /api/books/:book/export?format=...
func (cc *ChaptersController) ExportBook(c *gin.Context) {
	book, ok := parseIntParam(c, "book")
	if !ok {
		return
	}
	if _, err := archive.BookDirName(book); err != nil {
		respondBadRequest(c, err.Error())
		return
	}
	formats, ok := parseFormats(c)
	if !ok {
		return
	}

	if cc.queue != nil {
		ids, err := cc.queue.Add(tasks.ExportBookTask{Book: book, Formats: formatNames(formats)}).Save()
		if err != nil {
			respondInternalError(c, cc.log, err, "enqueue book export")
			return
		}
		respondAccepted(c, "export queued", gin.H{"task_ids": ids})
		return
	}

	result, err := cc.exporter.ExportBook(book, formats)
	if err != nil {
		respondArchiveError(c, cc.log, err, "export book")
		return
	}
	c.IndentedJSON(http.StatusOK, result)
}

type tagsRequest struct {
	Tags []string `json:"tags" binding:"required"`
}

// AddTags adds tags to a chapter.
// POST /api/chapters/:number/tags
func (cc *ChaptersController) AddTags(c *gin.Context) {
	number, ok := parseIntParam(c, "number")
	if !ok {
		return
	}
	var req tagsRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Tags) == 0 {
		respondBadRequest(c, "tags are required")
		return
	}
	chapter, err := cc.store.AddTags(number, req.Tags...)
	if err != nil {
		respondArchiveError(c, cc.log, err, "add tags")
		return
	}
	c.IndentedJSON(http.StatusOK, summarize(chapter))
}

// RemoveTag removes one tag from a chapter.
// DELETE /api/chapters/:number/tags/:tag
func (cc *ChaptersController) RemoveTag(c *gin.Context) {
	number, ok := parseIntParam(c, "number")
	if !ok {
		return
	}
	chapter, err := cc.store.RemoveTags(number, c.Param("tag"))
	if err != nil {
		respondArchiveError(c, cc.log, err, "remove tag")
		return
	}
	c.IndentedJSON(http.StatusOK, summarize(chapter))
}
