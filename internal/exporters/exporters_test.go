package exporters

import (
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/archivist/internal/archive"
	"github.com/mrlokans/archivist/internal/database/chapters"
	"github.com/mrlokans/archivist/internal/entities"
)

const testRoot = "/archive"

func setupExporter(t *testing.T) (*FileExporter, *chapters.Repository, afero.Fs) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "export.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Chapter{}, &entities.Tag{}))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll(testRoot, 0o755))

	repo := chapters.NewRepository(db)
	paths := archive.New(repo, fsys, archive.Options{Root: testRoot}, nil)
	return NewFileExporter(fsys, paths, repo, nil), repo, fsys
}

func sampleChapter(number int) *entities.Chapter {
	return &entities.Chapter{
		Book:     1,
		Number:   number,
		Title:    "The Road North",
		URL:      "https://example.com/chapter",
		Text:     "Plain body text.",
		Markdown: "# The Road North\n\nSome *emphasis* here.",
		Tags:     []entities.Tag{{Name: "travel"}, {Name: "arc-1"}},
	}
}

func TestRender(t *testing.T) {
	md := newMarkdown()
	chapter := sampleChapter(3)
	chapter.Filename = "chapter-0003"

	t.Run("text", func(t *testing.T) {
		out, err := Render(md, chapter, archive.FormatText)
		require.NoError(t, err)
		assert.Equal(t, "Plain body text.", string(out))
	})

	t.Run("markdown", func(t *testing.T) {
		out, err := Render(md, chapter, archive.FormatMarkdown)
		require.NoError(t, err)
		assert.Equal(t, chapter.Markdown, string(out))
	})

	t.Run("html rendered from markdown", func(t *testing.T) {
		out, err := Render(md, chapter, archive.FormatHTML)
		require.NoError(t, err)
		assert.Contains(t, string(out), "<h1>The Road North</h1>")
		assert.Contains(t, string(out), "<em>emphasis</em>")
	})

	t.Run("stored html wins", func(t *testing.T) {
		withHTML := *chapter
		withHTML.HTML = "<p>stored</p>"
		out, err := Render(md, &withHTML, archive.FormatHTML)
		require.NoError(t, err)
		assert.Equal(t, "<p>stored</p>", string(out))
	})

	t.Run("json", func(t *testing.T) {
		out, err := Render(md, chapter, archive.FormatJSON)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), "{\n    \"book\": 1,"))

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(out, &decoded))
		assert.Equal(t, float64(3), decoded["chapter"])
		assert.Equal(t, "chapter-0003", decoded["filename"])
		assert.Equal(t, []any{"travel", "arc-1"}, decoded["tags"])
	})

	t.Run("csv", func(t *testing.T) {
		out, err := Render(md, chapter, archive.FormatCSV)
		require.NoError(t, err)
		rows, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, csvHeader, rows[0])
		assert.Equal(t, "3", rows[1][1])
		assert.Equal(t, "travel;arc-1", rows[1][6])
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Render(md, chapter, archive.Format("pdf"))
		assert.ErrorIs(t, err, archive.ErrUnknownFormat)
	})
}

func TestFileExporter_ExportChapter(t *testing.T) {
	exporter, repo, fsys := setupExporter(t)
	require.NoError(t, repo.SaveChapter(sampleChapter(12)))
	chapter, err := repo.GetChapter(12)
	require.NoError(t, err)

	written, err := exporter.ExportChapter(chapter, []archive.Format{archive.FormatMarkdown, archive.FormatText})
	require.NoError(t, err)

	mdPath := filepath.Join(testRoot, "books", "book01", "md", "chapter-0012.md")
	assert.Equal(t, mdPath, written[archive.FormatMarkdown])
	content, err := afero.ReadFile(fsys, mdPath)
	require.NoError(t, err)
	assert.Equal(t, chapter.Markdown, string(content))

	stored, err := repo.GetChapter(12)
	require.NoError(t, err)
	assert.Equal(t, "chapter-0012", stored.Filename)
	assert.Equal(t, mdPath, stored.MDPath)
	assert.Equal(t, filepath.Join(testRoot, "books", "book01", "text", "chapter-0012.txt"), stored.TextPath)
	assert.Empty(t, stored.HTMLPath)
}

func TestFileExporter_ExportChapter_RecordsOwnPaths(t *testing.T) {
	exporter, repo, fsys := setupExporter(t)
	require.NoError(t, repo.SaveChapter(sampleChapter(21)))
	chapter, err := repo.GetChapter(21)
	require.NoError(t, err)

	written, err := exporter.ExportChapter(chapter, nil)
	require.NoError(t, err)
	require.Len(t, written, len(archive.Formats()))

	jsonPath := written[archive.FormatJSON]
	first, err := afero.ReadFile(fsys, jsonPath)
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(first, &record))
	for _, format := range archive.Formats() {
		assert.Equal(t, written[format], record[format.String()+"_path"], "%s path", format)
	}
	assert.Equal(t, jsonPath, record["json_path"])

	firstCSV, err := afero.ReadFile(fsys, written[archive.FormatCSV])
	require.NoError(t, err)
	assert.Contains(t, string(firstCSV), written[archive.FormatCSV])

	t.Run("exporting again produces the same bytes", func(t *testing.T) {
		reloaded, err := repo.GetChapter(21)
		require.NoError(t, err)
		_, err = exporter.ExportChapter(reloaded, nil)
		require.NoError(t, err)

		second, err := afero.ReadFile(fsys, jsonPath)
		require.NoError(t, err)
		assert.Equal(t, string(first), string(second))

		secondCSV, err := afero.ReadFile(fsys, written[archive.FormatCSV])
		require.NoError(t, err)
		assert.Equal(t, string(firstCSV), string(secondCSV))
	})
}

func TestFileExporter_ExportBook(t *testing.T) {
	exporter, repo, fsys := setupExporter(t)
	for _, n := range []int{1, 2, 3} {
		require.NoError(t, repo.SaveChapter(sampleChapter(n)))
	}
	other := sampleChapter(40)
	other.Book = 2
	require.NoError(t, repo.SaveChapter(other))

	result, err := exporter.ExportBook(1, nil)
	require.NoError(t, err)
	assert.Equal(t, ExportResult{ChaptersProcessed: 3, FilesWritten: 15}, result)

	exists, err := afero.Exists(fsys, filepath.Join(testRoot, "books", "book02"))
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = exporter.ExportBook(11, nil)
	assert.ErrorIs(t, err, archive.ErrInvalidBook)
}

func TestFileExporter_CountsFailures(t *testing.T) {
	exporter, _, _ := setupExporter(t)
	broken := []entities.Chapter{{Book: 1, Title: "No number"}}

	result, err := exporter.Export(broken, []archive.Format{archive.FormatText})
	require.NoError(t, err)
	assert.Equal(t, ExportResult{ChaptersFailed: 1, FilesFailed: 1}, result)
}
