package archive

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mrlokans/archivist/internal/archive/mocks"
	"github.com/mrlokans/archivist/internal/entities"
)

func newTestResolver(t *testing.T) (*Resolver, *mocks.MockChapterStore, *countingFs) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockChapterStore(ctrl)
	fsys := newTestFs(t)
	return NewResolver(store, NewProvisioner(fsys, testRoot, 0, nil), nil), store, fsys
}

func TestResolver_Resolve(t *testing.T) {
	resolver, store, fsys := newTestResolver(t)
	chapter := &entities.Chapter{Book: 2, Number: 57, Title: "Fifty Seven"}

	store.EXPECT().SaveChapter(chapter).Times(1).Return(nil)

	path, err := resolver.Resolve(chapter, FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(testRoot, "books", "book02", "md", "chapter-0057.md"), path)
	assert.Equal(t, "chapter-0057", chapter.Filename)
	assert.Len(t, fsys.mkdirs, 3)

	t.Run("second call is idempotent", func(t *testing.T) {
		again, err := resolver.Resolve(chapter, FormatMarkdown)
		require.NoError(t, err)
		assert.Equal(t, path, again)
		assert.Len(t, fsys.mkdirs, 3)
	})

	t.Run("other format reuses the filename", func(t *testing.T) {
		text, err := resolver.Resolve(chapter, FormatText)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(testRoot, "books", "book02", "text", "chapter-0057.txt"), text)
		assert.Len(t, fsys.mkdirs, 4)
	})
}

func TestResolver_Resolve_Errors(t *testing.T) {
	resolver, _, fsys := newTestResolver(t)

	tests := []struct {
		name    string
		chapter *entities.Chapter
		format  Format
		wantErr error
	}{
		{name: "unknown format", chapter: &entities.Chapter{Book: 1, Number: 1}, format: "pdf", wantErr: ErrUnknownFormat},
		{name: "nil chapter", chapter: nil, format: FormatMarkdown, wantErr: ErrMissingChapterNumber},
		{name: "no chapter number", chapter: &entities.Chapter{Book: 1}, format: FormatMarkdown, wantErr: ErrMissingChapterNumber},
		{name: "book out of range", chapter: &entities.Chapter{Book: 11, Number: 1}, format: FormatMarkdown, wantErr: ErrInvalidBook},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.Resolve(tt.chapter, tt.format)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Empty(t, fsys.mkdirs)
}

func TestResolver_ResolveTag(t *testing.T) {
	resolver, store, _ := newTestResolver(t)
	chapter := &entities.Chapter{Book: 1, Number: 3, Filename: "chapter-0003"}
	store.EXPECT().SaveChapter(gomock.Any()).Times(0)

	path, err := resolver.ResolveTag(chapter, "JSON")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(testRoot, "books", "book01", "json", "chapter-0003.json"), path)

	_, err = resolver.ResolveTag(chapter, "docx")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestResolver_GenerateFilename_SaveFailure(t *testing.T) {
	resolver, store, _ := newTestResolver(t)
	chapter := &entities.Chapter{Book: 1, Number: 12, Filename: "old-name"}

	store.EXPECT().SaveChapter(chapter).Return(errors.New("disk full"))

	_, err := resolver.GenerateFilename(chapter)
	require.Error(t, err)
	assert.Equal(t, "old-name", chapter.Filename)
}

func TestResolver_ResolveAll(t *testing.T) {
	resolver, store, _ := newTestResolver(t)
	chapter := &entities.Chapter{Book: 1, Number: 8}

	// One save for the filename, one for the paths.
	store.EXPECT().SaveChapter(chapter).Times(2).Return(nil)

	paths, err := resolver.ResolveAll(chapter)
	require.NoError(t, err)
	assert.Len(t, paths, len(Formats()))
	assert.Equal(t, paths[FormatCSV], chapter.CSVPath)
	assert.Equal(t, paths[FormatHTML], chapter.HTMLPath)
	assert.Equal(t, paths[FormatJSON], chapter.JSONPath)
	assert.Equal(t, paths[FormatMarkdown], chapter.MDPath)
	assert.Equal(t, paths[FormatText], chapter.TextPath)

	t.Run("unchanged paths are not saved again", func(t *testing.T) {
		_, err := resolver.ResolveAll(chapter)
		require.NoError(t, err)
	})
}
