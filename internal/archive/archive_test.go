package archive

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mrlokans/archivist/internal/archive/mocks"
	"github.com/mrlokans/archivist/internal/entities"
)

func newTestArchive(t *testing.T) (*Archive, *mocks.MockChapterStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockChapterStore(ctrl)
	return New(store, newTestFs(t), Options{Root: testRoot}, nil), store
}

func TestArchive_Path(t *testing.T) {
	a, store := newTestArchive(t)
	chapter := &entities.Chapter{Book: 3, Number: 700, Filename: "chapter-0700"}
	store.EXPECT().GetChapter(700).Return(chapter, nil)

	path, err := a.Path(700, "html")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(testRoot, "books", "book03", "html", "chapter-0700.html"), path)
}

func TestArchive_Path_Errors(t *testing.T) {
	a, store := newTestArchive(t)
	notFound := errors.New("chapter not found")
	store.EXPECT().GetChapter(9).Return(nil, notFound)

	_, err := a.Path(9, "md")
	assert.ErrorIs(t, err, notFound)

	_, err = a.Path(9, "pdf")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = a.Path(0, "md")
	assert.ErrorIs(t, err, ErrMissingChapterNumber)
}

func TestArchive_GeneratePaths(t *testing.T) {
	a, store := newTestArchive(t)
	stored := []entities.Chapter{
		{Book: 10, Number: 3094, Filename: "chapter-3094"},
		{Book: 10, Number: 3097, Filename: "chapter-3097"},
	}
	store.EXPECT().ListChapterRange(3094, 3097).Return(stored, nil)
	store.EXPECT().SaveChapter(gomock.Any()).Times(2).Return(nil)

	result, err := a.GeneratePaths(3094, 3097)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, []int{3096}, result.Missing)
	assert.Empty(t, result.Failed)
	assert.Equal(t, filepath.Join(testRoot, "books", "book10", "md", "chapter-3097.md"), stored[1].MDPath)
}

func TestArchive_ConcurrentResolve(t *testing.T) {
	a, store := newTestArchive(t)
	chapter := &entities.Chapter{Book: 1, Number: 1}
	store.EXPECT().SaveChapter(chapter).Times(1).Return(nil)

	var wg sync.WaitGroup
	paths := make([]string, 8)
	for i := range paths {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path, err := a.Resolve(chapter, FormatMarkdown)
			assert.NoError(t, err)
			paths[i] = path
		}(i)
	}
	wg.Wait()

	for _, p := range paths {
		assert.Equal(t, filepath.Join(testRoot, "books", "book01", "md", "chapter-0001.md"), p)
	}
}

func TestArchive_CheckRoot(t *testing.T) {
	fsys := newTestFs(t)
	assert.NoError(t, New(nil, fsys, Options{Root: testRoot}, nil).CheckRoot())

	missing := New(nil, fsys, Options{Root: "/srv/elsewhere"}, nil)
	assert.ErrorIs(t, missing.CheckRoot(), ErrParentMissing)

	require.NoError(t, afero.WriteFile(fsys, "/srv/file", []byte("x"), 0o644))
	file := New(nil, fsys, Options{Root: "/srv/file"}, nil)
	assert.ErrorIs(t, file.CheckRoot(), ErrNotDirectory)
}
