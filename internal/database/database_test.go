package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/archivist/internal/database/chapters"
	"github.com/mrlokans/archivist/internal/entities"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
		wantErr  bool
	}{
		{name: "bare path", uri: "./archive.db", expected: "./archive.db"},
		{name: "sqlite scheme", uri: "sqlite:///var/lib/archive.db", expected: "/var/lib/archive.db"},
		{name: "keeps query", uri: "sqlite://archive.db?_busy_timeout=5000", expected: "archive.db?_busy_timeout=5000"},
		{name: "trims whitespace", uri: "  archive.db ", expected: "archive.db"},
		{name: "empty", uri: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn, err := DSN(tt.uri)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrEmptyURI)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, dsn)
		})
	}
}

func TestNewDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "archive.db")

	db, err := NewDatabase("sqlite://"+dbPath, nil)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, dbPath, db.Path())
	assert.NoError(t, db.Ping())

	for _, model := range []any{&entities.Chapter{}, &entities.Tag{}, &entities.Setting{}} {
		assert.True(t, db.DB.Migrator().HasTable(model))
	}
}

func TestNewDatabase_ReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "archive.db")

	db, err := NewDatabase(dbPath, nil)
	require.NoError(t, err)
	repo := chapters.NewRepository(db.DB)
	require.NoError(t, repo.SaveChapter(&entities.Chapter{Book: 1, Number: 1, Title: "One"}))
	require.NoError(t, db.Close())

	db, err = NewDatabase(dbPath, nil)
	require.NoError(t, err)
	defer db.Close()

	chapter, err := chapters.NewRepository(db.DB).GetChapter(1)
	require.NoError(t, err)
	assert.Equal(t, "One", chapter.Title)
}

func TestNewDatabase_EmptyURI(t *testing.T) {
	_, err := NewDatabase(" ", nil)
	assert.ErrorIs(t, err, ErrEmptyURI)
}
