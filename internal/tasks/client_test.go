package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/archivist/internal/archive"
	"github.com/mrlokans/archivist/internal/entities"
	"github.com/mrlokans/archivist/internal/exporters"
	"github.com/mrlokans/archivist/internal/logging"
)

func TestDatabasePath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "supergene-tasks.db"), DatabasePath(filepath.Join("data", "supergene.db")))
	assert.Equal(t, "archive-tasks", DatabasePath("archive"))
}

func TestNewClient(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg, logging.Discard())
	require.NoError(t, err)
	require.NotNil(t, client)

	// Verify tasks database was created
	tasksDBPath := filepath.Join(tmpDir, "test-tasks.db")
	_, err = os.Stat(tasksDBPath)
	assert.NoError(t, err, "tasks database should be created")

	err = client.Close()
	assert.NoError(t, err)
}

func TestClientStartStop(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg, logging.Discard())
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.Start(ctx)

	// Give it time to start
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	success := client.Stop(stopCtx)
	assert.True(t, success, "stop should succeed gracefully")
}

type exporterStub struct {
	chapters chan int
	books    chan int
	formats  []archive.Format
	err      error
}

func (e *exporterStub) Chapter(number int) (*entities.Chapter, error) {
	if e.err != nil {
		return nil, e.err
	}
	return &entities.Chapter{Book: 1, Number: number, Title: "Stub"}, nil
}

func (e *exporterStub) ExportChapter(chapter *entities.Chapter, formats []archive.Format) (map[archive.Format]string, error) {
	e.formats = formats
	e.chapters <- chapter.Number
	return map[archive.Format]string{}, nil
}

func (e *exporterStub) ExportBook(book int, formats []archive.Format) (exporters.ExportResult, error) {
	e.formats = formats
	e.books <- book
	return exporters.ExportResult{ChaptersProcessed: 1}, nil
}

func TestExportQueues(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	cfg := DefaultConfig()
	cfg.Workers = 1

	client, err := NewClient(dbPath, cfg, logging.Discard())
	require.NoError(t, err)
	defer client.Close()

	stub := &exporterStub{chapters: make(chan int, 1), books: make(chan int, 1)}
	client.Register(
		NewExportChapterQueue(stub, stub, logging.Discard()),
		NewExportBookQueue(stub, logging.Discard()),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	ids, err := client.Add(ExportChapterTask{Chapter: 77, Formats: []string{"md"}}, ExportBookTask{Book: 2}).Save()
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	select {
	case n := <-stub.chapters:
		assert.Equal(t, 77, n)
	case <-time.After(5 * time.Second):
		t.Fatal("chapter export was not executed within timeout")
	}
	select {
	case n := <-stub.books:
		assert.Equal(t, 2, n)
	case <-time.After(5 * time.Second):
		t.Fatal("book export was not executed within timeout")
	}
}

func TestExportChapterProcessor(t *testing.T) {
	t.Run("invalid format", func(t *testing.T) {
		stub := &exporterStub{chapters: make(chan int, 1)}
		err := ExportChapterProcessor(stub, stub, logging.Discard())(context.Background(), ExportChapterTask{Chapter: 1, Formats: []string{"pdf"}})
		assert.ErrorIs(t, err, archive.ErrUnknownFormat)
	})

	t.Run("missing chapter", func(t *testing.T) {
		stub := &exporterStub{err: errors.New("chapter not found")}
		err := ExportChapterProcessor(stub, stub, logging.Discard())(context.Background(), ExportChapterTask{Chapter: 5})
		assert.ErrorIs(t, err, stub.err)
	})

	t.Run("all formats by default", func(t *testing.T) {
		stub := &exporterStub{chapters: make(chan int, 1)}
		err := ExportChapterProcessor(stub, stub, logging.Discard())(context.Background(), ExportChapterTask{Chapter: 5})
		require.NoError(t, err)
		assert.Equal(t, archive.Formats(), stub.formats)
	})

	t.Run("not configured", func(t *testing.T) {
		err := ExportChapterProcessor(nil, nil, logging.Discard())(context.Background(), ExportChapterTask{Chapter: 5})
		assert.Error(t, err)
	})
}

func TestExportTaskConfig(t *testing.T) {
	chapterCfg := ExportChapterTask{Chapter: 1}.Config()
	assert.Equal(t, "export_chapter", chapterCfg.Name)
	assert.Equal(t, 3, chapterCfg.MaxAttempts)
	assert.Equal(t, 30*time.Second, chapterCfg.Backoff)
	assert.Equal(t, 2*time.Minute, chapterCfg.Timeout)
	assert.NotNil(t, chapterCfg.Retention)

	bookCfg := ExportBookTask{Book: 1}.Config()
	assert.Equal(t, "export_book", bookCfg.Name)
	assert.Equal(t, 1, bookCfg.MaxAttempts)
	assert.Equal(t, 60*time.Minute, bookCfg.Timeout)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, time.Minute, cfg.RetryDelay)
	assert.Equal(t, 5*time.Minute, cfg.TaskTimeout)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
	assert.Equal(t, 24*time.Hour, cfg.RetentionDuration)
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{Workers: 4, ReleaseAfter: -time.Second}.withDefaults()

	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 15*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
	assert.Equal(t, DefaultConfig(), Config{}.withDefaults())
}

var _ backlite.Task = ExportChapterTask{}
var _ backlite.Task = ExportBookTask{}
