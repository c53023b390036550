package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/archivist/internal/archive"
	"github.com/mrlokans/archivist/internal/entities"
	"github.com/mrlokans/archivist/internal/exporters"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// NextRunTime returns the next activation of schedule after now.
func NextRunTime(schedule string, now time.Time) (time.Time, error) {
	s, err := parser.Parse(schedule)
	if err != nil {
		return time.Time{}, err
	}
	return s.Next(now), nil
}

// BookExporter exports a book; book 0 is the whole archive.
type BookExporter interface {
	ExportBook(book int, formats []archive.Format) (exporters.ExportResult, error)
}

// StatusStore records the outcome of the last run.
type StatusStore interface {
	SetSetting(key, value string) error
}

type ExportSyncConfig struct {
	Enabled  bool
	Schedule string
	Formats  []archive.Format
}

// ExportSyncScheduler periodically exports the whole archive.
type ExportSyncScheduler struct {
	exporter BookExporter
	status   StatusStore
	config   ExportSyncConfig
	log      *slog.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	runMu      sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewExportSyncScheduler(exporter BookExporter, status StatusStore, cfg ExportSyncConfig, log *slog.Logger) *ExportSyncScheduler {
	if log == nil {
		log = slog.Default()
	}
	return &ExportSyncScheduler{
		exporter: exporter,
		status:   status,
		config:   cfg,
		log:      log.With("component", "export_sync"),
		cron:     cron.New(cron.WithParser(parser)),
	}
}

// Start begins the scheduler if the export sync is enabled.
func (s *ExportSyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if !s.config.Enabled {
		s.log.Info("export sync scheduler disabled")
		return nil
	}
	if err := ValidateSchedule(s.config.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.config.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.config.Schedule, func() {
		s.runSync()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule export job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	next, _ := NextRunTime(s.config.Schedule, time.Now())
	s.log.Info("export sync scheduler started", "schedule", s.config.Schedule, "next_run", next)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()
	return nil
}

// Stop waits for a running export to finish and stops the scheduler.
func (s *ExportSyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.cron.Remove(s.entryID)
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning = false
	s.cancelFunc = nil

	s.log.Info("export sync scheduler stopped")
}

// RunNow triggers an immediate export in the background.
func (s *ExportSyncScheduler) RunNow() {
	go s.runSync()
}

func (s *ExportSyncScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRunTime returns when the next export will occur.
func (s *ExportSyncScheduler) GetNextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// runSync exports the whole archive. Overlapping runs are skipped.
func (s *ExportSyncScheduler) runSync() {
	if !s.runMu.TryLock() {
		s.log.Warn("export sync skipped, previous run still in progress")
		return
	}
	defer s.runMu.Unlock()

	s.log.Info("export sync starting")
	startTime := time.Now()

	result, err := s.exporter.ExportBook(0, s.config.Formats)
	if err != nil {
		msg := fmt.Sprintf("Export failed: %v", err)
		s.log.Error("export sync failed", "error", err)
		s.setStatus(StatusFailed, msg)
		return
	}

	duration := time.Since(startTime)
	msg := fmt.Sprintf("Exported %d chapters (%d files, %d failed) in %v",
		result.ChaptersProcessed, result.FilesWritten, result.ChaptersFailed, duration.Round(time.Millisecond))
	s.log.Info("export sync finished", "chapters", result.ChaptersProcessed, "files", result.FilesWritten, "failed", result.ChaptersFailed)
	s.setStatus(StatusSuccess, msg)
}

func (s *ExportSyncScheduler) setStatus(status, message string) {
	if s.status == nil {
		return
	}
	values := map[string]string{
		entities.SettingKeyExportSyncLastAt:      time.Now().UTC().Format(time.RFC3339),
		entities.SettingKeyExportSyncLastStatus:  status,
		entities.SettingKeyExportSyncLastMessage: message,
	}
	for key, value := range values {
		if err := s.status.SetSetting(key, value); err != nil {
			s.log.Error("failed to record export sync status", "key", key, "error", err)
		}
	}
}
