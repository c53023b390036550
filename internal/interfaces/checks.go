package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/archivist/internal/archive"
	"github.com/mrlokans/archivist/internal/cache"
	"github.com/mrlokans/archivist/internal/database"
	"github.com/mrlokans/archivist/internal/database/chapters"
	"github.com/mrlokans/archivist/internal/database/settings"
	"github.com/mrlokans/archivist/internal/exporters"
	"github.com/mrlokans/archivist/internal/http"
	"github.com/mrlokans/archivist/internal/logging"
	"github.com/mrlokans/archivist/internal/scheduler"
	"github.com/mrlokans/archivist/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// The repository and its cache are interchangeable chapter stores.
var _ cache.ChapterStore = (*chapters.Repository)(nil)
var _ archive.ChapterStore = (*chapters.Repository)(nil)
var _ archive.ChapterStore = (*cache.ChapterCache)(nil)
var _ archive.ChapterSaver = (*cache.ChapterCache)(nil)
var _ exporters.ChapterStore = (*cache.ChapterCache)(nil)
var _ http.ChapterStore = (*cache.ChapterCache)(nil)

// Settings back the run counter and the scheduler status.
var _ logging.RunCounter = (*settings.Repository)(nil)
var _ scheduler.StatusStore = (*settings.Repository)(nil)

var _ http.Pinger = (*database.Database)(nil)
var _ http.TaskStatuser = (*tasks.Client)(nil)

// =============================================================================
// Paths and Exports
// =============================================================================

var _ exporters.PathResolver = (*archive.Archive)(nil)
var _ http.PathResolver = (*archive.Archive)(nil)
var _ http.RootChecker = (*archive.Archive)(nil)

var _ exporters.ChapterExporter = (*exporters.FileExporter)(nil)
var _ http.Exporter = (*exporters.FileExporter)(nil)
var _ tasks.Exporter = (*exporters.FileExporter)(nil)
var _ scheduler.BookExporter = (*exporters.FileExporter)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ tasks.ChapterLoader = (*archive.Archive)(nil)
