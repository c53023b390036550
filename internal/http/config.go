package http

import (
	"log/slog"

	"github.com/mrlokans/archivist/internal/tasks"
)

// RouterConfig contains all dependencies needed to create the HTTP router.
type RouterConfig struct {
	Store    ChapterStore
	Paths    PathResolver
	Exporter Exporter
	Database Pinger
	Root     RootChecker

	// Task queue client (optional). When set, exports are enqueued.
	TaskClient *tasks.Client

	Version string
	Logger  *slog.Logger
}
