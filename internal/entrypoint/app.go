package entrypoint

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"github.com/mrlokans/archivist/internal/archive"
	"github.com/mrlokans/archivist/internal/cache"
	"github.com/mrlokans/archivist/internal/config"
	"github.com/mrlokans/archivist/internal/database"
	"github.com/mrlokans/archivist/internal/database/chapters"
	"github.com/mrlokans/archivist/internal/database/settings"
	"github.com/mrlokans/archivist/internal/exporters"
	"github.com/mrlokans/archivist/internal/logging"
	"github.com/mrlokans/archivist/internal/render"
)

// Options override configuration values for a single invocation.
type Options struct {
	Database string // named connection, empty for the configured default
	Root     string // archive root, empty for the configured default
	Console  io.Writer
	Fs       afero.Fs
}

// App holds the wired components shared by the CLI commands and the server.
type App struct {
	Config   *config.Config
	Log      *slog.Logger
	Run      int
	DB       *database.Database
	Chapters *cache.ChapterCache
	Settings *settings.Repository
	Archive  *archive.Archive
	Exporter *exporters.FileExporter
	Console  *render.Console
	Fs       afero.Fs

	logger *logging.Logger
}

// Open connects to the named database, bumps the run counter and wires the
// archive components on top of it.
func Open(cfg *config.Config, opts Options) (*App, error) {
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	root := opts.Root
	if root == "" {
		root = cfg.Archive.Root
	}

	uri, err := cfg.Database.URI(opts.Database)
	if err != nil {
		return nil, err
	}

	// Records logged before the run number is known go to stderr only.
	bootstrap, err := logging.New(logging.Options{Level: cfg.Logging.Level}, 0)
	if err != nil {
		return nil, err
	}
	db, err := database.NewDatabase(uri, bootstrap.Logger)
	if err != nil {
		return nil, err
	}

	settingsRepo := settings.NewRepository(db.DB)
	run, err := logging.NextRun(settingsRepo)
	if err != nil {
		db.Close()
		return nil, err
	}
	logger, err := logging.New(logging.Options{Dir: cfg.Logging.Dir, Level: cfg.Logging.Level}, run)
	if err != nil {
		db.Close()
		return nil, err
	}
	log := logger.Logger

	store := cache.NewChapterCache(chapters.NewRepository(db.DB), cfg.Cache.TTL)
	arch := archive.New(store, fsys, archive.Options{Root: root, DirMode: cfg.Archive.DirMode}, log)

	log.Info("archive opened", "database", db.Path(), "root", arch.Root())

	return &App{
		Config:   cfg,
		Log:      log,
		Run:      run,
		DB:       db,
		Chapters: store,
		Settings: settingsRepo,
		Archive:  arch,
		Exporter: exporters.NewFileExporter(fsys, arch, store, log),
		Console:  render.NewConsole(console),
		Fs:       fsys,
		logger:   logger,
	}, nil
}

func (a *App) Close() error {
	var errs []error
	if a.DB != nil {
		errs = append(errs, a.DB.Close())
	}
	if a.logger != nil {
		errs = append(errs, a.logger.Close())
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("failed to close archive: %w", err)
	}
	return nil
}
