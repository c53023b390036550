package entrypoint

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/archivist/internal/archive"
	http_controllers "github.com/mrlokans/archivist/internal/http"
	"github.com/mrlokans/archivist/internal/scheduler"
	"github.com/mrlokans/archivist/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then shuts it down
// within the configured timeout.
func Serve(app *App, router *gin.Engine, onShutdown ShutdownFunc) error {
	cfg := app.Config
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		app.Log.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	case <-quit:
	}
	app.Log.Info("shutting down server", "timeout", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Call shutdown callback first (e.g., to stop task queue)
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	app.Log.Info("server exiting")
	return nil
}

// Run wires the task queue, the export scheduler and the HTTP API around an
// opened archive and serves until interrupted.
func Run(app *App, version string) error {
	cfg := app.Config
	gin.SetMode(gin.ReleaseMode)

	var (
		taskClient    *tasks.Client
		taskCtxCancel context.CancelFunc
	)
	if cfg.Tasks.Enabled {
		taskCfg := tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		}
		client, err := tasks.NewClient(app.DB.Path(), taskCfg, app.Log)
		if err != nil {
			return fmt.Errorf("failed to create task client: %w", err)
		}
		defer client.Close()

		client.Register(
			tasks.NewExportChapterQueue(app.Archive, app.Exporter, app.Log),
			tasks.NewExportBookQueue(app.Exporter, app.Log),
		)

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go client.Start(taskCtx)
		taskClient = client
	} else {
		app.Log.Info("task queue disabled, exports run inside requests")
	}

	formats, err := archive.ParseFormats(cfg.ExportSync.Formats)
	if err != nil {
		return fmt.Errorf("invalid export sync formats: %w", err)
	}
	exportSync := scheduler.NewExportSyncScheduler(app.Exporter, app.Settings, scheduler.ExportSyncConfig{
		Enabled:  cfg.ExportSync.Enabled,
		Schedule: cfg.ExportSync.Schedule,
		Formats:  formats,
	}, app.Log)
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	defer schedulerCancel()
	if err := exportSync.Start(schedulerCtx); err != nil {
		return err
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Store:      app.Chapters,
		Paths:      app.Archive,
		Exporter:   app.Exporter,
		Database:   app.DB,
		Root:       app.Archive,
		TaskClient: taskClient,
		Version:    version,
		Logger:     app.Log,
	})

	onShutdown := func(ctx context.Context) {
		exportSync.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	return Serve(app, router, onShutdown)
}
