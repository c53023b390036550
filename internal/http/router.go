package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log))

	health := NewHealthController(cfg.Database, cfg.Root, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	chapters := NewChaptersController(cfg.Store, cfg.Paths, cfg.Exporter, cfg.TaskClient, log)
	api := router.Group("/api")
	{
		api.GET("/chapters", chapters.ListChapters)
		api.GET("/chapters/:number", chapters.GetChapter)
		api.GET("/chapters/:number/paths", chapters.GetPaths)
		api.GET("/chapters/:number/paths/:format", chapters.GetPath)
		api.POST("/chapters/:number/export", chapters.ExportChapter)
		api.POST("/chapters/:number/tags", chapters.AddTags)
		api.DELETE("/chapters/:number/tags/:tag", chapters.RemoveTag)
		api.POST("/books/:book/export", chapters.ExportBook)
	}

	if cfg.TaskClient != nil {
		tasksController := NewTasksController(cfg.TaskClient, log)
		api.GET("/tasks/:id", tasksController.GetTaskStatus)
	}

	return router
}

// requestLogger logs each request at debug level, and failed ones at warn.
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		status := c.Writer.Status()
		level := slog.LevelDebug
		if status >= http.StatusBadRequest {
			level = slog.LevelWarn
		}
		log.Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status)
	}
}
