package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// ErrUnknownDatabase is returned when a database name does not match any
// configured connection.
var ErrUnknownDatabase = errors.New("unknown database name")

type (
	Config struct {
		HTTP
		Global
		Database
		Archive
		Logging
		Cache
		Tasks
		ExportSync
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Name      string // Connection used when none is given explicitly: supergene or local
		Supergene string // URI of the main archive database
		Local     string // URI of the local working copy
	}
	Archive struct {
		Root    string
		DirMode os.FileMode
	}
	Logging struct {
		Dir   string
		Level string
	}
	Cache struct {
		TTL time.Duration
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	ExportSync struct {
		Enabled  bool
		Schedule string // Cron format: "0 3 * * *" = daily at 03:00
		Formats  []string
	}
)

// LoadDotEnv loads a .env file from the working directory when present.
// Variables already set in the environment win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("database_name", DatabaseSupergene)
	v.SetDefault("supergene", DefaultSupergeneURI)
	v.SetDefault("localdb", DefaultLocalURI)

	v.SetDefault("archive_root", ".")
	v.SetDefault("archive_dir_mode", "0755")
	v.SetDefault("log_dir", DefaultLogDir)
	v.SetDefault("log_level", "info")
	v.SetDefault("cache_ttl", "5m")

	// Task queue defaults
	v.SetDefault("tasks_enabled", false)
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "1m")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "24h")

	v.SetDefault("export_sync_enabled", false)
	v.SetDefault("export_sync_schedule", "0 3 * * *") // Daily at 03:00
	v.SetDefault("export_sync_formats", "")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Name:      v.GetString("DATABASE_NAME"),
			Supergene: v.GetString("SUPERGENE"),
			Local:     v.GetString("LOCALDB"),
		},
		Archive: Archive{
			Root:    v.GetString("ARCHIVE_ROOT"),
			DirMode: parseDirMode(v.GetString("ARCHIVE_DIR_MODE")),
		},
		Logging: Logging{
			Dir:   v.GetString("LOG_DIR"),
			Level: v.GetString("LOG_LEVEL"),
		},
		Cache: Cache{
			TTL: v.GetDuration("CACHE_TTL"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		ExportSync: ExportSync{
			Enabled:  v.GetBool("EXPORT_SYNC_ENABLED"),
			Schedule: v.GetString("EXPORT_SYNC_SCHEDULE"),
			Formats:  splitList(v.GetString("EXPORT_SYNC_FORMATS")),
		},
	}
}

// URI returns the connection URI of a named database. An empty name selects
// the configured default.
func (d Database) URI(name string) (string, error) {
	if name == "" {
		name = d.Name
	}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case DatabaseSupergene:
		return d.Supergene, nil
	case DatabaseLocal, "localdb":
		return d.Local, nil
	default:
		return "", fmt.Errorf("%w: %q (expected %s or %s)", ErrUnknownDatabase, name, DatabaseSupergene, DatabaseLocal)
	}
}

// parseDirMode reads an octal permission string such as "0755". Invalid
// values fall back to DefaultDirMode.
func parseDirMode(s string) os.FileMode {
	mode, err := strconv.ParseUint(strings.TrimSpace(s), 8, 32)
	if err != nil || mode == 0 || mode > 0o777 {
		return DefaultDirMode
	}
	return os.FileMode(mode)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
