package database

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/archivist/internal/entities"
)

// ErrEmptyURI is returned when no connection URI is configured for the
// requested database.
var ErrEmptyURI = errors.New("database URI is empty")

const sqliteScheme = "sqlite://"

type Database struct {
	DB *gorm.DB

	path string
	log  *slog.Logger
}

// DSN converts a connection URI into a SQLite DSN. Both bare paths and
// sqlite:// URIs are accepted; query parameters are passed through.
func DSN(uri string) (string, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return "", ErrEmptyURI
	}
	return strings.TrimPrefix(uri, sqliteScheme), nil
}

// NewDatabase connects to the document store at uri and migrates the schema.
func NewDatabase(uri string, log *slog.Logger) (*Database, error) {
	if log == nil {
		log = slog.Default()
	}
	dsn, err := DSN(uri)
	if err != nil {
		return nil, err
	}

	path := dsn
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.Chapter{},
		&entities.Tag{},
		&entities.Setting{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Debug("database initialized", "path", path)

	return &Database{DB: db, path: path, log: log}, nil
}

// Path returns the filesystem path of the database without query parameters.
func (d *Database) Path() string {
	return d.path
}

func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
