// Package database provides the document store for the archive.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection by URI, migrations
//	├── chapters/        # Chapter documents and their tags
//	└── settings/        # Application settings (run counter, sync status)
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Connect to the store; bare paths and sqlite:// URIs are accepted
//	db, err := database.NewDatabase("sqlite://./archive.db", logger)
//
//	// Create domain-specific repositories
//	chaptersRepo := chapters.NewRepository(db.DB)
//	settingsRepo := settings.NewRepository(db.DB)
//
//	// Use repositories
//	chapter, err := chaptersRepo.GetChapter(42)
//	run, err := settingsRepo.IncrementInt(entities.SettingKeyRunCounter)
//
// # Interface Implementations
//
//   - chapters.Repository: implements archive.ChapterStore
//   - settings.Repository: implements logging.RunCounter, scheduler.StatusStore
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Implement the required interface
//  5. Add compile-time interface check in internal/interfaces/checks.go
package database
