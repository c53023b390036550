// Package interfaces documents the core abstractions used throughout the application.
//
// Consumers declare the narrow interface they need next to the code that uses
// it; checks.go pins the concrete types that satisfy them.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - ChapterStore: chapter reads and writes (internal/archive, internal/cache,
//     internal/exporters, internal/http)
//   - ChapterSaver: persists derived chapter fields (internal/archive/resolver.go)
//   - RunCounter: run numbering for log records (internal/logging)
//   - StatusStore: last export sync outcome (internal/scheduler)
//
// ## Path and Export Interfaces
//
//   - PathResolver: export path of a chapter in a format (internal/exporters,
//     internal/http)
//   - ChapterExporter / Exporter / BookExporter: writes chapter files
//     (internal/exporters, internal/http, internal/tasks, internal/scheduler)
//   - ChapterLoader: loads a chapter for a queued export (internal/tasks)
//
// # Adding a New Export Format
//
//  1. Add the format to internal/archive/format.go with its directory,
//     extension and the chapter field that records its path.
//
//  2. Teach exporters.Render how to produce its bytes (internal/exporters/content.go).
//
//  3. Add a test case to the Render table in internal/exporters/exporters_test.go.
//
// Paths, provisioning, the HTTP API, queued exports and the scheduler pick up
// the new format through archive.Formats().
//
// # Adding a New Chapter Store
//
// Implement archive.ChapterStore and cache.ChapterStore and add a check to
// checks.go:
//
//	var _ cache.ChapterStore = (*mystore.Repository)(nil)
package interfaces
