// Package sqlite provides the SQLite-backed publication ledger.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Every publication appends one row
// per stamped artifact: version, artifact name, uuid, content hash,
// timestamps, change status and the time it was recorded.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// The database is stored as publications.db in the ledger directory, which
// defaults to the output directory.
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
