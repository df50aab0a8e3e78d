// Package sqlite provides the SQLite-backed run ledger.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. The ledger records every batch run and the outcome of each
// transcript it handled, so `tclean history` can show what was cleaned, when,
// and why a file failed.
//
// # Schema
//
// The schema is managed through versioned migrations embedded from the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql
// files; only .up.sql files are applied.
//
// # Data Location
//
// By default, the database is stored at ~/.tclean/data/ledger.db.
//
// # Thread Safety
//
// All operations are safe for concurrent use. The database runs in WAL mode.
package sqlite
