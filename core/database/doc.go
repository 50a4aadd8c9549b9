// Package database handles database connections, transactions and schema inspection.
//
// It wraps GORM to configure MySQL (production) or SQLite (tests, single-device
// installs) connections from the application's configuration.
//
// # Transactions
//
// WithTx stores a *gorm.DB transaction in a context; Conn hands it back to any
// repository holding the same database, so an accepted correction and the
// registry quantity update commit or roll back together.
//
// # Contention
//
// Retry re-runs a write that failed with MySQL deadlock/lock-wait errors or a
// locked SQLite database, and reports apperror.ErrStorageConflict once the
// attempt budget is spent.
//
// # Schema Inspection
//
// GetTableColumns backs the integrity feature, which verifies that the
// stock-take tables carry every column the models expect.
package database
