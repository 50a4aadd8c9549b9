// Package store is the gorm persistence layer of the stock-take service.
//
// Every mutation is a single atomic effect at the database: count increments
// are upserts evaluated server side, status transitions and correction
// accepts are conditional updates, and session deletion cascades inside one
// transaction. Writes that hit lock contention are retried a bounded number
// of times (database.Retry) before failing with apperror.ErrStorageConflict.
//
// Transactions travel in the context (database.WithTx) so collaborators such
// as the database tool registry join them.
package store
