package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"

	"stocktake/core/apperror"
)

// MySQL server error numbers that signal lock contention.
const (
	mysqlLockWaitTimeout = 1205
	mysqlDeadlock        = 1213
)

// IsConflict reports whether err is transient write contention.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDeadlock || myErr.Number == mysqlLockWaitTimeout
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "database table is locked")
}

// Retry runs fn until it succeeds, fails with a non-conflict error, or
// attempts are exhausted. Exhaustion yields apperror.ErrStorageConflict.
func Retry(ctx context.Context, attempts int, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); !IsConflict(err) {
			return err
		}
		if i == attempts-1 {
			break
		}
		backoff := time.Duration(i+1) * 20 * time.Millisecond
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("%w after %d attempts: %v", apperror.ErrStorageConflict, attempts, err)
}
