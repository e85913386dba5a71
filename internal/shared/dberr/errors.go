// Package dberr classifies storage failures so callers can tell retryable
// transaction conflicts apart from genuine storage faults.
package dberr

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrConflict marks a transaction that lost a race with a concurrent one.
	// The operation may be retried.
	ErrConflict = errors.New("concurrent update conflict")
	// ErrStorage marks any other failure of the underlying store.
	ErrStorage = errors.New("storage error")
)

const (
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateLockNotAvailable     = "55P03"
)

// Classify wraps err with ErrConflict or ErrStorage. Errors that are already
// classified, and context cancellations, pass through unchanged.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrConflict) || errors.Is(err, ErrStorage) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlStateSerializationFailure, sqlStateDeadlockDetected, sqlStateLockNotAvailable:
			return fmt.Errorf("%w: %s: %w", ErrConflict, op, err)
		}
	}

	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// Conflict builds an ErrConflict for guarded writes that touched fewer rows
// than expected.
func Conflict(op string, want, got int64) error {
	return fmt.Errorf("%w: %s: expected %d rows, updated %d", ErrConflict, op, want, got)
}
