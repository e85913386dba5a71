package dberr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantConflict bool
		wantStorage  bool
	}{
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, wantConflict: true},
		{name: "deadlock", err: fmt.Errorf("exec: %w", &pgconn.PgError{Code: "40P01"}), wantConflict: true},
		{name: "lock not available", err: &pgconn.PgError{Code: "55P03"}, wantConflict: true},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, wantStorage: true},
		{name: "plain error", err: errors.New("connection reset"), wantStorage: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("lock seats", tt.err)
			assert.Equal(t, tt.wantConflict, errors.Is(got, ErrConflict))
			assert.Equal(t, tt.wantStorage, errors.Is(got, ErrStorage))
			assert.ErrorIs(t, got, tt.err)
			assert.Contains(t, got.Error(), "lock seats")
		})
	}
}

func TestClassify_PassThrough(t *testing.T) {
	assert.NoError(t, Classify("noop", nil))

	already := Conflict("mark booked", 3, 2)
	assert.Same(t, already, Classify("outer", already))

	assert.Equal(t, context.Canceled, Classify("query", context.Canceled))
}

func TestConflict(t *testing.T) {
	err := Conflict("mark booked", 4, 3)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "expected 4 rows, updated 3")
}
