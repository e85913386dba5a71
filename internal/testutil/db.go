// Package testutil opens an in-memory SQLite store with the production
// schema so repositories and services can be tested without PostgreSQL.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"seatbook/internal/seats"
	"seatbook/internal/shared/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory database. The pool is pinned to one
// connection so every statement sees the same memory database; code under
// test must therefore issue all statements of a transaction on the tx handle.
// SQLite also drops FOR UPDATE, so this store checks functional behaviour
// only; lock behaviour is tested on NewPostgresDB.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), database.GormConfig(false))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// SeedLayout creates rows with the given seat counts, row numbers starting at 1
func SeedLayout(t *testing.T, db *gorm.DB, seatsPerRow ...int) []seats.Seat {
	t.Helper()

	var layout []seats.Seat
	for i, n := range seatsPerRow {
		for s := 1; s <= n; s++ {
			layout = append(layout, seats.Seat{
				RowNumber:  i + 1,
				SeatNumber: s,
				Status:     seats.StatusAvailable,
			})
		}
	}
	require.NoError(t, seats.NewRepository(db).CreateSeats(context.Background(), layout))

	var created []seats.Seat
	require.NoError(t, db.Order("row_number, seat_number").Find(&created).Error)
	return created
}

// SetStatus forces a seat into a status, bypassing the booking flow
func SetStatus(t *testing.T, db *gorm.DB, row, seat int, status seats.Status) {
	t.Helper()
	res := db.Model(&seats.Seat{}).
		Where("row_number = ? AND seat_number = ?", row, seat).
		Updates(map[string]interface{}{"status": status, "is_booked": status == seats.StatusBooked})
	require.NoError(t, res.Error)
	require.Equal(t, int64(1), res.RowsAffected, fmt.Sprintf("seat %d-%d not found", row, seat))
}

// StandardLayout is the production layout: 11 rows of 7 and a last row of 3
func StandardLayout(t *testing.T, db *gorm.DB) []seats.Seat {
	t.Helper()
	return SeedLayout(t, db, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 3)
}
