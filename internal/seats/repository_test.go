package seats_test

import (
	"context"
	"testing"

	"seatbook/internal/seats"
	"seatbook/internal/shared/dberr"
	"seatbook/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seatIDs(ss []seats.Seat) []uint {
	out := make([]uint, len(ss))
	for i, s := range ss {
		out[i] = s.ID
	}
	return out
}

func TestRepository_ListFilters(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedLayout(t, db, 3, 2)
	testutil.SetStatus(t, db, 1, 2, seats.StatusBooked)
	repo := seats.NewRepository(db)
	ctx := context.Background()

	all, err := repo.List(ctx, seats.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	available, err := repo.List(ctx, seats.Filter{AvailableOnly: true})
	require.NoError(t, err)
	assert.Len(t, available, 4)

	row := 1
	rowOne, err := repo.List(ctx, seats.Filter{AvailableOnly: true, Row: &row})
	require.NoError(t, err)
	require.Len(t, rowOne, 2)
	assert.Equal(t, 1, rowOne[0].SeatNumber)
	assert.Equal(t, 3, rowOne[1].SeatNumber)
}

func TestRepository_CountByStatus(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.StandardLayout(t, db)
	testutil.SetStatus(t, db, 12, 3, seats.StatusBlocked)
	testutil.SetStatus(t, db, 1, 1, seats.StatusBooked)

	counts, err := seats.NewRepository(db).CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(78), counts[seats.StatusAvailable])
	assert.Equal(t, int64(1), counts[seats.StatusBooked])
	assert.Equal(t, int64(1), counts[seats.StatusBlocked])
}

func TestRepository_LockAvailableOrdered(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedLayout(t, db, 2, 2)
	testutil.SetStatus(t, db, 1, 1, seats.StatusBlocked)

	err := db.Transaction(func(tx *gorm.DB) error {
		locked, err := seats.NewRepository(db).WithTx(tx).LockAvailable(context.Background())
		require.NoError(t, err)
		require.Len(t, locked, 3)
		assert.Equal(t, [2]int{1, 2}, [2]int{locked[0].RowNumber, locked[0].SeatNumber})
		assert.Equal(t, [2]int{2, 1}, [2]int{locked[1].RowNumber, locked[1].SeatNumber})
		assert.Equal(t, [2]int{2, 2}, [2]int{locked[2].RowNumber, locked[2].SeatNumber})
		return nil
	})
	require.NoError(t, err)
}

func TestRepository_MarkBookedGuarded(t *testing.T) {
	db := testutil.NewDB(t)
	layout := testutil.SeedLayout(t, db, 3)
	repo := seats.NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.MarkBooked(ctx, seatIDs(layout[:2])))

	var first seats.Seat
	require.NoError(t, db.First(&first, layout[0].ID).Error)
	assert.Equal(t, seats.StatusBooked, first.Status)
	assert.True(t, first.IsBooked)

	// seat 2 is already booked, so only one of two rows can change
	err := repo.MarkBooked(ctx, seatIDs(layout[1:]))
	assert.ErrorIs(t, err, dberr.ErrConflict)
}

func TestRepository_Release(t *testing.T) {
	db := testutil.NewDB(t)
	layout := testutil.SeedLayout(t, db, 4)
	testutil.SetStatus(t, db, 1, 4, seats.StatusBlocked)
	repo := seats.NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.MarkBooked(ctx, seatIDs(layout[:3])))

	released, err := repo.Release(ctx, []uint{layout[0].ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), released)

	released, err = repo.ReleaseAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), released)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), counts[seats.StatusAvailable])
	assert.Zero(t, counts[seats.StatusBlocked])

	released, err = repo.Release(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, released)
}

func TestRepository_LockingStatementsOnPostgres(t *testing.T) {
	db, rec := testutil.PostgresDryRun(t)
	repo := seats.NewRepository(db)
	ctx := context.Background()

	_, err := repo.LockAvailable(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `^SELECT \* FROM "seats" WHERE status = .+ ORDER BY row_number ASC, seat_number ASC FOR UPDATE$`, rec.Last())

	_, err = repo.LockAll(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `^SELECT "id" FROM "seats" ORDER BY row_number ASC, seat_number ASC FOR UPDATE$`, rec.Last())
}

func TestRepository_LockAllThenReleaseAll(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedLayout(t, db, 3, 2)
	testutil.SetStatus(t, db, 1, 1, seats.StatusBooked)
	testutil.SetStatus(t, db, 2, 2, seats.StatusBlocked)

	err := db.Transaction(func(tx *gorm.DB) error {
		repo := seats.NewRepository(db).WithTx(tx)
		locked, err := repo.LockAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(5), locked)

		released, err := repo.ReleaseAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(2), released)
		return nil
	})
	require.NoError(t, err)
}
