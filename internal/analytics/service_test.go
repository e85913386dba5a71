package analytics_test

import (
	"context"
	"testing"
	"time"

	"seatbook/internal/analytics"
	"seatbook/internal/bookings"
	"seatbook/internal/seats"
	"seatbook/internal/shared/constants"
	"seatbook/internal/testutil"
	"seatbook/internal/users"
	"seatbook/pkg/cache"
	"seatbook/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedLayout(t, db, 4, 4)
	testutil.SetStatus(t, db, 2, 4, seats.StatusBlocked)

	seatRepo := seats.NewRepository(db)
	ledger := bookings.NewRepository(db)
	booker := bookings.NewService(bookings.Deps{
		DB:       db,
		Bookings: ledger,
		Seats:    seatRepo,
		Users:    users.NewRepository(db),
		Logger:   logger.Discard(),
	}, bookings.Options{MaxAttempts: 1})

	ctx := context.Background()
	alice := uuid.New()
	_, err := booker.Book(ctx, alice, 3)
	require.NoError(t, err)
	_, err = booker.Book(ctx, alice, 1)
	require.NoError(t, err)
	cancelled, err := booker.Book(ctx, uuid.New(), 2)
	require.NoError(t, err)
	id, err := uuid.Parse(cancelled.BookingID)
	require.NoError(t, err)
	_, err = ledger.Cancel(ctx, []uuid.UUID{id})
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	svc := analytics.NewService(analytics.NewRepository(db), cache.NewService(client))
	dashboard, err := svc.GetDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(8), dashboard.TotalSeats)
	require.Len(t, dashboard.Rows, 2)
	// the cancelled booking's seats were never released by hand, so row 2
	// still holds them as booked
	assert.Equal(t, analytics.RowOccupancy{RowNumber: 1, Total: 4, Booked: 4, OccupancyRate: 1}, dashboard.Rows[0])
	assert.Equal(t, int64(1), dashboard.Rows[1].Blocked)

	assert.Equal(t, int64(2), dashboard.Bookings.ActiveBookings)
	assert.Equal(t, int64(1), dashboard.Bookings.CancelledBookings)
	assert.Equal(t, int64(4), dashboard.Bookings.BookedSeats)
	assert.Equal(t, int64(1), dashboard.Bookings.UsersWithBookings)
	assert.InDelta(t, 2.0, dashboard.Bookings.AverageSeatsPerBooking, 1e-9)
	assert.InDelta(t, 1.0/3.0, dashboard.Bookings.CancellationRate, 1e-9)

	require.Len(t, dashboard.Daily, 7)
	today := dashboard.Daily[6]
	assert.Equal(t, time.Now().UTC().Format(time.DateOnly), today.Date)
	assert.Equal(t, int64(3), today.Created)
	assert.Equal(t, int64(1), today.Cancelled)

	assert.True(t, mr.Exists(constants.CACHE_KEY_ANALYTICS_DASHBOARD))

	// availability invalidation drops the dashboard as well
	seats.NewService(seatRepo, cache.NewService(client), time.Minute, logger.Discard()).InvalidateAvailability(ctx)
	assert.False(t, mr.Exists(constants.CACHE_KEY_ANALYTICS_DASHBOARD))
}

func TestRowOccupancy_EmptyVenue(t *testing.T) {
	db := testutil.NewDB(t)
	svc := analytics.NewService(analytics.NewRepository(db), nil)

	rows, err := svc.GetRowOccupancy(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)

	dashboard, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)
	assert.Zero(t, dashboard.OccupancyRate)
}
