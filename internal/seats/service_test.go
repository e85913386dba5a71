package seats_test

import (
	"context"
	"testing"
	"time"

	"seatbook/internal/seats"
	"seatbook/internal/shared/constants"
	"seatbook/internal/testutil"
	"seatbook/pkg/cache"
	"seatbook/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCachedService(t *testing.T) (seats.Service, seats.Repository, *miniredis.Miniredis) {
	t.Helper()
	db := testutil.NewDB(t)
	testutil.SeedLayout(t, db, 3, 1)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := seats.NewRepository(db)
	return seats.NewService(repo, cache.NewService(client), time.Minute, logger.Discard()), repo, mr
}

func TestService_CountSeatsCachedUntilInvalidated(t *testing.T) {
	svc, repo, mr := newCachedService(t)
	ctx := context.Background()

	counts, err := svc.CountSeats(ctx)
	require.NoError(t, err)
	assert.Equal(t, seats.SeatCountResponse{Available: 4, Total: 4}, *counts)
	assert.True(t, mr.Exists(constants.CACHE_KEY_SEATS_COUNT))

	all, err := repo.List(ctx, seats.Filter{})
	require.NoError(t, err)
	require.NoError(t, repo.MarkBooked(ctx, []uint{all[0].ID}))

	stale, err := svc.CountSeats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stale.Available)

	svc.InvalidateAvailability(ctx)
	assert.False(t, mr.Exists(constants.CACHE_KEY_SEATS_COUNT))

	fresh, err := svc.CountSeats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), fresh.Available)
	assert.Equal(t, int64(1), fresh.Booked)
	assert.Equal(t, int64(4), fresh.Total)
}

func TestService_ListAvailableOrdered(t *testing.T) {
	svc, _, _ := newCachedService(t)

	got, err := svc.ListAvailable(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, seats.Position{Row: 1, SeatNumber: 1}, got[0].Position)
	assert.Equal(t, seats.Position{Row: 2, SeatNumber: 1}, got[3].Position)
}

func TestService_WorksWithoutRedis(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedLayout(t, db, 2)
	svc := seats.NewService(seats.NewRepository(db), nil, 0, logger.Discard())

	counts, err := svc.CountSeats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts.Total)

	row := 1
	list, err := svc.ListSeats(context.Background(), seats.Filter{Row: &row})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	svc.InvalidateAvailability(context.Background())
}

func TestService_InvalidateClearsLateWriteBack(t *testing.T) {
	svc, _, mr := newCachedService(t)
	ctx := context.Background()

	_, err := svc.CountSeats(ctx)
	require.NoError(t, err)

	svc.InvalidateAvailability(ctx)
	assert.False(t, mr.Exists(constants.CACHE_KEY_SEATS_COUNT))

	// a reader that loaded before the commit stores its stale view afterwards
	require.NoError(t, mr.Set(constants.CACHE_KEY_SEATS_COUNT, `{"available":4,"total":4}`))

	assert.Eventually(t, func() bool {
		return !mr.Exists(constants.CACHE_KEY_SEATS_COUNT)
	}, 2*time.Second, 20*time.Millisecond)
}
