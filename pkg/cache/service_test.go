package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counts struct {
	Available int64 `json:"available"`
	Total     int64 `json:"total"`
}

func newTestService(t *testing.T) (Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(client), mr
}

func TestService_GetSet(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	var got counts
	assert.ErrorIs(t, svc.Get(ctx, "k", &got), ErrCacheMiss)

	require.NoError(t, svc.Set(ctx, "k", counts{Available: 3, Total: 80}, time.Minute))
	require.NoError(t, svc.Get(ctx, "k", &got))
	assert.Equal(t, counts{Available: 3, Total: 80}, got)

	mr.FastForward(2 * time.Minute)
	assert.ErrorIs(t, svc.Get(ctx, "k", &got), ErrCacheMiss)
}

func TestService_GetOrSet(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return counts{Available: 80, Total: 80}, nil
	}

	var first, second counts
	require.NoError(t, svc.GetOrSet(ctx, "seats:count", time.Minute, fetch, &first))
	require.NoError(t, svc.GetOrSet(ctx, "seats:count", time.Minute, fetch, &second))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("seats:count"))
}

func TestService_GetOrSetFetcherError(t *testing.T) {
	svc, mr := newTestService(t)

	boom := errors.New("db down")
	var dest counts
	err := svc.GetOrSet(context.Background(), "k", time.Minute, func() (interface{}, error) {
		return nil, boom
	}, &dest)

	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("k"))
}

func TestService_DeletePattern(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "seatbook:seats:count", 1, time.Minute))
	require.NoError(t, svc.Set(ctx, "seatbook:seats:available", 2, time.Minute))
	require.NoError(t, svc.Set(ctx, "seatbook:other", 3, time.Minute))

	require.NoError(t, svc.DeletePattern(ctx, "seatbook:seats:*"))

	assert.False(t, mr.Exists("seatbook:seats:count"))
	assert.False(t, mr.Exists("seatbook:seats:available"))
	assert.True(t, mr.Exists("seatbook:other"))
}

func TestService_RedisDownFallsBackToFetcher(t *testing.T) {
	svc, mr := newTestService(t)
	mr.Close()

	var dest counts
	err := svc.GetOrSet(context.Background(), "k", time.Minute, func() (interface{}, error) {
		return counts{Available: 1, Total: 2}, nil
	}, &dest)

	require.NoError(t, err)
	assert.Equal(t, counts{Available: 1, Total: 2}, dest)
}

func TestNoop(t *testing.T) {
	svc := NewService(nil)
	ctx := context.Background()

	var dest counts
	assert.ErrorIs(t, svc.Get(ctx, "k", &dest), ErrCacheMiss)
	require.NoError(t, svc.Set(ctx, "k", 1, time.Minute))
	require.NoError(t, svc.DeletePattern(ctx, "*"))
	require.NoError(t, svc.GetOrSet(ctx, "k", time.Minute, func() (interface{}, error) {
		return counts{Total: 9}, nil
	}, &dest))
	assert.Equal(t, int64(9), dest.Total)
}
