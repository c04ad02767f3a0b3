package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func TestCache_GetSetDelete(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewCache(NewClient(mr.Addr()), "test:")
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.True(t, mr.Exists("test:k"))

	b, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("v"), b)

	require.NoError(t, c.Delete(ctx, "k"))
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCache_Expires(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewCache(NewClient(mr.Addr()), "")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Second))
	mr.FastForward(2 * time.Second)
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRateLimiter_Allow(t *testing.T) {
	mr := miniredis.RunT(t)
	rl := NewRateLimiter(NewClient(mr.Addr()))
	ctx := context.Background()

	ok, n, err := rl.Allow(ctx, "rl:test", 2, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(1), n)

	ok, n, _ = rl.Allow(ctx, "rl:test", 2, time.Minute)
	require.True(t, ok)
	require.Equal(t, int64(2), n)

	ok, n, _ = rl.Allow(ctx, "rl:test", 2, time.Minute)
	require.False(t, ok)
	require.Equal(t, int64(3), n)

	require.NoError(t, rl.Reset(ctx, "rl:test"))
	ok, n, _ = rl.Allow(ctx, "rl:test", 2, time.Minute)
	require.True(t, ok)
	require.Equal(t, int64(1), n)
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	rl := NewRateLimiter(NewClient(mr.Addr()))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _, err := rl.Allow(ctx, "rl:window", 1, time.Minute)
		require.NoError(t, err)
	}
	mr.FastForward(61 * time.Second)
	ok, n, err := rl.Allow(ctx, "rl:window", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(1), n)
}

func TestRateLimiter_HitsDoNotExtendWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	rl := NewRateLimiter(NewClient(mr.Addr()))
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, _, err := rl.Allow(ctx, "rl:fixed", 5, time.Minute)
		require.NoError(t, err)
	}
	mr.FastForward(50 * time.Second)
	ok, n, err := rl.Allow(ctx, "rl:fixed", 5, time.Minute)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, int64(7), n)

	mr.FastForward(11 * time.Second)
	ok, n, err = rl.Allow(ctx, "rl:fixed", 5, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(1), n)
}
