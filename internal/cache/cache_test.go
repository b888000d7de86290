package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZinnunMalikov/clipsmart-main/internal/cache"
	"github.com/ZinnunMalikov/clipsmart-main/internal/config"
	"github.com/ZinnunMalikov/clipsmart-main/internal/domain"
	"github.com/ZinnunMalikov/clipsmart-main/internal/logger"
)

func newTestCache(t *testing.T) (*cache.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := config.RedisConfig{TranscriptionTTL: time.Hour, EventExtractTTL: time.Minute}
	return cache.New(rdb, cfg, logger.NewNop(), nil), mr
}

func TestLatex_RoundTripAndExpiry(t *testing.T) {
	t.Parallel()

	c, mr := newTestCache(t)
	ctx := context.Background()

	_, err := c.Latex(ctx, "d:abc")
	require.ErrorIs(t, err, cache.ErrMiss)

	require.NoError(t, c.PutLatex(ctx, "d:abc", `\frac{1}{2}`))
	got, err := c.Latex(ctx, "d:abc")
	require.NoError(t, err)
	assert.Equal(t, `\frac{1}{2}`, got)

	mr.FastForward(2 * time.Hour)
	_, err = c.Latex(ctx, "d:abc")
	require.ErrorIs(t, err, cache.ErrMiss)
}

func TestEvent_RoundTrip(t *testing.T) {
	t.Parallel()

	c, mr := newTestCache(t)
	ctx := context.Background()
	ev := domain.EventDetails{StartDate: "20250101T090000Z", EndDate: "20250101T100000Z", Summary: "Kickoff", HasValidDate: true}

	_, err := c.Event(ctx, "kickoff jan 1")
	require.ErrorIs(t, err, cache.ErrMiss)

	require.NoError(t, c.PutEvent(ctx, "kickoff jan 1", ev))
	got, err := c.Event(ctx, "kickoff jan 1")
	require.NoError(t, err)
	assert.Equal(t, ev, got)

	// keyed by content hash, so raw text never lands in Redis keys
	for _, k := range mr.Keys() {
		assert.NotContains(t, k, "kickoff")
	}

	mr.FastForward(2 * time.Minute)
	_, err = c.Event(ctx, "kickoff jan 1")
	require.ErrorIs(t, err, cache.ErrMiss)
}

func TestEvent_CorruptEntryIsAMiss(t *testing.T) {
	t.Parallel()

	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.PutEvent(ctx, "x", domain.EventDetails{Summary: "ok"}))
	keys := mr.Keys()
	require.Len(t, keys, 1)
	require.NoError(t, mr.Set(keys[0], "{not json"))

	_, err := c.Event(ctx, "x")
	require.ErrorIs(t, err, cache.ErrMiss)
	assert.False(t, mr.Exists(keys[0]))
}

func TestPing(t *testing.T) {
	t.Parallel()

	c, mr := newTestCache(t)
	require.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	_, err := cache.NewClient(config.RedisConfig{})
	require.Error(t, err)

	mr := miniredis.RunT(t)
	rdb, err := cache.NewClient(config.RedisConfig{Address: mr.Addr()})
	require.NoError(t, err)
	assert.NoError(t, rdb.Close())
}
