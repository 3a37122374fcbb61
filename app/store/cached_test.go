package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCached_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("caches on first read, returns cached on second", func(t *testing.T) {
		underlying := newTestStore(t)
		cached, err := NewCached(underlying, 100)
		require.NoError(t, err)
		defer cached.Close()

		require.NoError(t, cached.Set(ctx, "p1", "theme", "light"))

		v, err := cached.Get(ctx, "p1", "theme")
		require.NoError(t, err)
		assert.Equal(t, "light", v)
		stats := cached.Stats()
		assert.Equal(t, int64(1), stats.Misses)
		assert.Equal(t, int64(0), stats.Hits)

		v, err = cached.Get(ctx, "p1", "theme")
		require.NoError(t, err)
		assert.Equal(t, "light", v)
		stats = cached.Stats()
		assert.Equal(t, int64(1), stats.Misses)
		assert.Equal(t, int64(1), stats.Hits)
	})

	t.Run("caches absent keys", func(t *testing.T) {
		underlying := newTestStore(t)
		cached, err := NewCached(underlying, 100)
		require.NoError(t, err)
		defer cached.Close()

		_, err = cached.Get(ctx, "p1", "theme")
		require.ErrorIs(t, err, ErrNotFound)
		_, err = cached.Get(ctx, "p1", "theme")
		require.ErrorIs(t, err, ErrNotFound)

		stats := cached.Stats()
		assert.Equal(t, int64(1), stats.Misses)
		assert.Equal(t, int64(1), stats.Hits)
	})

	t.Run("invalidates cache on Set", func(t *testing.T) {
		underlying := newTestStore(t)
		cached, err := NewCached(underlying, 100)
		require.NoError(t, err)
		defer cached.Close()

		_, err = cached.Get(ctx, "p1", "theme")
		require.ErrorIs(t, err, ErrNotFound)

		require.NoError(t, cached.Set(ctx, "p1", "theme", "dark"))
		v, err := cached.Get(ctx, "p1", "theme")
		require.NoError(t, err)
		assert.Equal(t, "dark", v)
		assert.Equal(t, int64(2), cached.Stats().Misses)
	})

	t.Run("invalidates cache on Delete", func(t *testing.T) {
		underlying := newTestStore(t)
		cached, err := NewCached(underlying, 100)
		require.NoError(t, err)
		defer cached.Close()

		require.NoError(t, cached.Set(ctx, "p1", "theme", "light"))
		_, err = cached.Get(ctx, "p1", "theme")
		require.NoError(t, err)

		require.NoError(t, cached.Delete(ctx, "p1", "theme"))
		_, err = cached.Get(ctx, "p1", "theme")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("does not mix profiles", func(t *testing.T) {
		underlying := newTestStore(t)
		cached, err := NewCached(underlying, 100)
		require.NoError(t, err)
		defer cached.Close()

		require.NoError(t, cached.Set(ctx, "p1", "theme", "light"))
		require.NoError(t, cached.Set(ctx, "p2", "theme", "dark"))
		v1, err := cached.Get(ctx, "p1", "theme")
		require.NoError(t, err)
		v2, err := cached.Get(ctx, "p2", "theme")
		require.NoError(t, err)
		assert.Equal(t, "light", v1)
		assert.Equal(t, "dark", v2)
	})
}

func TestCached_List(t *testing.T) {
	ctx := context.Background()
	underlying := newTestStore(t)
	cached, err := NewCached(underlying, 100)
	require.NoError(t, err)
	defer cached.Close()

	require.NoError(t, cached.Set(ctx, "p1", "theme", "light"))
	entries, err := cached.List(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "light", entries[0].Value)
}
