package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
)

func newTestCache(t *testing.T) *AirportCache {
	t.Helper()
	cache, err := NewAirportCache(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		cache.Close() //nolint:errcheck
	})
	return cache
}

func TestAirportCache_GetPut(t *testing.T) {
	ctx := context.Background()

	naples := []domain.Airport{
		{IATA: "NAP", Name: "Naples Intl", City: "Naples", Country: "Italy"},
		{IATA: "QSR", Name: "Salerno Costa d'Amalfi", City: "Salerno", Country: "Italy"},
	}

	t.Run("miss returns not found", func(t *testing.T) {
		cache := newTestCache(t)
		_, err := cache.Get(ctx, "naples")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("round trip preserves order", func(t *testing.T) {
		cache := newTestCache(t)
		require.NoError(t, cache.Put(ctx, "naples", naples))

		got, err := cache.Get(ctx, "naples")
		require.NoError(t, err)
		assert.Equal(t, naples, got)
	})

	t.Run("put replaces previous entry", func(t *testing.T) {
		cache := newTestCache(t)
		require.NoError(t, cache.Put(ctx, "naples", naples))
		require.NoError(t, cache.Put(ctx, "naples", naples[:1]))

		got, err := cache.Get(ctx, "naples")
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})

	t.Run("keywords are independent", func(t *testing.T) {
		cache := newTestCache(t)
		require.NoError(t, cache.Put(ctx, "naples", naples))

		_, err := cache.Get(ctx, "rome")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestAirportCache_Reopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cache, err := NewAirportCache(dir)
	require.NoError(t, err)

	naples := []domain.Airport{{IATA: "NAP", Name: "Naples Intl", City: "Naples", Country: "Italy"}}
	require.NoError(t, cache.Put(ctx, "naples", naples))
	require.NoError(t, cache.Close())

	reopened, err := NewAirportCache(dir)
	require.NoError(t, err)
	defer reopened.Close() //nolint:errcheck

	got, err := reopened.Get(ctx, "naples")
	require.NoError(t, err)
	assert.Equal(t, naples, got)
}
