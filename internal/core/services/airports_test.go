package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
)

func TestAirportService_FindAirports(t *testing.T) {
	ctx := context.Background()

	naples := []domain.Airport{
		{IATA: "NAP", Name: "Naples Intl", City: "Naples", Country: "Italy"},
	}

	t.Run("empty keyword is invalid", func(t *testing.T) {
		svc := NewAirportService(&mockAirportSource{}, nil)
		_, err := svc.FindAirports(ctx, "   ")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("nil source fails", func(t *testing.T) {
		svc := NewAirportService(nil, nil)
		_, err := svc.FindAirports(ctx, "naples")
		assert.ErrorIs(t, err, domain.ErrNoBackends)
	})

	t.Run("uncached lookup goes upstream and fills the cache", func(t *testing.T) {
		source := &mockAirportSource{airports: naples}
		cache := newMockAirportCache()
		svc := NewAirportService(source, cache)

		airports, err := svc.FindAirports(ctx, "Naples")
		require.NoError(t, err)
		assert.Equal(t, naples, airports)
		assert.Equal(t, 1, source.calls)

		// Cache key is case-insensitive.
		cached, err := cache.Get(ctx, "naples")
		require.NoError(t, err)
		assert.Equal(t, naples, cached)
	})

	t.Run("cache hit skips upstream", func(t *testing.T) {
		source := &mockAirportSource{airports: naples}
		cache := newMockAirportCache()
		cache.entries["naples"] = naples
		svc := NewAirportService(source, cache)

		airports, err := svc.FindAirports(ctx, "NAPLES")
		require.NoError(t, err)
		assert.Equal(t, naples, airports)
		assert.Zero(t, source.calls)
	})

	t.Run("cache errors degrade to uncached", func(t *testing.T) {
		source := &mockAirportSource{airports: naples}
		cache := newMockAirportCache()
		cache.getErr = errors.New("disk full")
		cache.putErr = errors.New("disk full")
		svc := NewAirportService(source, cache)

		airports, err := svc.FindAirports(ctx, "naples")
		require.NoError(t, err)
		assert.Equal(t, naples, airports)
		assert.Equal(t, 1, source.calls)
	})

	t.Run("upstream not-found propagates", func(t *testing.T) {
		source := &mockAirportSource{err: domain.ErrNotFound}
		svc := NewAirportService(source, nil)

		_, err := svc.FindAirports(ctx, "atlantis")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
