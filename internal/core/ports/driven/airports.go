package driven

import (
	"context"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
)

// AirportSource resolves a city or airport keyword to reference data.
// Implemented by the flight backend's locations endpoint.
type AirportSource interface {
	// FindAirports returns airports matching the keyword.
	// Returns domain.ErrNotFound when nothing matches.
	FindAirports(ctx context.Context, keyword string) ([]domain.Airport, error)
}

// AirportCache persists airport lookups so repeated keyword queries skip the
// upstream API. Optional - when nil, every lookup goes upstream.
type AirportCache interface {
	// Get returns the cached airports for a keyword, or domain.ErrNotFound.
	Get(ctx context.Context, keyword string) ([]domain.Airport, error)

	// Put stores the airports for a keyword.
	Put(ctx context.Context, keyword string, airports []domain.Airport) error

	// Close releases resources.
	Close() error
}
