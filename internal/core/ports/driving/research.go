package driving

import (
	"context"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
)

// ResearchService runs the travel research pipeline: normalize the query,
// select backends, fan out, synthesize one answer.
type ResearchService interface {
	// Research answers a natural-language travel query from every relevant
	// backend. Partial backend failure yields a degraded answer; only
	// domain.ErrMalformedQuery and *domain.AllSourcesFailedError are
	// surfaced as hard failures.
	Research(ctx context.Context, query domain.Query) (*domain.SynthesizedAnswer, error)

	// SearchFlights answers a structured flight query. It is the degenerate
	// single-backend case of the same pipeline and follows the same fan-in
	// rules.
	SearchFlights(ctx context.Context, spec domain.FlightSpec) (*domain.SynthesizedAnswer, error)
}

// AirportService resolves airport/city keywords to IATA reference data.
type AirportService interface {
	// FindAirports returns airports matching the keyword.
	// Returns domain.ErrNotFound when nothing matches.
	FindAirports(ctx context.Context, keyword string) ([]domain.Airport, error)
}
