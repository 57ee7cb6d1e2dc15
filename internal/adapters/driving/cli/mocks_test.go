package cli

import (
	"context"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
)

// mockResearchService is a mock implementation of driving.ResearchService.
type mockResearchService struct {
	answer     *domain.SynthesizedAnswer
	err        error
	lastQuery  domain.Query
	lastFlight domain.FlightSpec
}

func (m *mockResearchService) Research(_ context.Context, query domain.Query) (*domain.SynthesizedAnswer, error) {
	m.lastQuery = query
	return m.answer, m.err
}

func (m *mockResearchService) SearchFlights(_ context.Context, spec domain.FlightSpec) (*domain.SynthesizedAnswer, error) {
	m.lastFlight = spec
	return m.answer, m.err
}

// mockAirportService is a mock implementation of driving.AirportService.
type mockAirportService struct {
	airports []domain.Airport
	err      error
}

func (m *mockAirportService) FindAirports(_ context.Context, _ string) ([]domain.Airport, error) {
	return m.airports, m.err
}

// defaultMockAnswer is the answer the mock research service returns in tests
// unless overridden.
func defaultMockAnswer() *domain.SynthesizedAnswer {
	return &domain.SynthesizedAnswer{
		Query: "family hotels in Tokyo",
		Entries: []domain.AnswerEntry{
			{
				Source: domain.BackendPlaces,
				Record: domain.Record{
					Title:       "Hotel Sakura",
					Address:     "1-1 Shinjuku",
					Location:    "Tokyo",
					Category:    "hotel",
					Rating:      4.6,
					RatingCount: 812,
				},
				Score: 46,
			},
		},
		Sources: []domain.SourceStatus{{Kind: domain.BackendPlaces}},
		Summary: "places: success",
	}
}

// setupTestServices installs mock services and disables real wiring.
// Returns a cleanup function restoring the previous state.
func setupTestServices() func() {
	oldResearch := researchService
	oldAirports := airportService
	oldInit := initServicesFn

	researchService = &mockResearchService{answer: defaultMockAnswer()}
	airportService = &mockAirportService{
		airports: []domain.Airport{
			{IATA: "NAP", Name: "Naples Intl", City: "Naples", Country: "Italy"},
		},
	}
	initServicesFn = func() error { return nil }

	return func() {
		researchService = oldResearch
		airportService = oldAirports
		initServicesFn = oldInit
	}
}
