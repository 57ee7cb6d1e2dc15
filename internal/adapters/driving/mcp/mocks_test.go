package mcp

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
	airports    []domain.Airport
	err         error
	lastKeyword string
}

func (m *mockAirportService) FindAirports(_ context.Context, keyword string) ([]domain.Airport, error) {
	m.lastKeyword = keyword
	return m.airports, m.err
}
