package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
	"github.com/custodia-labs/tripscout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/tripscout-cli/internal/core/ports/driving"
	"github.com/custodia-labs/tripscout-cli/internal/logger"
)

// Ensure AirportService implements the interface.
var _ driving.AirportService = (*AirportService)(nil)

// AirportService resolves airport keywords through the flight backend's
// reference-data endpoint, with a cache-aside lookup so repeated keywords
// skip the upstream API.
type AirportService struct {
	source driven.AirportSource
	cache  driven.AirportCache
}

// NewAirportService creates the airport lookup service. cache may be nil.
func NewAirportService(source driven.AirportSource, cache driven.AirportCache) *AirportService {
	return &AirportService{source: source, cache: cache}
}

// FindAirports returns airports matching the keyword.
func (s *AirportService) FindAirports(ctx context.Context, keyword string) ([]domain.Airport, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, fmt.Errorf("%w: empty keyword", domain.ErrInvalidInput)
	}
	if s.source == nil {
		return nil, fmt.Errorf("airport lookup: %w", domain.ErrNoBackends)
	}

	cacheKey := strings.ToLower(keyword)
	if s.cache != nil {
		if airports, err := s.cache.Get(ctx, cacheKey); err == nil {
			logger.Debug("Airport cache hit for %q: %d airports", keyword, len(airports))
			return airports, nil
		} else if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("Airport cache read failed: %v", err)
		}
	}

	airports, err := s.source.FindAirports(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("find airports %q: %w", keyword, err)
	}

	if s.cache != nil && len(airports) > 0 {
		if err := s.cache.Put(ctx, cacheKey, airports); err != nil {
			logger.Warn("Airport cache write failed: %v", err)
		}
	}

	return airports, nil
}
