package serper

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
	"github.com/custodia-labs/tripscout-cli/internal/core/ports/driven"
)

// Ensure PlacesBackend implements the interface.
var _ driven.Backend = (*PlacesBackend)(nil)

// PlacesBackend answers venue queries from Serper's places search: hotels,
// restaurants, attractions with ratings.
type PlacesBackend struct {
	client *Client
	max    int
}

// NewPlacesBackend creates the places search backend.
func NewPlacesBackend(client *Client) *PlacesBackend {
	return &PlacesBackend{client: client, max: DefaultMaxResults}
}

// Kind returns the backend kind identifier.
func (b *PlacesBackend) Kind() domain.BackendKind {
	return domain.BackendPlaces
}

// placesResponse is the Serper /places response shape.
type placesResponse struct {
	Places []struct {
		Title       string  `json:"title"`
		Address     string  `json:"address"`
		Category    string  `json:"category"`
		Rating      float64 `json:"rating"`
		RatingCount int     `json:"ratingCount"`
		Website     string  `json:"website"`
	} `json:"places"`
}

// Invoke executes the places search and maps venues to records.
func (b *PlacesBackend) Invoke(ctx context.Context, q domain.NormalizedQuery) ([]domain.Record, error) {
	var resp placesResponse
	if err := b.client.search(ctx, "places", q, &resp); err != nil {
		return nil, fmt.Errorf("serper places search: %w", err)
	}

	records := make([]domain.Record, 0, len(resp.Places))
	for _, place := range resp.Places {
		title := strings.TrimSpace(place.Title)
		if title == "" {
			continue
		}
		records = append(records, domain.Record{
			Title:       title,
			Address:     strings.TrimSpace(place.Address),
			Category:    place.Category,
			Rating:      place.Rating,
			RatingCount: place.RatingCount,
			URL:         place.Website,
			Location:    q.Location,
		})
		if len(records) >= b.max {
			break
		}
	}
	return records, nil
}
