package amadeus

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
	"github.com/custodia-labs/tripscout-cli/internal/core/ports/driven"
)

// Ensure Locations implements the interface.
var _ driven.AirportSource = (*Locations)(nil)

// locationsPageLimit caps one reference-data lookup.
const locationsPageLimit = 10

// Locations resolves airport/city keywords through the Amadeus reference-data
// locations endpoint.
type Locations struct {
	client *Client
}

// NewLocations creates the airport lookup adapter.
func NewLocations(client *Client) *Locations {
	return &Locations{client: client}
}

// locationsResponse is the reference-data locations response shape.
type locationsResponse struct {
	Data []struct {
		Name     string `json:"name"`
		IATACode string `json:"iataCode"`
		SubType  string `json:"subType"`
		Address  struct {
			CityName    string `json:"cityName"`
			CountryName string `json:"countryName"`
		} `json:"address"`
	} `json:"data"`
}

// FindAirports returns airports matching the keyword.
func (l *Locations) FindAirports(ctx context.Context, keyword string) ([]domain.Airport, error) {
	if !l.client.configured {
		return nil, fmt.Errorf("amadeus: %w", domain.ErrCredentialMissing)
	}

	params := url.Values{}
	params.Set("subType", "AIRPORT,CITY")
	params.Set("keyword", keyword)
	params.Set("page[limit]", fmt.Sprintf("%d", locationsPageLimit))

	endpoint := l.client.baseURL + "/v1/reference-data/locations?" + params.Encode()

	var resp locationsResponse
	err := l.client.http.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("amadeus locations: %w", err)
	}

	airports := make([]domain.Airport, 0, len(resp.Data))
	for _, loc := range resp.Data {
		if !strings.EqualFold(loc.SubType, "AIRPORT") || loc.IATACode == "" {
			continue
		}
		airports = append(airports, domain.Airport{
			IATA:    loc.IATACode,
			Name:    loc.Name,
			City:    loc.Address.CityName,
			Country: loc.Address.CountryName,
		})
	}
	if len(airports) == 0 {
		return nil, fmt.Errorf("no airports matching %q: %w", keyword, domain.ErrNotFound)
	}
	return airports, nil
}
