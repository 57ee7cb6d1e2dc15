package amadeus

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/tripscout-cli/internal/backends"
	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
	"github.com/custodia-labs/tripscout-cli/internal/core/ports/driven"
)

// Ensure FlightBackend implements the interface.
var _ driven.Backend = (*FlightBackend)(nil)

// FlightBackend searches flight offers through the Amadeus Flight Offers
// Search API.
type FlightBackend struct {
	client *Client
	max    int
}

// NewFlightBackend creates the flight search backend.
func NewFlightBackend(client *Client) *FlightBackend {
	return &FlightBackend{client: client, max: DefaultMaxOffers}
}

// Kind returns the backend kind identifier.
func (b *FlightBackend) Kind() domain.BackendKind {
	return domain.BackendFlight
}

// offersResponse is the Flight Offers Search response shape (the fields this
// pipeline consumes).
type offersResponse struct {
	Data []struct {
		Price struct {
			Total    string `json:"total"`
			Currency string `json:"currency"`
		} `json:"price"`
		Itineraries []struct {
			Duration string `json:"duration"`
			Segments []struct {
				Departure struct {
					IATACode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"departure"`
				Arrival struct {
					IATACode string `json:"iataCode"`
					At       string `json:"at"`
				} `json:"arrival"`
				CarrierCode string `json:"carrierCode"`
				Number      string `json:"number"`
			} `json:"segments"`
		} `json:"itineraries"`
	} `json:"data"`
	Errors []struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// Invoke searches flight offers for the query's flight spec.
func (b *FlightBackend) Invoke(ctx context.Context, q domain.NormalizedQuery) ([]domain.Record, error) {
	if q.Flight == nil {
		return nil, fmt.Errorf("amadeus: %w: query has no flight parameters", domain.ErrInvalidInput)
	}
	if !b.client.configured {
		return nil, fmt.Errorf("amadeus: %w", domain.ErrCredentialMissing)
	}
	spec := *q.Flight

	params := url.Values{}
	params.Set("originLocationCode", spec.Origin)
	params.Set("destinationLocationCode", spec.Destination)
	params.Set("departureDate", spec.DepartDate)
	params.Set("adults", strconv.Itoa(spec.Adults))
	params.Set("travelClass", string(spec.Cabin))
	params.Set("currencyCode", "USD")
	params.Set("max", strconv.Itoa(b.max))
	if spec.RoundTrip() {
		params.Set("returnDate", spec.ReturnDate)
	}

	endpoint := b.client.baseURL + "/v2/shopping/flight-offers?" + params.Encode()

	var resp offersResponse
	err := b.client.http.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("amadeus flight offers: %w", err)
	}

	if len(resp.Errors) > 0 {
		e := resp.Errors[0]
		return nil, fmt.Errorf("amadeus flight offers: %s: %s: %w", e.Title, e.Detail, domain.ErrInvalidInput)
	}
	if len(resp.Data) == 0 {
		return nil, &backends.NoResultsError{
			Detail: fmt.Sprintf("no flights found for %s-%s on %s", spec.Origin, spec.Destination, spec.DepartDate),
		}
	}

	records := make([]domain.Record, 0, len(resp.Data))
	for _, offer := range resp.Data {
		if len(offer.Itineraries) == 0 || len(offer.Itineraries[0].Segments) == 0 {
			continue
		}
		outbound := offer.Itineraries[0]
		first := outbound.Segments[0]
		last := outbound.Segments[len(outbound.Segments)-1]

		price, _ := strconv.ParseFloat(offer.Price.Total, 64)

		records = append(records, domain.Record{
			Title:    routeTitle(spec, first.CarrierCode, first.Number),
			Carrier:  first.CarrierCode,
			Price:    price,
			Currency: offer.Price.Currency,
			Duration: formatDuration(outbound.Duration),
			Stops:    len(outbound.Segments) - 1,
			DepartAt: first.Departure.At,
			ArriveAt: last.Arrival.At,
			Location: spec.Destination,
		})
	}
	return records, nil
}

// routeTitle renders "DL402: JFK -> NAP".
func routeTitle(spec domain.FlightSpec, carrier, number string) string {
	flight := carrier + number
	if flight == "" {
		flight = "flight"
	}
	return fmt.Sprintf("%s: %s -> %s", flight, spec.Origin, spec.Destination)
}

// formatDuration turns the ISO 8601 duration ("PT8H30M") into "8h30m".
func formatDuration(iso string) string {
	s := strings.TrimPrefix(iso, "PT")
	s = strings.ReplaceAll(s, "H", "h")
	s = strings.ReplaceAll(s, "M", "m")
	return strings.ToLower(s)
}
