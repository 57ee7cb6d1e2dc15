package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for Tripscout resources.
	uriScheme = "tripscout://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource enumerating the available backends.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "backends",
		Name:        "backends",
		Description: "The data sources travel research can draw on",
		MIMEType:    "application/json",
	}, s.handleBackendsResource)

	// Template for airport lookups.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "airports/{keyword}",
		Name:        "airports",
		Description: "Airports matching a city or airport keyword",
		MIMEType:    "application/json",
	}, s.handleAirportsResource)
}

// backendDescriptions maps each backend kind to a one-line description.
var backendDescriptions = map[domain.BackendKind]string{
	domain.BackendWeb:     "travel guides, articles and general information",
	domain.BackendPlaces:  "hotels, restaurants and attractions with ratings",
	domain.BackendBrowser: "live page extraction for prices and availability",
	domain.BackendFlight:  "airline schedules and fares",
}

// handleBackendsResource returns the backend enumeration.
func (s *Server) handleBackendsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type backendInfo struct {
		Kind        string `json:"kind"`
		Description string `json:"description"`
	}

	kinds := domain.AllBackendKinds()
	infos := make([]backendInfo, len(kinds))
	for i, k := range kinds {
		infos[i] = backendInfo{
			Kind:        string(k),
			Description: backendDescriptions[k],
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling backends: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleAirportsResource returns airports matching a keyword.
func (s *Server) handleAirportsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Airports == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract keyword from URI: tripscout://airports/{keyword}
	keyword := extractAirportKeyword(req.Params.URI)
	if keyword == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	airports, err := s.ports.Airports.FindAirports(ctx, keyword)
	if err != nil {
		return nil, fmt.Errorf("finding airports: %w", err)
	}

	infos := make([]AirportOutput, len(airports))
	for i, a := range airports {
		infos[i] = AirportOutput{
			IATA:    a.IATA,
			Name:    a.Name,
			City:    a.City,
			Country: a.Country,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling airports: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractAirportKeyword extracts the keyword from a URI like tripscout://airports/{keyword}.
func extractAirportKeyword(uri string) string {
	const prefix = uriScheme + "airports/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
