package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
)

// ResearchInput is the input schema for the research_travel tool.
type ResearchInput struct {
	Query       string `json:"query" jsonschema:"the natural-language travel question to research"`
	Location    string `json:"location,omitempty" jsonschema:"destination to bias web and places results towards"`
	Origin      string `json:"origin,omitempty" jsonschema:"origin airport IATA code if the query involves flights"`
	Destination string `json:"destination,omitempty" jsonschema:"destination airport IATA code if the query involves flights"`
	DepartDate  string `json:"depart_date,omitempty" jsonschema:"outbound date in YYYY-MM-DD format"`
	ReturnDate  string `json:"return_date,omitempty" jsonschema:"return date in YYYY-MM-DD format, omit for one-way"`
	Adults      int    `json:"adults,omitempty" jsonschema:"passenger count (default 1)"`
	Cabin       string `json:"cabin,omitempty" jsonschema:"travel class: ECONOMY, PREMIUM_ECONOMY, BUSINESS or FIRST"`
}

// ResearchOutput is the output schema for the research_travel tool.
type ResearchOutput struct {
	Query    string         `json:"query"`
	Summary  string         `json:"summary"`
	Degraded bool           `json:"degraded"`
	Sources  []SourceOutput `json:"sources"`
	Results  []EntryOutput  `json:"results"`
	Count    int            `json:"count"`
}

// SourceOutput reports one backend's outcome.
type SourceOutput struct {
	Backend string `json:"backend"`
	Status  string `json:"status"`
	Detail  string `json:"detail,omitempty"`
}

// EntryOutput represents a single merged result row.
type EntryOutput struct {
	Source       string  `json:"source"`
	Title        string  `json:"title"`
	Snippet      string  `json:"snippet,omitempty"`
	URL          string  `json:"url,omitempty"`
	Address      string  `json:"address,omitempty"`
	Location     string  `json:"location,omitempty"`
	Category     string  `json:"category,omitempty"`
	Rating       float64 `json:"rating,omitempty"`
	RatingCount  int     `json:"rating_count,omitempty"`
	Price        float64 `json:"price,omitempty"`
	Currency     string  `json:"currency,omitempty"`
	Carrier      string  `json:"carrier,omitempty"`
	Duration     string  `json:"duration,omitempty"`
	Stops        int     `json:"stops,omitempty"`
	DepartAt     string  `json:"depart_at,omitempty"`
	ArriveAt     string  `json:"arrive_at,omitempty"`
	Availability string  `json:"availability,omitempty"`
	Score        float64 `json:"score"`
}

// FlightSearchInput is the input schema for the search_flights tool.
type FlightSearchInput struct {
	Origin      string `json:"origin" jsonschema:"origin airport IATA code, e.g. JFK"`
	Destination string `json:"destination" jsonschema:"destination airport IATA code, e.g. NAP"`
	DepartDate  string `json:"depart_date" jsonschema:"outbound date in YYYY-MM-DD format"`
	ReturnDate  string `json:"return_date,omitempty" jsonschema:"return date in YYYY-MM-DD format, omit for one-way"`
	Adults      int    `json:"adults,omitempty" jsonschema:"passenger count (default 1)"`
	Cabin       string `json:"cabin,omitempty" jsonschema:"travel class: ECONOMY, PREMIUM_ECONOMY, BUSINESS or FIRST"`
}

// FindAirportsInput is the input schema for the find_airports tool.
type FindAirportsInput struct {
	Keyword string `json:"keyword" jsonschema:"city name, airport name or partial IATA code to look up"`
}

// FindAirportsOutput is the output schema for the find_airports tool.
type FindAirportsOutput struct {
	Airports []AirportOutput `json:"airports"`
	Count    int             `json:"count"`
}

// AirportOutput represents a single airport match.
type AirportOutput struct {
	IATA    string `json:"iata"`
	Name    string `json:"name"`
	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "research_travel",
		Description: "Research a travel question across web, places, live-browse and flight sources",
	}, s.handleResearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_flights",
		Description: "Search flight offers between two airports on a date",
	}, s.handleSearchFlights)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_airports",
		Description: "Look up airports and their IATA codes by city or airport name",
	}, s.handleFindAirports)
}

// handleResearch handles the research_travel tool invocation.
func (s *Server) handleResearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResearchInput,
) (*mcp.CallToolResult, ResearchOutput, error) {
	query := domain.Query{
		Text: input.Query,
		Hints: domain.QueryHints{
			Location:    input.Location,
			Origin:      input.Origin,
			Destination: input.Destination,
			DepartDate:  input.DepartDate,
			ReturnDate:  input.ReturnDate,
			Adults:      input.Adults,
			Cabin:       domain.CabinClass(input.Cabin),
		},
	}

	answer, err := s.ports.Research.Research(ctx, query)
	if err != nil {
		return nil, ResearchOutput{}, err
	}

	return nil, answerOutput(answer), nil
}

// handleSearchFlights handles the search_flights tool invocation.
func (s *Server) handleSearchFlights(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FlightSearchInput,
) (*mcp.CallToolResult, ResearchOutput, error) {
	spec := domain.FlightSpec{
		Origin:      input.Origin,
		Destination: input.Destination,
		DepartDate:  input.DepartDate,
		ReturnDate:  input.ReturnDate,
		Adults:      input.Adults,
		Cabin:       domain.CabinClass(input.Cabin),
	}

	answer, err := s.ports.Research.SearchFlights(ctx, spec)
	if err != nil {
		return nil, ResearchOutput{}, err
	}

	return nil, answerOutput(answer), nil
}

// handleFindAirports handles the find_airports tool invocation.
func (s *Server) handleFindAirports(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindAirportsInput,
) (*mcp.CallToolResult, FindAirportsOutput, error) {
	if s.ports.Airports == nil {
		return nil, FindAirportsOutput{}, domain.ErrCredentialMissing
	}

	airports, err := s.ports.Airports.FindAirports(ctx, input.Keyword)
	if err != nil {
		return nil, FindAirportsOutput{}, err
	}

	output := FindAirportsOutput{
		Airports: make([]AirportOutput, len(airports)),
		Count:    len(airports),
	}
	for i, a := range airports {
		output.Airports[i] = AirportOutput{
			IATA:    a.IATA,
			Name:    a.Name,
			City:    a.City,
			Country: a.Country,
		}
	}
	return nil, output, nil
}

// answerOutput maps a synthesized answer onto the tool output schema.
func answerOutput(answer *domain.SynthesizedAnswer) ResearchOutput {
	output := ResearchOutput{
		Query:    answer.Query,
		Summary:  answer.Summary,
		Degraded: answer.Degraded(),
		Sources:  make([]SourceOutput, len(answer.Sources)),
		Results:  make([]EntryOutput, len(answer.Entries)),
		Count:    len(answer.Entries),
	}

	for i, src := range answer.Sources {
		out := SourceOutput{Backend: string(src.Kind), Status: "success"}
		if src.Failure != nil {
			out.Status = string(src.Failure.Class)
			out.Detail = src.Failure.Message
		}
		output.Sources[i] = out
	}

	for i, e := range answer.Entries {
		output.Results[i] = EntryOutput{
			Source:       string(e.Source),
			Title:        e.Record.Title,
			Snippet:      e.Record.Snippet,
			URL:          e.Record.URL,
			Address:      e.Record.Address,
			Location:     e.Record.Location,
			Category:     e.Record.Category,
			Rating:       e.Record.Rating,
			RatingCount:  e.Record.RatingCount,
			Price:        e.Record.Price,
			Currency:     e.Record.Currency,
			Carrier:      e.Record.Carrier,
			Duration:     e.Record.Duration,
			Stops:        e.Record.Stops,
			DepartAt:     e.Record.DepartAt,
			ArriveAt:     e.Record.ArriveAt,
			Availability: e.Record.Availability,
			Score:        e.Score,
		}
	}

	return output
}
