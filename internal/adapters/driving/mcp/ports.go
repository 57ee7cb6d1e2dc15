package mcp

import (
	"github.com/custodia-labs/tripscout-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Research runs the travel research pipeline.
	Research driving.ResearchService

	// Airports resolves airport keywords to IATA reference data.
	Airports driving.AirportService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Research == nil {
		return ErrMissingResearchService
	}
	// Airports is optional; the find_airports tool degrades without it.
	return nil
}
