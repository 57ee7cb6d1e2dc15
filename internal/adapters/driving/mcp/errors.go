// Package mcp provides an MCP (Model Context Protocol) server adapter for Tripscout.
// It enables AI assistants like Claude to run travel research and flight searches.
package mcp

import "errors"

// ErrMissingResearchService is returned when the research service is not provided.
var ErrMissingResearchService = errors.New("mcp: research service is required")
