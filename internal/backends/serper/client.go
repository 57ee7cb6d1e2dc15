// Package serper implements the web and places search backends using the
// Serper API (google.serper.dev).
package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/tripscout-cli/internal/backends"
	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
)

const (
	// DefaultBaseURL is the Serper API endpoint.
	DefaultBaseURL = "https://google.serper.dev"

	// DefaultTimeout bounds one Serper request.
	DefaultTimeout = 15 * time.Second

	// RequestsPerSecond is the proactive client-side throttle shared by the
	// web and places endpoints.
	RequestsPerSecond = 5

	// DefaultMaxResults caps how many records one search contributes.
	DefaultMaxResults = 10
)

// Config holds configuration for the Serper client.
type Config struct {
	// APIKey is the Serper API key (required).
	APIKey string

	// BaseURL overrides the API endpoint. Used in tests.
	BaseURL string

	// Timeout bounds one request (default 15s).
	Timeout time.Duration
}

// Client is the shared Serper HTTP client. Both the web and places backends
// use one client so the rate limiter covers the whole API quota.
type Client struct {
	http    *backends.Client
	baseURL string
	apiKey  string
}

// NewClient creates a Serper client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		http:    backends.NewClient(cfg.Timeout, rate.NewLimiter(rate.Limit(RequestsPerSecond), 1)),
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

// searchRequest is the Serper request body, shared by both endpoints.
type searchRequest struct {
	Query    string `json:"q"`
	Location string `json:"location,omitempty"`
}

// search POSTs a query to a Serper endpoint ("search" or "places") and
// decodes the response into out.
func (c *Client) search(ctx context.Context, endpoint string, q domain.NormalizedQuery, out any) error {
	if c.apiKey == "" {
		return fmt.Errorf("serper: %w", domain.ErrCredentialMissing)
	}

	body, err := json.Marshal(searchRequest{
		Query:    q.SearchText,
		Location: q.Location,
	})
	if err != nil {
		return fmt.Errorf("serper: marshal request: %w", err)
	}

	url := c.baseURL + "/" + endpoint
	return c.http.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-KEY", c.apiKey)
		return req, nil
	}, out)
}
