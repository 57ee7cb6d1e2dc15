// Package amadeus implements the flight search backend and airport lookup
// using the Amadeus self-service API.
//
// Authentication uses the OAuth2 client-credentials flow; token fetching and
// refresh are handled by the oauth2 transport, so request paths never deal
// with tokens directly.
package amadeus

import (
	"context"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/tripscout-cli/internal/backends"
)

const (
	// DefaultBaseURL is the Amadeus test environment. Production uses
	// https://api.amadeus.com.
	DefaultBaseURL = "https://test.api.amadeus.com"

	// tokenPath is the OAuth2 client-credentials token endpoint.
	tokenPath = "/v1/security/oauth2/token"

	// DefaultTimeout bounds one Amadeus request.
	DefaultTimeout = 25 * time.Second

	// RequestsPerSecond is the proactive client-side throttle. The test
	// environment allows 10 transactions per second per user.
	RequestsPerSecond = 10

	// DefaultMaxOffers caps how many flight offers one search returns.
	DefaultMaxOffers = 10
)

// Config holds configuration for the Amadeus client.
type Config struct {
	// APIKey and APISecret are the Amadeus self-service app credentials.
	APIKey    string
	APISecret string

	// BaseURL overrides the API endpoint. Used in tests and for production.
	BaseURL string

	// Timeout bounds one request (default 25s).
	Timeout time.Duration
}

// Client is the shared Amadeus HTTP client with OAuth2 token handling.
// The flight backend and the airport lookup both use one client so the rate
// limiter and the cached token cover all Amadeus traffic.
type Client struct {
	http       *backends.Client
	baseURL    string
	configured bool
}

// NewClient creates an Amadeus client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	cc := clientcredentials.Config{
		ClientID:     cfg.APIKey,
		ClientSecret: cfg.APISecret,
		TokenURL:     cfg.BaseURL + tokenPath,
		AuthStyle:    oauth2.AuthStyleInParams,
	}
	httpClient := cc.Client(context.Background())
	httpClient.Timeout = cfg.Timeout

	return &Client{
		http:       backends.NewClientWith(httpClient, rate.NewLimiter(rate.Limit(RequestsPerSecond), 1)),
		baseURL:    cfg.BaseURL,
		configured: cfg.APIKey != "" && cfg.APISecret != "",
	}
}
