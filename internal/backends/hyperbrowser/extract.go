// Package hyperbrowser implements the browser-extraction backend using the
// Hyperbrowser API (api.hyperbrowser.ai). Extraction runs as an asynchronous
// browser task: start the job, poll until it completes or the context
// deadline expires.
package hyperbrowser

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/tripscout-cli/internal/backends"
	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
	"github.com/custodia-labs/tripscout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/tripscout-cli/internal/logger"
)

// Ensure Backend implements the interface.
var _ driven.Backend = (*Backend)(nil)

const (
	// DefaultBaseURL is the Hyperbrowser API endpoint.
	DefaultBaseURL = "https://api.hyperbrowser.ai"

	// DefaultTimeout bounds one HTTP call; the overall task is bounded by
	// the invocation context.
	DefaultTimeout = 20 * time.Second

	// DefaultPollInterval is the delay between job status polls.
	DefaultPollInterval = 2 * time.Second
)

// taskPrompt instructs the browser task to return machine-readable rows.
const taskPrompt = `Search for %q and extract current prices, availability and booking details.
Respond with a JSON array of objects with fields: name, price, currency, availability, detail.`

// Config holds configuration for the Hyperbrowser backend.
type Config struct {
	// APIKey is the Hyperbrowser API key (required).
	APIKey string

	// BaseURL overrides the API endpoint. Used in tests.
	BaseURL string

	// Timeout bounds one HTTP call (default 20s).
	Timeout time.Duration

	// PollInterval is the delay between job polls (default 2s).
	PollInterval time.Duration
}

// Backend runs live page extraction through a Hyperbrowser browser task.
type Backend struct {
	http         *backends.Client
	baseURL      string
	apiKey       string
	pollInterval time.Duration
}

// New creates the browser-extraction backend.
func New(cfg Config) *Backend {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	return &Backend{
		http:         backends.NewClient(cfg.Timeout, nil),
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		pollInterval: cfg.PollInterval,
	}
}

// Kind returns the backend kind identifier.
func (b *Backend) Kind() domain.BackendKind {
	return domain.BackendBrowser
}

// startRequest is the browser-use task creation body.
type startRequest struct {
	Task string `json:"task"`
}

// startResponse carries the job identifier.
type startResponse struct {
	JobID string `json:"jobId"`
}

// statusResponse is the job status/result shape.
type statusResponse struct {
	Status string `json:"status"`
	Data   struct {
		FinalResult string `json:"finalResult"`
	} `json:"data"`
	Error string `json:"error,omitempty"`
}

// extractedRow is the structured shape the task prompt asks for.
type extractedRow struct {
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	Currency     string  `json:"currency"`
	Availability string  `json:"availability"`
	Detail       string  `json:"detail"`
}

// Invoke starts an extraction task and polls it to completion.
func (b *Backend) Invoke(ctx context.Context, q domain.NormalizedQuery) ([]domain.Record, error) {
	if b.apiKey == "" {
		return nil, fmt.Errorf("hyperbrowser: %w", domain.ErrCredentialMissing)
	}

	jobID, err := b.start(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("hyperbrowser start task: %w", err)
	}
	logger.Debug("Hyperbrowser task started: %s", jobID)

	result, err := b.poll(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("hyperbrowser task %s: %w", jobID, err)
	}

	return b.parseResult(q, result), nil
}

// start creates the browser task and returns its job ID.
func (b *Backend) start(ctx context.Context, q domain.NormalizedQuery) (string, error) {
	body, err := json.Marshal(startRequest{Task: fmt.Sprintf(taskPrompt, q.SearchText)})
	if err != nil {
		return "", err
	}

	var resp startResponse
	err = b.http.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/task/browser-use", strings.NewReader(string(body)))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-api-key", b.apiKey)
		return req, nil
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.JobID == "" {
		return "", &backends.DecodeError{Err: fmt.Errorf("missing jobId in response")}
	}
	return resp.JobID, nil
}

// poll waits for the task to finish. The invocation context bounds the wait;
// expiry surfaces as a transient timeout upstream.
func (b *Backend) poll(ctx context.Context, jobID string) (string, error) {
	url := b.baseURL + "/api/task/browser-use/" + jobID
	for {
		var resp statusResponse
		err := b.http.DoJSON(ctx, func(ctx context.Context) (*http.Request, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
			if err != nil {
				return nil, err
			}
			req.Header.Set("x-api-key", b.apiKey)
			return req, nil
		}, &resp)
		if err != nil {
			return "", err
		}

		switch resp.Status {
		case "completed":
			return resp.Data.FinalResult, nil
		case "failed":
			if resp.Error != "" {
				return "", fmt.Errorf("task failed: %s", resp.Error)
			}
			return "", fmt.Errorf("task failed")
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(b.pollInterval):
		}
	}
}

// parseResult maps the task output to records. The task is asked for strict
// JSON; freeform output degrades to a single snippet record rather than a
// failure, since the extraction itself succeeded.
func (b *Backend) parseResult(q domain.NormalizedQuery, result string) []domain.Record {
	result = strings.TrimSpace(result)
	if result == "" {
		return nil
	}

	var rows []extractedRow
	if err := json.Unmarshal([]byte(result), &rows); err == nil {
		records := make([]domain.Record, 0, len(rows))
		for _, row := range rows {
			if row.Name == "" {
				continue
			}
			records = append(records, domain.Record{
				Title:        row.Name,
				Snippet:      row.Detail,
				Price:        row.Price,
				Currency:     row.Currency,
				Availability: row.Availability,
				Location:     q.Location,
			})
		}
		return records
	}

	logger.Debug("Hyperbrowser returned freeform output, keeping as snippet")
	return []domain.Record{{
		Title:    "Live extraction: " + q.SearchText,
		Snippet:  result,
		Location: q.Location,
	}}
}
