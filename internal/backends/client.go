package backends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/tripscout-cli/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 20 * time.Second

	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries = 1

	// RetryDelay is the delay before retrying a transient failure.
	RetryDelay = time.Second

	// RateLimitDelay is the fallback delay before retrying a 429 when the
	// response carries no Retry-After header.
	RateLimitDelay = 2 * time.Second

	// maxBodyBytes caps response bodies read into memory.
	maxBodyBytes = 4 << 20
)

// Client is the shared retrying HTTP client for backend adapters.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a backend HTTP client. limiter may be nil to disable
// proactive client-side throttling.
func NewClient(timeout time.Duration, limiter *rate.Limiter) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewClientWith(&http.Client{Timeout: timeout}, limiter)
}

// NewClientWith wraps an existing http.Client, so adapters with their own
// transport concerns (OAuth2 token injection) get the same retry policy.
func NewClientWith(httpClient *http.Client, limiter *rate.Limiter) *Client {
	return &Client{
		http:    httpClient,
		limiter: limiter,
	}
}

// DoJSON executes a request and decodes the JSON response into out.
// build is called per attempt so request bodies can be re-read on retry.
//
// Retry policy: one retry on transport errors and 5xx, one retry after a
// backoff on 429 (honouring Retry-After), no retry on other 4xx. Non-2xx
// responses become *APIError carrying the status and a body snippet.
func (c *Client) DoJSON(ctx context.Context, build func(ctx context.Context) (*http.Request, error), out any) error {
	var lastErr error

	for attempt := 0; attempt <= MaxRetries; attempt++ {
		if attempt > 0 {
			delay := retryDelay(lastErr)
			logger.Debug("Retrying request in %s after: %v", delay, lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		req, err := build(ctx)
		if err != nil {
			return fmt.Errorf("build request: %w", err)
		}

		err = c.do(req, out)
		if err == nil {
			return nil
		}
		lastErr = err

		if !retryable(err) {
			return err
		}
	}

	return lastErr
}

// do executes a single attempt.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Message:    bodySnippet(body),
			URL:        req.URL.Redacted(),
		}
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if secs, parseErr := strconv.Atoi(retryAfter); parseErr == nil {
				apiErr.RetryAfter = time.Duration(secs) * time.Second
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}

// retryable reports whether the error qualifies for a retry attempt.
func retryable(err error) bool {
	switch e := err.(type) {
	case *TransportError:
		return true
	case *APIError:
		return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
	}
	return false
}

// retryDelay picks the backoff for the retry attempt.
func retryDelay(err error) time.Duration {
	if apiErr, ok := err.(*APIError); ok && apiErr.StatusCode == http.StatusTooManyRequests {
		if apiErr.RetryAfter > 0 {
			return apiErr.RetryAfter
		}
		return RateLimitDelay
	}
	return RetryDelay
}

// bodySnippet trims an error body down to a single readable line.
func bodySnippet(body []byte) string {
	s := strings.Join(strings.Fields(string(body)), " ")
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
