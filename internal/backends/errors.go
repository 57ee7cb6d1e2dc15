package backends

import (
	"fmt"
	"net/http"
	"time"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
)

// APIError represents a non-2xx response from a backend API.
type APIError struct {
	StatusCode int
	Message    string
	URL        string

	// RetryAfter is the server-requested backoff for 429 responses.
	RetryAfter time.Duration
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error %d (URL: %s)", e.StatusCode, e.URL)
	}
	return fmt.Sprintf("API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// FailureClass maps the HTTP status onto the closed failure enumeration.
func (e *APIError) FailureClass() domain.FailureClass {
	switch {
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return domain.FailureAuthInvalid
	case e.StatusCode == http.StatusTooManyRequests:
		return domain.FailureRateLimited
	case e.StatusCode == http.StatusNotFound:
		return domain.FailureNotFound
	case e.StatusCode >= 500:
		return domain.FailureTransient
	case e.StatusCode >= 400:
		return domain.FailureMalformed
	}
	return domain.FailureTransient
}

// TransportError represents a network-level failure (connect, TLS, timeout).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// FailureClass classifies transport failures as transient.
func (e *TransportError) FailureClass() domain.FailureClass {
	return domain.FailureTransient
}

// DecodeError represents an unparseable backend response body.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// FailureClass classifies undecodable responses as malformed.
func (e *DecodeError) FailureClass() domain.FailureClass {
	return domain.FailureMalformed
}

// NoResultsError indicates the backend answered successfully but matched
// nothing (e.g. no route between the requested airports).
type NoResultsError struct {
	Detail string
}

func (e *NoResultsError) Error() string {
	if e.Detail == "" {
		return "no results"
	}
	return e.Detail
}

// FailureClass classifies empty result sets as not found.
func (e *NoResultsError) FailureClass() domain.FailureClass {
	return domain.FailureNotFound
}
