package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrMalformedQuery indicates the input query is empty or has no
	// extractable travel intent. Surfaced to the caller as a hard failure.
	ErrMalformedQuery = errors.New("malformed query")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoBackends indicates no backend adapters are registered for the
	// selected kinds. A wiring bug, not a runtime condition.
	ErrNoBackends = errors.New("no backends available")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Query rewriting and backend re-ranking degrade to rule-based behaviour.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrCredentialMissing indicates a backend credential is not configured.
	// The affected backend degrades to Failure(AuthInvalid).
	ErrCredentialMissing = errors.New("credential missing")
)

// AllSourcesFailedError is returned when every selected backend failed.
// It carries the per-backend classifications so the caller can decide how to
// react (rate_limited suggests retry after a delay, auth_invalid suggests a
// credential fix).
type AllSourcesFailedError struct {
	// Failures lists each backend's outcome in selection order.
	Failures []SourceStatus
}

func (e *AllSourcesFailedError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, s := range e.Failures {
		class := FailureTransient
		msg := ""
		if s.Failure != nil {
			class = s.Failure.Class
			msg = s.Failure.Message
		}
		if msg != "" {
			parts = append(parts, fmt.Sprintf("%s: %s (%s)", s.Kind, class, msg))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", s.Kind, class))
		}
	}
	return "all sources failed: " + strings.Join(parts, "; ")
}

// IsAllSourcesFailed checks whether err is an AllSourcesFailedError and
// returns it if so.
func IsAllSourcesFailed(err error) (*AllSourcesFailedError, bool) {
	var asf *AllSourcesFailedError
	if errors.As(err, &asf) {
		return asf, true
	}
	return nil, false
}
