package driven

import (
	"context"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
)

// Backend is one external data source adapter. Each backend kind (web, places,
// browser, flight) has exactly one implementation.
//
// Invoke maps the normalized query onto the backend's wire format and maps the
// response back into domain records. Implementations handle their own timeout,
// retry and rate limiting; returned errors are classified by the pipeline into
// a BackendFailure and must never abort sibling backends.
type Backend interface {
	// Kind returns the backend kind identifier.
	Kind() domain.BackendKind

	// Invoke executes the backend call for the given query.
	Invoke(ctx context.Context, q domain.NormalizedQuery) ([]domain.Record, error)
}

// FailureClassifier is implemented by adapter errors that carry their own
// failure classification. Errors that do not implement it are classified as
// transient by the pipeline.
type FailureClassifier interface {
	error

	// FailureClass returns the classification for this error.
	FailureClass() domain.FailureClass
}
