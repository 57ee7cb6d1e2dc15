package driven

import (
	"context"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
)

// LLMService provides language model operations for query understanding.
// This is an optional service - when nil, the pipeline falls back to the
// deterministic rule-based rewrite and the rule-based backend ordering.
//
// Every method must be safe to retry and must respect the context deadline;
// the pipeline calls them with short timeouts and treats any error as a
// signal to degrade, never as a request failure.
type LLMService interface {
	// RewriteQuery rewrites a search query for better recall against web
	// search backends. Returns the rewritten query text.
	RewriteQuery(ctx context.Context, query string) (string, error)

	// RankBackends reorders or prunes the eligible backend set for a query.
	// The returned slice is advisory: the caller ignores kinds outside
	// eligible and falls back to eligible when the result is empty or the
	// call fails.
	RankBackends(ctx context.Context, query string, eligible []domain.BackendKind) ([]domain.BackendKind, error)

	// ModelName returns the name of the model being used.
	ModelName() string
}
