package serper

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
	"github.com/custodia-labs/tripscout-cli/internal/core/ports/driven"
)

// Ensure WebBackend implements the interface.
var _ driven.Backend = (*WebBackend)(nil)

// WebBackend answers general travel queries from Serper's organic web search:
// guides, articles, reviews.
type WebBackend struct {
	client *Client
	max    int
}

// NewWebBackend creates the web search backend.
func NewWebBackend(client *Client) *WebBackend {
	return &WebBackend{client: client, max: DefaultMaxResults}
}

// Kind returns the backend kind identifier.
func (b *WebBackend) Kind() domain.BackendKind {
	return domain.BackendWeb
}

// webResponse is the Serper /search response shape (organic results only).
type webResponse struct {
	Organic []struct {
		Title    string `json:"title"`
		Link     string `json:"link"`
		Snippet  string `json:"snippet"`
		Position int    `json:"position"`
	} `json:"organic"`
}

// Invoke executes the web search and maps organic hits to records.
func (b *WebBackend) Invoke(ctx context.Context, q domain.NormalizedQuery) ([]domain.Record, error) {
	var resp webResponse
	if err := b.client.search(ctx, "search", q, &resp); err != nil {
		return nil, fmt.Errorf("serper web search: %w", err)
	}

	records := make([]domain.Record, 0, len(resp.Organic))
	for _, hit := range resp.Organic {
		title := strings.TrimSpace(hit.Title)
		if title == "" {
			continue
		}
		records = append(records, domain.Record{
			Title:    title,
			Snippet:  strings.TrimSpace(hit.Snippet),
			URL:      hit.Link,
			Location: q.Location,
		})
		if len(records) >= b.max {
			break
		}
	}
	return records, nil
}
