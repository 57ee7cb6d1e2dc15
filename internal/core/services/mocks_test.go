package services

import (
	"context"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
)

// mockLLM is a mock implementation of driven.LLMService.
type mockLLM struct {
	rewritten  string
	rewriteErr error
	ranked     []domain.BackendKind
	rankErr    error
	rankCalls  int
}

func (m *mockLLM) RewriteQuery(_ context.Context, _ string) (string, error) {
	return m.rewritten, m.rewriteErr
}

func (m *mockLLM) RankBackends(_ context.Context, _ string, _ []domain.BackendKind) ([]domain.BackendKind, error) {
	m.rankCalls++
	return m.ranked, m.rankErr
}

func (m *mockLLM) ModelName() string {
	return "mock-model"
}

// mockBackend is a mock implementation of driven.Backend.
type mockBackend struct {
	kind    domain.BackendKind
	records []domain.Record
	err     error
	invoked int
}

func (m *mockBackend) Kind() domain.BackendKind {
	return m.kind
}

func (m *mockBackend) Invoke(_ context.Context, _ domain.NormalizedQuery) ([]domain.Record, error) {
	m.invoked++
	return m.records, m.err
}

// blockingBackend is a backend that blocks until its context expires.
type blockingBackend struct {
	kind domain.BackendKind
}

func (b *blockingBackend) Kind() domain.BackendKind {
	return b.kind
}

func (b *blockingBackend) Invoke(ctx context.Context, _ domain.NormalizedQuery) ([]domain.Record, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// mockCreds is a mock implementation of driven.CredentialStore.
// Kinds listed in missing report no credentials.
type mockCreds struct {
	missing map[domain.BackendKind]bool
}

func (m *mockCreds) Credential(kind domain.BackendKind, name string) (string, error) {
	if m.missing[kind] {
		return "", domain.ErrCredentialMissing
	}
	return "test-key", nil
}

func (m *mockCreds) HasCredentials(kind domain.BackendKind) bool {
	return !m.missing[kind]
}

// mockAirportSource is a mock implementation of driven.AirportSource.
type mockAirportSource struct {
	airports []domain.Airport
	err      error
	calls    int
}

func (m *mockAirportSource) FindAirports(_ context.Context, _ string) ([]domain.Airport, error) {
	m.calls++
	return m.airports, m.err
}

// mockAirportCache is an in-memory implementation of driven.AirportCache.
type mockAirportCache struct {
	entries map[string][]domain.Airport
	getErr  error
	putErr  error
}

func newMockAirportCache() *mockAirportCache {
	return &mockAirportCache{entries: make(map[string][]domain.Airport)}
}

func (m *mockAirportCache) Get(_ context.Context, keyword string) ([]domain.Airport, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	airports, ok := m.entries[keyword]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return airports, nil
}

func (m *mockAirportCache) Put(_ context.Context, keyword string, airports []domain.Airport) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.entries[keyword] = airports
	return nil
}

func (m *mockAirportCache) Close() error {
	return nil
}
