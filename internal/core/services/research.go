package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
	"github.com/custodia-labs/tripscout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/tripscout-cli/internal/core/ports/driving"
	"github.com/custodia-labs/tripscout-cli/internal/logger"
)

// Ensure ResearchService implements the interface.
var _ driving.ResearchService = (*ResearchService)(nil)

const (
	// DefaultBackendTimeout bounds a single backend invocation, including
	// its retries.
	DefaultBackendTimeout = 30 * time.Second

	// DefaultMaxConcurrent bounds the backend fan-out width.
	DefaultMaxConcurrent = 4
)

// ResearchService orchestrates the pipeline: normalize, select, fan out over
// the selected backends concurrently, synthesize one answer.
type ResearchService struct {
	normalizer  *QueryNormalizer
	selector    *SourceSelector
	synthesizer *ResultSynthesizer
	backends    map[domain.BackendKind]driven.Backend
	creds       driven.CredentialStore

	backendTimeout time.Duration
	maxConcurrent  int
}

// NewResearchService creates the research service. creds may be nil, in which
// case adapters surface their own credential failures.
func NewResearchService(
	normalizer *QueryNormalizer,
	selector *SourceSelector,
	synthesizer *ResultSynthesizer,
	backends []driven.Backend,
	creds driven.CredentialStore,
) *ResearchService {
	m := make(map[domain.BackendKind]driven.Backend, len(backends))
	for _, b := range backends {
		m[b.Kind()] = b
	}
	return &ResearchService{
		normalizer:     normalizer,
		selector:       selector,
		synthesizer:    synthesizer,
		backends:       m,
		creds:          creds,
		backendTimeout: DefaultBackendTimeout,
		maxConcurrent:  DefaultMaxConcurrent,
	}
}

// Research answers a natural-language travel query.
func (s *ResearchService) Research(ctx context.Context, query domain.Query) (*domain.SynthesizedAnswer, error) {
	requestID := uuid.NewString()[:8]
	logger.Section("Research " + requestID)
	logger.Debug("Query: %q", query.Text)

	nq, err := s.normalizer.Normalize(ctx, query)
	if err != nil {
		return nil, err
	}

	kinds := s.selector.Select(ctx, nq)
	logger.Info("Selected backends: %v", kinds)

	results := s.fanOut(ctx, nq, kinds)
	return s.synthesizer.Synthesize(query.Text, kinds, results)
}

// SearchFlights answers a structured flight query: the degenerate
// single-backend case of the same pipeline.
func (s *ResearchService) SearchFlights(ctx context.Context, spec domain.FlightSpec) (*domain.SynthesizedAnswer, error) {
	requestID := uuid.NewString()[:8]
	logger.Section("Flight search " + requestID)

	if err := ValidateFlightSpec(&spec); err != nil {
		return nil, err
	}
	logger.Debug("Flight: %s -> %s on %s (return %q, adults %d, %s)",
		spec.Origin, spec.Destination, spec.DepartDate, spec.ReturnDate, spec.Adults, spec.Cabin)

	nq := domain.NormalizedQuery{
		Raw:        fmt.Sprintf("flights %s to %s %s", spec.Origin, spec.Destination, spec.DepartDate),
		SearchText: fmt.Sprintf("flights %s to %s %s", spec.Origin, spec.Destination, spec.DepartDate),
		Flight:     &spec,
	}

	kinds := []domain.BackendKind{domain.BackendFlight}
	results := s.fanOut(ctx, nq, kinds)
	return s.synthesizer.Synthesize(nq.Raw, kinds, results)
}

// fanOut invokes the selected backends concurrently with bounded parallelism.
// Each backend writes into its own slot indexed by selection position, so no
// shared state exists between invocations and the output order is fixed
// regardless of completion order.
func (s *ResearchService) fanOut(ctx context.Context, nq domain.NormalizedQuery, kinds []domain.BackendKind) []domain.BackendResult {
	results := make([]domain.BackendResult, len(kinds))
	sem := make(chan struct{}, s.maxConcurrent)

	var wg sync.WaitGroup
	for i, k := range kinds {
		wg.Add(1)
		go func(slot int, kind domain.BackendKind) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[slot] = s.invokeOne(ctx, kind, nq)
		}(i, k)
	}
	wg.Wait()

	return results
}

// invokeOne runs a single backend with its own timeout and maps any error
// into a classified failure. Panics and errors never cross this boundary.
func (s *ResearchService) invokeOne(ctx context.Context, kind domain.BackendKind, nq domain.NormalizedQuery) domain.BackendResult {
	if s.creds != nil && !s.creds.HasCredentials(kind) {
		logger.Warn("Backend %s: credentials not configured", kind)
		return domain.BackendResult{
			Kind:    kind,
			Failure: &domain.BackendFailure{Class: domain.FailureAuthInvalid, Message: "credentials not configured"},
		}
	}

	backend, ok := s.backends[kind]
	if !ok {
		logger.Warn("Backend %s: no adapter registered", kind)
		return domain.BackendResult{
			Kind:    kind,
			Failure: &domain.BackendFailure{Class: domain.FailureTransient, Message: "backend not available"},
		}
	}

	ictx, cancel := context.WithTimeout(ctx, s.backendTimeout)
	defer cancel()

	start := time.Now()
	records, err := backend.Invoke(ictx, nq)
	if err != nil {
		failure := classifyFailure(err)
		logger.Warn("Backend %s failed after %s: %s (%s)", kind, time.Since(start).Round(time.Millisecond), failure.Message, failure.Class)
		return domain.BackendResult{Kind: kind, Failure: failure}
	}

	logger.Debug("Backend %s: %d records in %s", kind, len(records), time.Since(start).Round(time.Millisecond))
	return domain.BackendResult{Kind: kind, Records: records}
}

// classifyFailure maps an adapter error onto the closed failure enumeration.
// Errors carrying their own classification win; deadline expiry is transient.
func classifyFailure(err error) *domain.BackendFailure {
	var fc driven.FailureClassifier
	if errors.As(err, &fc) {
		return &domain.BackendFailure{Class: fc.FailureClass(), Message: fc.Error()}
	}
	if errors.Is(err, domain.ErrCredentialMissing) {
		return &domain.BackendFailure{Class: domain.FailureAuthInvalid, Message: err.Error()}
	}
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.BackendFailure{Class: domain.FailureNotFound, Message: err.Error()}
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return &domain.BackendFailure{Class: domain.FailureMalformed, Message: err.Error()}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &domain.BackendFailure{Class: domain.FailureTransient, Message: "timeout waiting for backend"}
	}
	return &domain.BackendFailure{Class: domain.FailureTransient, Message: err.Error()}
}
