package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
	"github.com/custodia-labs/tripscout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/tripscout-cli/internal/logger"
)

// DefaultRankTimeout bounds the optional LLM re-ranking call.
const DefaultRankTimeout = 6 * time.Second

// placesVocabulary marks queries about concrete venues: hotels, food,
// attractions. Presence of any of these makes the Places backend eligible.
var placesVocabulary = map[string]bool{
	"attraction": true, "attractions": true, "bar": true, "bars": true,
	"cafe": true, "cafes": true, "eat": true, "food": true, "hostel": true,
	"hostels": true, "hotel": true, "hotels": true, "museum": true,
	"museums": true, "restaurant": true, "restaurants": true, "stay": true,
}

// browserVocabulary marks queries that need live page extraction: pricing,
// availability, booking detail.
var browserVocabulary = map[string]bool{
	"availability": true, "book": true, "booking": true, "price": true,
	"prices": true, "pricing": true, "rates": true,
}

// webVocabulary marks general-information queries: guides, tips, seasonal and
// safety questions best answered by articles rather than venue listings.
var webVocabulary = map[string]bool{
	"advice": true, "budget": true, "culture": true, "destination": true,
	"destinations": true, "guide": true, "guides": true, "holiday": true,
	"itineraries": true, "itinerary": true, "safe": true, "safety": true,
	"season": true, "tips": true, "travel": true, "trip": true,
	"vacation": true, "visa": true, "weather": true,
}

var urlPattern = regexp.MustCompile(`https?://\S+`)

// SourceSelector decides which backends answer a query and in what priority
// order. Deterministic rules decide eligibility; an optional LLM call may
// reorder or prune the eligible set but can never make it empty.
type SourceSelector struct {
	llm         driven.LLMService
	rankTimeout time.Duration
}

// NewSourceSelector creates a source selector. llm may be nil.
func NewSourceSelector(llm driven.LLMService) *SourceSelector {
	return &SourceSelector{
		llm:         llm,
		rankTimeout: DefaultRankTimeout,
	}
}

// Select returns the non-empty ordered backend set for a query.
func (s *SourceSelector) Select(ctx context.Context, q domain.NormalizedQuery) []domain.BackendKind {
	eligible := s.eligibleSet(q)
	logger.Debug("Rule-based eligibility: %v", eligible)

	ranked := s.llmRank(ctx, q, eligible)
	if len(ranked) == 0 {
		return eligible
	}
	logger.Info("LLM backend ranking applied: %v", ranked)
	return ranked
}

// eligibleSet applies the deterministic keyword/field rules. The result is
// ordered by descending default priority and is never empty.
func (s *SourceSelector) eligibleSet(q domain.NormalizedQuery) []domain.BackendKind {
	var kinds []domain.BackendKind

	if q.Flight != nil {
		kinds = append(kinds, domain.BackendFlight)
	}
	if s.wantsPlaces(q) {
		kinds = append(kinds, domain.BackendPlaces)
	}
	if s.wantsBrowser(q) {
		kinds = append(kinds, domain.BackendBrowser)
	}
	if s.wantsWeb(q) {
		kinds = append(kinds, domain.BackendWeb)
	}

	// Web search is the fallback that keeps the set non-empty.
	if len(kinds) == 0 {
		kinds = append(kinds, domain.BackendWeb)
	}

	return kinds
}

// wantsWeb reports whether the query asks for general travel information.
// Venue-only queries ("family hotels in Tokyo") stay with Places alone.
func (s *SourceSelector) wantsWeb(q domain.NormalizedQuery) bool {
	for _, t := range q.Terms {
		if webVocabulary[t] {
			return true
		}
	}
	return false
}

func (s *SourceSelector) wantsPlaces(q domain.NormalizedQuery) bool {
	for _, t := range q.Terms {
		if placesVocabulary[t] {
			return true
		}
	}
	// "things to do in X" style queries are venue queries too.
	lower := strings.ToLower(q.Raw)
	return strings.Contains(lower, "things to do") || strings.Contains(lower, "what to see")
}

func (s *SourceSelector) wantsBrowser(q domain.NormalizedQuery) bool {
	if urlPattern.MatchString(q.Raw) {
		return true
	}
	for _, t := range q.Terms {
		if browserVocabulary[t] {
			return true
		}
	}
	return false
}

// llmRank lets the LLM reorder or prune the eligible set. Returns nil (caller
// keeps the rule set) when the LLM is unavailable, errors, or returns nothing
// usable. Kinds outside the eligible set are discarded: the enumeration of
// backends is fixed, the LLM only supplies an ordering signal.
func (s *SourceSelector) llmRank(ctx context.Context, q domain.NormalizedQuery, eligible []domain.BackendKind) []domain.BackendKind {
	if s.llm == nil || len(eligible) < 2 {
		return nil
	}

	rctx, cancel := context.WithTimeout(ctx, s.rankTimeout)
	defer cancel()

	ranked, err := s.llm.RankBackends(rctx, q.SearchText, eligible)
	if err != nil {
		logger.Warn("LLM backend ranking failed: %v (using rule-based order)", err)
		return nil
	}

	allowed := make(map[domain.BackendKind]bool, len(eligible))
	for _, k := range eligible {
		allowed[k] = true
	}

	var out []domain.BackendKind
	seen := make(map[domain.BackendKind]bool)
	for _, k := range ranked {
		if allowed[k] && !seen[k] {
			out = append(out, k)
			seen[k] = true
		}
	}
	if len(out) == 0 {
		logger.Warn("LLM backend ranking returned nothing usable, keeping rule-based order")
		return nil
	}
	return out
}
