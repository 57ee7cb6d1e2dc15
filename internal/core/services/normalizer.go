package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
	"github.com/custodia-labs/tripscout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/tripscout-cli/internal/logger"
)

// DefaultRewriteTimeout bounds the optional LLM rewrite call. On expiry the
// deterministic rule-based rewrite is used instead.
const DefaultRewriteTimeout = 8 * time.Second

// stopwords removed by the rule-based rewrite. Function words only - travel
// vocabulary stays intact because the selector keys off it.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "at": true, "be": true,
	"by": true, "can": true, "do": true, "for": true, "from": true,
	"how": true, "i": true, "in": true, "is": true, "it": true, "me": true,
	"my": true, "of": true, "on": true, "or": true, "please": true,
	"show": true, "some": true, "that": true, "the": true, "to": true,
	"want": true, "what": true, "where": true, "which": true, "with": true,
	"you": true, "your": true,
}

// travelSubjects are terms that mark a query as having travel intent even
// without an extractable location.
var travelSubjects = map[string]bool{
	"airline": true, "airport": true, "attraction": true, "attractions": true,
	"beach": true, "beaches": true, "destination": true, "destinations": true,
	"flight": true, "flights": true, "holiday": true, "hostel": true,
	"hostels": true, "hotel": true, "hotels": true, "itinerary": true,
	"museum": true, "museums": true, "resort": true, "resorts": true,
	"restaurant": true, "restaurants": true, "sightseeing": true,
	"tour": true, "tours": true, "travel": true, "trip": true,
	"vacation": true, "visit": true,
}

var (
	iataTokenPattern = regexp.MustCompile(`\b([A-Z]{3})\b`)
	datePattern      = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	locationPattern  = regexp.MustCompile(`\b(?:in|to|near|around)\s+([A-Z][a-zA-Z]*(?:\s+[A-Z][a-zA-Z]*)*)`)
)

// QueryNormalizer turns a raw Query into the pipeline's NormalizedQuery.
// The LLM service is optional; without it (or on any LLM error) the
// deterministic rule-based rewrite is used.
type QueryNormalizer struct {
	llm            driven.LLMService
	rewriteTimeout time.Duration
}

// NewQueryNormalizer creates a query normalizer. llm may be nil.
func NewQueryNormalizer(llm driven.LLMService) *QueryNormalizer {
	return &QueryNormalizer{
		llm:            llm,
		rewriteTimeout: DefaultRewriteTimeout,
	}
}

// Normalize derives the NormalizedQuery for one pipeline invocation.
// Returns domain.ErrMalformedQuery when the input is empty or carries no
// recognisable travel intent.
func (n *QueryNormalizer) Normalize(ctx context.Context, q domain.Query) (domain.NormalizedQuery, error) {
	text := strings.TrimSpace(q.Text)

	flight, err := n.extractFlight(text, q.Hints)
	if err != nil {
		return domain.NormalizedQuery{}, err
	}

	if text == "" && flight == nil {
		return domain.NormalizedQuery{}, fmt.Errorf("%w: empty query", domain.ErrMalformedQuery)
	}

	terms := ruleRewrite(text)
	location := extractLocation(text, q.Hints)

	if flight == nil && location == "" && !hasTravelSubject(terms) {
		return domain.NormalizedQuery{}, fmt.Errorf("%w: no location or travel subject in %q", domain.ErrMalformedQuery, text)
	}

	nq := domain.NormalizedQuery{
		Raw:        q.Text,
		SearchText: strings.Join(terms, " "),
		Terms:      terms,
		Location:   location,
		Flight:     flight,
	}

	if rewritten := n.llmRewrite(ctx, text); rewritten != "" {
		nq.SearchText = rewritten
	}

	logger.Debug("Normalized query: search=%q location=%q flight=%t", nq.SearchText, nq.Location, nq.Flight != nil)
	return nq, nil
}

// llmRewrite asks the LLM for a better search phrasing. Returns "" whenever
// the rewrite is unavailable, so the caller keeps the rule-based text.
func (n *QueryNormalizer) llmRewrite(ctx context.Context, text string) string {
	if n.llm == nil || text == "" {
		return ""
	}

	rctx, cancel := context.WithTimeout(ctx, n.rewriteTimeout)
	defer cancel()

	rewritten, err := n.llm.RewriteQuery(rctx, text)
	if err != nil {
		logger.Warn("LLM query rewrite failed: %v (using rule-based rewrite)", err)
		return ""
	}
	return strings.TrimSpace(rewritten)
}

// extractFlight resolves a flight spec from hints first, then from the query
// text. Returns nil when the query has no flight shape; returns
// ErrMalformedQuery when hints are present but invalid.
func (n *QueryNormalizer) extractFlight(text string, hints domain.QueryHints) (*domain.FlightSpec, error) {
	origin := strings.ToUpper(strings.TrimSpace(hints.Origin))
	destination := strings.ToUpper(strings.TrimSpace(hints.Destination))
	depart := strings.TrimSpace(hints.DepartDate)

	// Hints are authoritative when given, so reject bad ones instead of
	// silently falling back to text extraction.
	if origin != "" && !domain.ValidIATA(origin) {
		return nil, fmt.Errorf("%w: origin %q: airport codes must be 3-letter IATA codes", domain.ErrMalformedQuery, hints.Origin)
	}
	if destination != "" && !domain.ValidIATA(destination) {
		return nil, fmt.Errorf("%w: destination %q: airport codes must be 3-letter IATA codes", domain.ErrMalformedQuery, hints.Destination)
	}
	if depart != "" && !domain.ValidDate(depart) {
		return nil, fmt.Errorf("%w: departure date %q: dates must be in YYYY-MM-DD format", domain.ErrMalformedQuery, hints.DepartDate)
	}
	if hints.ReturnDate != "" && !domain.ValidDate(hints.ReturnDate) {
		return nil, fmt.Errorf("%w: return date %q: dates must be in YYYY-MM-DD format", domain.ErrMalformedQuery, hints.ReturnDate)
	}

	// Fill gaps from the query text: the first two distinct IATA-like
	// tokens in order, and the first ISO date.
	codes := iataTokenPattern.FindAllString(text, -1)
	for _, code := range codes {
		switch {
		case origin == "":
			origin = code
		case destination == "" && code != origin:
			destination = code
		}
	}
	if depart == "" {
		if m := datePattern.FindString(text); m != "" {
			depart = m
		}
	}

	if origin == "" || destination == "" || depart == "" {
		return nil, nil
	}

	spec := &domain.FlightSpec{
		Origin:      origin,
		Destination: destination,
		DepartDate:  depart,
		ReturnDate:  strings.TrimSpace(hints.ReturnDate),
		Adults:      hints.Adults,
		Cabin:       hints.Cabin,
	}
	applyFlightDefaults(spec)
	if !spec.Cabin.Valid() {
		return nil, fmt.Errorf("%w: travel class %q", domain.ErrMalformedQuery, hints.Cabin)
	}
	return spec, nil
}

// applyFlightDefaults fills the passenger count and cabin defaults.
func applyFlightDefaults(spec *domain.FlightSpec) {
	if spec.Adults <= 0 {
		spec.Adults = 1
	}
	if spec.Cabin == "" {
		spec.Cabin = domain.CabinEconomy
	}
}

// ValidateFlightSpec checks a caller-supplied flight spec and fills defaults.
// Used by the flight-only entry point which bypasses text extraction.
func ValidateFlightSpec(spec *domain.FlightSpec) error {
	spec.Origin = strings.ToUpper(strings.TrimSpace(spec.Origin))
	spec.Destination = strings.ToUpper(strings.TrimSpace(spec.Destination))

	if !domain.ValidIATA(spec.Origin) || !domain.ValidIATA(spec.Destination) {
		return fmt.Errorf("%w: airport codes must be 3-letter IATA codes", domain.ErrMalformedQuery)
	}
	if !domain.ValidDate(spec.DepartDate) {
		return fmt.Errorf("%w: dates must be in YYYY-MM-DD format", domain.ErrMalformedQuery)
	}
	if spec.ReturnDate != "" && !domain.ValidDate(spec.ReturnDate) {
		return fmt.Errorf("%w: dates must be in YYYY-MM-DD format", domain.ErrMalformedQuery)
	}
	applyFlightDefaults(spec)
	if !spec.Cabin.Valid() {
		return fmt.Errorf("%w: travel class %q", domain.ErrMalformedQuery, spec.Cabin)
	}
	return nil
}

// ruleRewrite is the deterministic fallback rewrite: lowercase, trim
// punctuation, strip stopwords.
func ruleRewrite(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	terms := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, `.,!?;:"'()[]`)
		if f == "" || stopwords[f] {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}

// extractLocation finds the destination: an explicit hint wins, otherwise the
// capitalised phrase after "in"/"to"/"near"/"around".
func extractLocation(text string, hints domain.QueryHints) string {
	if loc := strings.TrimSpace(hints.Location); loc != "" {
		return loc
	}
	if m := locationPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// hasTravelSubject reports whether any term is recognisable travel vocabulary.
func hasTravelSubject(terms []string) bool {
	for _, t := range terms {
		if travelSubjects[t] {
			return true
		}
	}
	return false
}
