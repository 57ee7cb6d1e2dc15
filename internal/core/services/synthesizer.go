package services

import (
	"sort"
	"strings"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
	"github.com/custodia-labs/tripscout-cli/internal/logger"
)

// ResultSynthesizer merges per-backend results into one answer: partition,
// flatten, dedupe, rank, summarise. The merge depends only on backend
// priority (selection order) and record signals, never on completion order.
type ResultSynthesizer struct{}

// NewResultSynthesizer creates a result synthesizer.
func NewResultSynthesizer() *ResultSynthesizer {
	return &ResultSynthesizer{}
}

// mergedEntry carries the sort keys alongside the entry during ranking.
type mergedEntry struct {
	entry    domain.AnswerEntry
	priority int // selection-order index, lower is better
	position int // original position within its backend's records
}

// Synthesize builds the answer from the backend results of one request.
// kinds is the selected backend set in priority order; results holds one
// BackendResult per selected backend, in any order.
//
// Returns *domain.AllSourcesFailedError when no backend succeeded.
func (s *ResultSynthesizer) Synthesize(query string, kinds []domain.BackendKind, results []domain.BackendResult) (*domain.SynthesizedAnswer, error) {
	priority := make(map[domain.BackendKind]int, len(kinds))
	for i, k := range kinds {
		priority[k] = i
	}

	// Re-index results by selection order so the merge is insensitive to
	// the order adapters happened to complete in.
	byKind := make(map[domain.BackendKind]domain.BackendResult, len(results))
	for _, r := range results {
		byKind[r.Kind] = r
	}

	sources := make([]domain.SourceStatus, 0, len(kinds))
	anySuccess := false
	for _, k := range kinds {
		r, ok := byKind[k]
		if !ok {
			// A selected backend with no recorded result was abandoned.
			r = domain.BackendResult{
				Kind:    k,
				Failure: &domain.BackendFailure{Class: domain.FailureTransient, Message: "no result recorded"},
			}
		}
		sources = append(sources, domain.SourceStatus{Kind: k, Failure: r.Failure})
		if r.OK() {
			anySuccess = true
		}
	}

	if !anySuccess {
		logger.Warn("All %d selected backends failed", len(kinds))
		return nil, &domain.AllSourcesFailedError{Failures: sources}
	}

	merged := s.mergeRecords(kinds, priority, byKind)

	answer := &domain.SynthesizedAnswer{
		Query:   query,
		Entries: make([]domain.AnswerEntry, len(merged)),
		Sources: sources,
		Summary: domain.SummarizeSources(sources),
	}
	for i, m := range merged {
		answer.Entries[i] = m.entry
	}

	logger.Info("Synthesized %d entries from %d backends (%s)", len(answer.Entries), len(kinds), answer.Summary)
	return answer, nil
}

// mergeRecords flattens successful results in priority order, deduplicates by
// normalized (title, location), and sorts by (priority, score, position).
func (s *ResultSynthesizer) mergeRecords(
	kinds []domain.BackendKind,
	priority map[domain.BackendKind]int,
	byKind map[domain.BackendKind]domain.BackendResult,
) []mergedEntry {
	var merged []mergedEntry
	seen := make(map[string]bool)

	// Iterating kinds in selection order means the first occurrence of a
	// duplicate key is always the higher-priority backend's record.
	for _, k := range kinds {
		r, ok := byKind[k]
		if !ok || !r.OK() {
			continue
		}
		for pos, rec := range r.Records {
			key := dedupeKey(rec)
			if key != "" && seen[key] {
				continue
			}
			if key != "" {
				seen[key] = true
			}
			merged = append(merged, mergedEntry{
				entry: domain.AnswerEntry{
					Source: k,
					Record: rec,
					Score:  signalScore(rec),
				},
				priority: priority[k],
				position: pos,
			})
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].priority != merged[j].priority {
			return merged[i].priority < merged[j].priority
		}
		if merged[i].entry.Score != merged[j].entry.Score {
			return merged[i].entry.Score > merged[j].entry.Score
		}
		return merged[i].position < merged[j].position
	})

	return merged
}

// dedupeKey normalizes (title, location) into a comparison key. Records
// without a title never collapse.
func dedupeKey(rec domain.Record) string {
	title := normalizeKeyPart(rec.Title)
	if title == "" {
		return ""
	}
	return title + "|" + normalizeKeyPart(rec.Location)
}

// normalizeKeyPart lowercases, trims and collapses whitespace.
func normalizeKeyPart(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// signalScore is the deterministic relevance signal used within a backend's
// priority band. Rated records score rating*10 (0-50); priced records score
// 50/(1+price/100), so cheaper options rank higher on a bounded scale.
// Records with neither signal score 0 and keep their original order.
func signalScore(rec domain.Record) float64 {
	if rec.Rating > 0 {
		return rec.Rating * 10
	}
	if rec.Price > 0 {
		return 50 / (1 + rec.Price/100)
	}
	return 0
}
