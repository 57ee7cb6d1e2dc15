package domain

import (
	"fmt"
	"strings"
)

// AnswerEntry is one merged result row, annotated with its origin and score.
type AnswerEntry struct {
	// Source is the backend the row came from.
	Source BackendKind

	// Record is the underlying result row.
	Record Record

	// Score is the deterministic relevance signal used for ordering within
	// a backend's priority band. Higher is better.
	Score float64
}

// SourceStatus records the outcome of one selected backend for the summary.
type SourceStatus struct {
	// Kind identifies the backend.
	Kind BackendKind

	// Failure is nil when the backend succeeded.
	Failure *BackendFailure
}

// SynthesizedAnswer is the merged, ranked, deduplicated answer built from the
// backend results of one request. It is never mutated after construction.
type SynthesizedAnswer struct {
	// Query is the original query text.
	Query string

	// Entries are the merged rows, ordered by backend priority then score.
	Entries []AnswerEntry

	// Sources enumerates per-backend outcomes in selection order.
	Sources []SourceStatus

	// Summary is a human-readable line naming which backends succeeded
	// and which failed, so partial degradation stays visible to callers.
	Summary string
}

// Degraded reports whether at least one selected backend failed.
func (a SynthesizedAnswer) Degraded() bool {
	for _, s := range a.Sources {
		if s.Failure != nil {
			return true
		}
	}
	return false
}

// SummarizeSources renders the per-backend outcome line, e.g.
// "places: success; web: failed (transient)".
func SummarizeSources(sources []SourceStatus) string {
	parts := make([]string, 0, len(sources))
	for _, s := range sources {
		if s.Failure == nil {
			parts = append(parts, fmt.Sprintf("%s: success", s.Kind))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: failed (%s)", s.Kind, s.Failure.Class))
	}
	return strings.Join(parts, "; ")
}
