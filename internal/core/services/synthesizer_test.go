package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
)

func TestResultSynthesizer_Synthesize(t *testing.T) {
	syn := NewResultSynthesizer()

	t.Run("orders entries by backend priority then score", func(t *testing.T) {
		kinds := []domain.BackendKind{domain.BackendPlaces, domain.BackendWeb}
		results := []domain.BackendResult{
			{Kind: domain.BackendWeb, Records: []domain.Record{
				{Title: "Tokyo travel guide", URL: "https://example.com/guide"},
			}},
			{Kind: domain.BackendPlaces, Records: []domain.Record{
				{Title: "Hotel Ume", Location: "Tokyo", Rating: 4.1},
				{Title: "Hotel Sakura", Location: "Tokyo", Rating: 4.6},
			}},
		}

		answer, err := syn.Synthesize("family hotels in Tokyo", kinds, results)
		require.NoError(t, err)

		require.Len(t, answer.Entries, 3)
		assert.Equal(t, "Hotel Sakura", answer.Entries[0].Record.Title)
		assert.Equal(t, "Hotel Ume", answer.Entries[1].Record.Title)
		assert.Equal(t, "Tokyo travel guide", answer.Entries[2].Record.Title)
		assert.False(t, answer.Degraded())
	})

	t.Run("merge is insensitive to result order", func(t *testing.T) {
		kinds := []domain.BackendKind{domain.BackendPlaces, domain.BackendWeb, domain.BackendBrowser}
		base := []domain.BackendResult{
			{Kind: domain.BackendPlaces, Records: []domain.Record{{Title: "Hotel Sakura", Rating: 4.6}}},
			{Kind: domain.BackendWeb, Records: []domain.Record{{Title: "Tokyo guide"}}},
			{Kind: domain.BackendBrowser, Records: []domain.Record{{Title: "Live rates", Price: 120}}},
		}
		permutations := [][]int{{0, 1, 2}, {2, 1, 0}, {1, 2, 0}}

		var first *domain.SynthesizedAnswer
		for _, perm := range permutations {
			shuffled := make([]domain.BackendResult, len(base))
			for i, p := range perm {
				shuffled[i] = base[p]
			}

			answer, err := syn.Synthesize("q", kinds, shuffled)
			require.NoError(t, err)

			if first == nil {
				first = answer
				continue
			}
			assert.Equal(t, first.Entries, answer.Entries)
			assert.Equal(t, first.Sources, answer.Sources)
		}
	})

	t.Run("duplicates collapse to the higher-priority backend", func(t *testing.T) {
		kinds := []domain.BackendKind{domain.BackendPlaces, domain.BackendWeb}
		results := []domain.BackendResult{
			{Kind: domain.BackendWeb, Records: []domain.Record{
				{Title: "Hotel  Sakura", Location: "tokyo", URL: "https://example.com"},
			}},
			{Kind: domain.BackendPlaces, Records: []domain.Record{
				{Title: "Hotel Sakura", Location: "Tokyo", Rating: 4.6},
			}},
		}

		answer, err := syn.Synthesize("q", kinds, results)
		require.NoError(t, err)

		require.Len(t, answer.Entries, 1)
		assert.Equal(t, domain.BackendPlaces, answer.Entries[0].Source)
	})

	t.Run("untitled records never collapse", func(t *testing.T) {
		kinds := []domain.BackendKind{domain.BackendWeb}
		results := []domain.BackendResult{
			{Kind: domain.BackendWeb, Records: []domain.Record{
				{Snippet: "first"},
				{Snippet: "second"},
			}},
		}

		answer, err := syn.Synthesize("q", kinds, results)
		require.NoError(t, err)
		assert.Len(t, answer.Entries, 2)
	})

	t.Run("partial failure degrades the answer", func(t *testing.T) {
		kinds := []domain.BackendKind{domain.BackendPlaces, domain.BackendWeb}
		results := []domain.BackendResult{
			{Kind: domain.BackendPlaces, Records: []domain.Record{{Title: "Hotel Sakura", Rating: 4.6}}},
			{Kind: domain.BackendWeb, Failure: &domain.BackendFailure{
				Class:   domain.FailureTransient,
				Message: "connection reset",
			}},
		}

		answer, err := syn.Synthesize("q", kinds, results)
		require.NoError(t, err)

		assert.True(t, answer.Degraded())
		assert.Equal(t, "places: success; web: failed (transient)", answer.Summary)
		assert.Len(t, answer.Entries, 1)
	})

	t.Run("all failures is a hard error", func(t *testing.T) {
		kinds := []domain.BackendKind{domain.BackendPlaces, domain.BackendWeb}
		results := []domain.BackendResult{
			{Kind: domain.BackendPlaces, Failure: &domain.BackendFailure{Class: domain.FailureAuthInvalid}},
			{Kind: domain.BackendWeb, Failure: &domain.BackendFailure{Class: domain.FailureTransient}},
		}

		answer, err := syn.Synthesize("q", kinds, results)
		require.Error(t, err)
		assert.Nil(t, answer)

		allFailed, ok := domain.IsAllSourcesFailed(err)
		require.True(t, ok)
		assert.Len(t, allFailed.Failures, 2)
	})

	t.Run("missing result slot counts as transient failure", func(t *testing.T) {
		kinds := []domain.BackendKind{domain.BackendPlaces, domain.BackendWeb}
		results := []domain.BackendResult{
			{Kind: domain.BackendPlaces, Records: []domain.Record{{Title: "Hotel Sakura"}}},
		}

		answer, err := syn.Synthesize("q", kinds, results)
		require.NoError(t, err)

		require.Len(t, answer.Sources, 2)
		require.NotNil(t, answer.Sources[1].Failure)
		assert.Equal(t, domain.FailureTransient, answer.Sources[1].Failure.Class)
	})

	t.Run("empty success contributes nothing but counts as success", func(t *testing.T) {
		kinds := []domain.BackendKind{domain.BackendWeb}
		results := []domain.BackendResult{
			{Kind: domain.BackendWeb},
		}

		answer, err := syn.Synthesize("q", kinds, results)
		require.NoError(t, err)
		assert.Empty(t, answer.Entries)
		assert.False(t, answer.Degraded())
	})
}

func TestSignalScore(t *testing.T) {
	t.Run("rating beats price signal", func(t *testing.T) {
		rated := signalScore(domain.Record{Rating: 4.6})
		assert.InDelta(t, 46, rated, 0.001)
	})

	t.Run("cheaper options score higher", func(t *testing.T) {
		cheap := signalScore(domain.Record{Price: 100})
		expensive := signalScore(domain.Record{Price: 400})
		assert.Greater(t, cheap, expensive)
	})

	t.Run("no signal scores zero", func(t *testing.T) {
		assert.Zero(t, signalScore(domain.Record{Title: "plain"}))
	})
}
