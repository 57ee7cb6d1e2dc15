package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSynthesizedAnswer_Degraded(t *testing.T) {
	healthy := SynthesizedAnswer{
		Sources: []SourceStatus{{Kind: BackendWeb}, {Kind: BackendPlaces}},
	}
	assert.False(t, healthy.Degraded())

	degraded := SynthesizedAnswer{
		Sources: []SourceStatus{
			{Kind: BackendWeb},
			{Kind: BackendPlaces, Failure: &BackendFailure{Class: FailureRateLimited}},
		},
	}
	assert.True(t, degraded.Degraded())
}

func TestSummarizeSources(t *testing.T) {
	sources := []SourceStatus{
		{Kind: BackendPlaces},
		{Kind: BackendWeb, Failure: &BackendFailure{Class: FailureTransient, Message: "connection reset"}},
	}

	summary := SummarizeSources(sources)
	assert.Equal(t, "places: success; web: failed (transient)", summary)
}

func TestSummarizeSources_Empty(t *testing.T) {
	assert.Equal(t, "", SummarizeSources(nil))
}
