package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBackendKind(t *testing.T) {
	tests := []struct {
		input    string
		expected BackendKind
		ok       bool
	}{
		{"web", BackendWeb, true},
		{"Places", BackendPlaces, true},
		{" BROWSER ", BackendBrowser, true},
		{"flight", BackendFlight, true},
		{"maps", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			kind, ok := ParseBackendKind(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, kind)
		})
	}
}

func TestAllBackendKinds(t *testing.T) {
	kinds := AllBackendKinds()
	assert.Equal(t, []BackendKind{BackendWeb, BackendPlaces, BackendBrowser, BackendFlight}, kinds)
}

func TestBackendResult_OK(t *testing.T) {
	success := BackendResult{Kind: BackendWeb, Records: []Record{{Title: "x"}}}
	assert.True(t, success.OK())

	failed := BackendResult{Kind: BackendWeb, Failure: &BackendFailure{Class: FailureTransient}}
	assert.False(t, failed.OK())
}
