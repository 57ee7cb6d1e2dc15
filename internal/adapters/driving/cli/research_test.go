package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
)

func TestResearchCmd_Use(t *testing.T) {
	assert.Equal(t, "research [query]", researchCmd.Use)
}

func TestResearchCmd_Short(t *testing.T) {
	assert.Equal(t, "Research a travel question", researchCmd.Short)
}

func TestResearchCmd_RequiresExactlyOneArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"research"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestResearchCmd_HasLocationFlag(t *testing.T) {
	flag := researchCmd.Flags().Lookup("location")
	require.NotNil(t, flag, "location flag should exist")
	assert.Equal(t, "l", flag.Shorthand)
}

func TestResearchCmd_ExecutesWithQuery(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"research", "family hotels in Tokyo"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "Results:")
	assert.Contains(t, buf.String(), "Hotel Sakura")
	assert.Contains(t, buf.String(), "Rating: 4.6 (812 reviews)")
}

func TestResearchCmd_ForwardsLocationHint(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := researchService.(*mockResearchService)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"research", "--location", "Tokyo", "family hotels"})
	defer func() {
		rootCmd.SetArgs(nil)
		researchLocation = ""
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "Tokyo", mock.lastQuery.Hints.Location)
}

func TestResearchCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"research", "--json", "family hotels in Tokyo"})
	defer func() {
		rootCmd.SetArgs(nil)
		researchJSON = false
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "\"Entries\"")
	assert.Contains(t, buf.String(), "\"Summary\"")
}

func TestResearchCmd_DegradedAnswerStaysVisible(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	answer := defaultMockAnswer()
	answer.Sources = append(answer.Sources, domain.SourceStatus{
		Kind:    domain.BackendWeb,
		Failure: &domain.BackendFailure{Class: domain.FailureTransient, Message: "connection reset"},
	})
	answer.Summary = "places: success; web: failed (transient)"
	researchService.(*mockResearchService).answer = answer

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"research", "family hotels in Tokyo"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "web: failed (transient)")
	assert.Contains(t, buf.String(), "the answer is partial")
}

func TestResearchCmd_MalformedQuery(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	researchService.(*mockResearchService).answer = nil
	researchService.(*mockResearchService).err = domain.ErrMalformedQuery

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"research", "???"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedQuery)
}

func TestResearchCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	researchService = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"research", "anything"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "research service not configured")
}

func TestOutputAnswerTable_EmptyResults(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	err := outputAnswerTable(rootCmd, &domain.SynthesizedAnswer{Summary: "web: success"})

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No results found")
}

func TestOutputAnswerTable_FlightRecord(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)

	answer := &domain.SynthesizedAnswer{
		Entries: []domain.AnswerEntry{
			{
				Source: domain.BackendFlight,
				Record: domain.Record{
					Title:    "DL402: JFK -> NAP",
					Price:    645.40,
					Currency: "USD",
					Duration: "9h45m",
					Stops:    1,
					DepartAt: "2025-03-15T18:30:00",
				},
			},
		},
		Sources: []domain.SourceStatus{{Kind: domain.BackendFlight}},
		Summary: "flight: success",
	}

	err := outputAnswerTable(rootCmd, answer)

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "DL402: JFK -> NAP")
	assert.Contains(t, buf.String(), "Price: 645.40 USD")
	assert.Contains(t, buf.String(), "Duration: 9h45m, 1 stop")
}
