package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
)

var (
	flightsReturnDate string
	flightsAdults     int
	flightsCabin      string
	flightsJSON       bool
)

var flightsCmd = &cobra.Command{
	Use:   "flights [origin] [destination] [depart-date]",
	Short: "Search flight offers",
	Long: `Searches flight offers between two airports on a date.

Origin and destination are 3-letter IATA airport codes; the date is
YYYY-MM-DD. One-way by default, use --return for a round trip.

Examples:
  tripscout flights JFK NAP 2025-03-15
  tripscout flights JFK NAP 2025-03-15 --return 2025-03-22 --cabin BUSINESS`,
	Args: cobra.ExactArgs(3),
	RunE: runFlights,
}

func init() {
	flightsCmd.Flags().StringVarP(&flightsReturnDate, "return", "r", "", "return date (YYYY-MM-DD) for a round trip")
	flightsCmd.Flags().IntVarP(&flightsAdults, "adults", "a", 1, "passenger count")
	flightsCmd.Flags().StringVarP(&flightsCabin, "cabin", "c", "ECONOMY", "travel class (ECONOMY, PREMIUM_ECONOMY, BUSINESS, FIRST)")
	flightsCmd.Flags().BoolVar(&flightsJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(flightsCmd)
}

func runFlights(cmd *cobra.Command, args []string) error {
	if researchService == nil {
		return errors.New("research service not configured")
	}

	spec := domain.FlightSpec{
		Origin:      strings.ToUpper(args[0]),
		Destination: strings.ToUpper(args[1]),
		DepartDate:  args[2],
		ReturnDate:  flightsReturnDate,
		Adults:      flightsAdults,
		Cabin:       domain.CabinClass(strings.ToUpper(flightsCabin)),
	}

	answer, err := researchService.SearchFlights(cmd.Context(), spec)
	if err != nil {
		return fmt.Errorf("flight search failed: %w", err)
	}

	if flightsJSON {
		return outputAnswerJSON(cmd, answer)
	}
	return outputAnswerTable(cmd, answer)
}
