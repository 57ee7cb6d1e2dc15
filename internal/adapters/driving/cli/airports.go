package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
)

var airportsJSON bool

var airportsCmd = &cobra.Command{
	Use:   "airports [keyword]",
	Short: "Look up airports by city or name",
	Long: `Resolves a city or airport name to IATA airport codes.
Lookups are cached locally, so repeated keywords skip the upstream API.`,
	Args: cobra.ExactArgs(1),
	RunE: runAirports,
}

func init() {
	airportsCmd.Flags().BoolVar(&airportsJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(airportsCmd)
}

func runAirports(cmd *cobra.Command, args []string) error {
	if airportService == nil {
		return errors.New("airport service not configured")
	}

	airports, err := airportService.FindAirports(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Printf("No airports matching %q.\n", args[0])
			return nil
		}
		return fmt.Errorf("airport lookup failed: %w", err)
	}

	if airportsJSON {
		data, err := json.MarshalIndent(airports, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal airports: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println("Airports:")
	cmd.Println()
	for _, a := range airports {
		cmd.Printf("  %s  %s", a.IATA, a.Name)
		if a.City != "" {
			cmd.Printf(" (%s, %s)", a.City, a.Country)
		}
		cmd.Println()
	}
	return nil
}
