package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
)

var (
	researchLocation string
	researchJSON     bool
)

var researchCmd = &cobra.Command{
	Use:   "research [query]",
	Short: "Research a travel question",
	Long: `Answers a natural-language travel question by querying every relevant
data source concurrently: web search, place listings, live page
extraction and flight offers. Partial source failures degrade the
answer instead of failing it.`,
	Args: cobra.ExactArgs(1),
	RunE: runResearch,
}

func init() {
	researchCmd.Flags().StringVarP(&researchLocation, "location", "l", "", "destination to bias results towards")
	researchCmd.Flags().BoolVar(&researchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(researchCmd)
}

func runResearch(cmd *cobra.Command, args []string) error {
	if researchService == nil {
		return errors.New("research service not configured")
	}

	query := domain.Query{
		Text:  args[0],
		Hints: domain.QueryHints{Location: researchLocation},
	}

	answer, err := researchService.Research(cmd.Context(), query)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedQuery) {
			return fmt.Errorf("cannot interpret query %q: %w", args[0], err)
		}
		return fmt.Errorf("research failed: %w", err)
	}

	if researchJSON {
		return outputAnswerJSON(cmd, answer)
	}
	return outputAnswerTable(cmd, answer)
}

func outputAnswerJSON(cmd *cobra.Command, answer *domain.SynthesizedAnswer) error {
	data, err := json.MarshalIndent(answer, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal answer: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputAnswerTable(cmd *cobra.Command, answer *domain.SynthesizedAnswer) error {
	cmd.Printf("Sources: %s\n", answer.Summary)
	if answer.Degraded() {
		cmd.Println("Note: some sources failed; the answer is partial.")
	}
	cmd.Println()

	if len(answer.Entries) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, e := range answer.Entries {
		cmd.Printf("  [%d] %s (%s)\n", i+1, e.Record.Title, e.Source)
		printRecordDetails(cmd, e.Record)
		cmd.Println()
	}
	return nil
}

// printRecordDetails prints the populated fields of one record, indented
// under its title line.
func printRecordDetails(cmd *cobra.Command, r domain.Record) {
	if r.Address != "" {
		cmd.Printf("      %s\n", r.Address)
	}
	if r.Rating > 0 {
		cmd.Printf("      Rating: %.1f (%d reviews)\n", r.Rating, r.RatingCount)
	}
	if r.Price > 0 {
		cmd.Printf("      Price: %.2f %s\n", r.Price, r.Currency)
	}
	if r.Duration != "" {
		stops := "non-stop"
		if r.Stops == 1 {
			stops = "1 stop"
		} else if r.Stops > 1 {
			stops = fmt.Sprintf("%d stops", r.Stops)
		}
		cmd.Printf("      Duration: %s, %s\n", r.Duration, stops)
	}
	if r.DepartAt != "" {
		cmd.Printf("      Departs: %s\n", r.DepartAt)
	}
	if r.Availability != "" {
		cmd.Printf("      Availability: %s\n", r.Availability)
	}
	if r.Snippet != "" {
		cmd.Printf("      %s\n", r.Snippet)
	}
	if r.URL != "" {
		cmd.Printf("      %s\n", r.URL)
	}
}
