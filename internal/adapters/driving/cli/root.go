// Package cli provides the command-line interface for Tripscout.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tripscout-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tripscout-cli/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/tripscout-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/tripscout-cli/internal/backends/amadeus"
	"github.com/custodia-labs/tripscout-cli/internal/backends/hyperbrowser"
	"github.com/custodia-labs/tripscout-cli/internal/backends/serper"
	"github.com/custodia-labs/tripscout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/tripscout-cli/internal/core/ports/driving"
	"github.com/custodia-labs/tripscout-cli/internal/core/services"
	"github.com/custodia-labs/tripscout-cli/internal/logger"
)

// version is the CLI version, overridable at build time via ldflags.
var version = "0.1.0"

var (
	configPath  string
	verboseMode bool
)

// Driving services, wired once per process in initServices.
var (
	researchService driving.ResearchService
	airportService  driving.AirportService
	airportCache    *sqlite.AirportCache
)

var rootCmd = &cobra.Command{
	Use:   "tripscout",
	Short: "Travel research from your terminal",
	Long: `Tripscout answers travel questions by fanning out across web search,
place listings, live page extraction and flight offers, then merging
everything into one ranked answer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseMode)
		// Help and version need no backends.
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}
		return initServicesFn()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if airportCache != nil {
			airportCache.Close() //nolint:errcheck
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.tripscout/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false, "verbose pipeline logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServicesFn is swapped out in tests.
var initServicesFn = initServices

// initServices wires the driven adapters into the core services. Missing
// credentials never abort startup; the affected backends report auth failures
// per request instead.
func initServices() error {
	if researchService != nil {
		return nil
	}

	store, err := file.NewCredentialStore(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := store.Config()
	logger.Debug("Config loaded from %s", store.Path())

	var llm driven.LLMService
	if cfg.OpenAI.APIKey != "" {
		llm, err = openai.NewLLMService(openai.Config{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
		})
		if err != nil {
			return fmt.Errorf("configuring LLM: %w", err)
		}
		logger.Debug("LLM assistance enabled (%s)", llm.ModelName())
	}

	serperClient := serper.NewClient(serper.Config{APIKey: cfg.Serper.APIKey})
	amadeusClient := amadeus.NewClient(amadeus.Config{
		APIKey:    cfg.Amadeus.APIKey,
		APISecret: cfg.Amadeus.APISecret,
		BaseURL:   cfg.Amadeus.BaseURL,
	})

	backends := []driven.Backend{
		serper.NewWebBackend(serperClient),
		serper.NewPlacesBackend(serperClient),
		hyperbrowser.New(hyperbrowser.Config{APIKey: cfg.Hyperbrowser.APIKey}),
		amadeus.NewFlightBackend(amadeusClient),
	}

	researchService = services.NewResearchService(
		services.NewQueryNormalizer(llm),
		services.NewSourceSelector(llm),
		services.NewResultSynthesizer(),
		backends,
		store,
	)

	// Cache failures degrade airport lookups to uncached, nothing more.
	airportCache, err = sqlite.NewAirportCache("")
	if err != nil {
		logger.Warn("Airport cache unavailable: %v", err)
		airportCache = nil
	}
	var cache driven.AirportCache
	if airportCache != nil {
		cache = airportCache
	}
	airportService = services.NewAirportService(amadeus.NewLocations(amadeusClient), cache)

	return nil
}
