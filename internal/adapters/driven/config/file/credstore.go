// Package file provides the file-based configuration and credential store.
// Configuration lives in a TOML file in the tripscout config directory,
// loaded once at process start and read-only afterwards.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/tripscout-cli/internal/core/domain"
	"github.com/custodia-labs/tripscout-cli/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// Config is the on-disk configuration shape.
type Config struct {
	Serper struct {
		APIKey string `toml:"api_key"`
	} `toml:"serper"`

	OpenAI struct {
		APIKey  string `toml:"api_key"`
		BaseURL string `toml:"base_url"`
		Model   string `toml:"model"`
	} `toml:"openai"`

	Amadeus struct {
		APIKey    string `toml:"api_key"`
		APISecret string `toml:"api_secret"`
		BaseURL   string `toml:"base_url"`
	} `toml:"amadeus"`

	Hyperbrowser struct {
		APIKey string `toml:"api_key"`
	} `toml:"hyperbrowser"`
}

// CredentialStore is the read-only TOML-backed credential store.
// It is loaded once per process start and never mutated; requests only read
// from it.
type CredentialStore struct {
	cfg  Config
	path string
}

// NewCredentialStore loads the config file. If path is empty, defaults to
// ~/.tripscout/config.toml. A missing file yields an empty store: every
// backend then degrades to Failure(AuthInvalid) instead of aborting startup.
func NewCredentialStore(path string) (*CredentialStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".tripscout", "config.toml")
	}

	s := &CredentialStore{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &s.cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return s, nil
}

// Path returns the config file path.
func (s *CredentialStore) Path() string {
	return s.path
}

// Config returns the loaded configuration.
func (s *CredentialStore) Config() Config {
	return s.cfg
}

// Credential returns the named credential for a backend kind.
func (s *CredentialStore) Credential(kind domain.BackendKind, name string) (string, error) {
	var value string
	switch kind {
	case domain.BackendWeb, domain.BackendPlaces:
		if name == "api_key" {
			value = s.cfg.Serper.APIKey
		}
	case domain.BackendBrowser:
		if name == "api_key" {
			value = s.cfg.Hyperbrowser.APIKey
		}
	case domain.BackendFlight:
		switch name {
		case "api_key":
			value = s.cfg.Amadeus.APIKey
		case "api_secret":
			value = s.cfg.Amadeus.APISecret
		}
	}
	if value == "" {
		return "", fmt.Errorf("%s %s: %w", kind, name, domain.ErrCredentialMissing)
	}
	return value, nil
}

// HasCredentials reports whether all required credentials for a backend kind
// are present.
func (s *CredentialStore) HasCredentials(kind domain.BackendKind) bool {
	switch kind {
	case domain.BackendWeb, domain.BackendPlaces:
		return s.cfg.Serper.APIKey != ""
	case domain.BackendBrowser:
		return s.cfg.Hyperbrowser.APIKey != ""
	case domain.BackendFlight:
		return s.cfg.Amadeus.APIKey != "" && s.cfg.Amadeus.APISecret != ""
	}
	return false
}
