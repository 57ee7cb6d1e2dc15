package driven

import "github.com/custodia-labs/tripscout-cli/internal/core/domain"

// CredentialStore is a read-only lookup of per-backend API credentials.
// It is loaded once at process start and never mutated afterwards; a request
// only ever reads from it.
type CredentialStore interface {
	// Credential returns the named credential for a backend kind.
	// Returns domain.ErrCredentialMissing when the key is not configured.
	Credential(kind domain.BackendKind, name string) (string, error)

	// HasCredentials reports whether all required credentials for a backend
	// kind are present.
	HasCredentials(kind domain.BackendKind) bool
}
