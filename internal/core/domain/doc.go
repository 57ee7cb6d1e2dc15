// Package domain defines the core business entities for Tripscout.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Query / NormalizedQuery: The caller's question and its pipeline form
//   - BackendKind: The closed enumeration of external data sources
//   - BackendResult: Per-backend outcome, success records or classified failure
//   - SynthesizedAnswer: The merged, ranked, deduplicated answer
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
