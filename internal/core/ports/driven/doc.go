// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Backend: Invokes one external data source (web, places, browser, flight)
//   - CredentialStore: Read-only per-backend credential lookup
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Query rewriting and backend re-ranking. Without it the
//     deterministic rule-based behaviour is used.
//   - AirportSource / AirportCache: Airport reference-data lookup. Without
//     them the find-airports surface is disabled.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or backend package
package driven
