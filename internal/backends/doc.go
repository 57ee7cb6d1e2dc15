// Package backends provides implementations of the driven.Backend interface
// for the external data sources: Serper web and places search, Hyperbrowser
// page extraction, and Amadeus flight search.
//
// All adapters share the retrying HTTP client in this package: bounded
// timeout, one retry on transport errors and 5xx responses, one retry after
// a backoff on 429, no retry on other 4xx. Failed invocations surface
// classified errors; the pipeline captures them as BackendResult failures so
// one adapter can never abort its siblings.
package backends
