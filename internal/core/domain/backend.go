package domain

import "strings"

// BackendKind identifies an external data source.
type BackendKind string

// The closed set of backend kinds. Source selection always operates over this
// enumeration; external re-ranking signals may reorder or prune it but never
// extend it.
const (
	BackendWeb     BackendKind = "web"
	BackendPlaces  BackendKind = "places"
	BackendBrowser BackendKind = "browser"
	BackendFlight  BackendKind = "flight"
)

// AllBackendKinds returns the full backend enumeration in default priority order.
func AllBackendKinds() []BackendKind {
	return []BackendKind{BackendWeb, BackendPlaces, BackendBrowser, BackendFlight}
}

// ParseBackendKind maps a string to a known backend kind.
// Returns false for anything outside the closed set.
func ParseBackendKind(s string) (BackendKind, bool) {
	switch BackendKind(strings.ToLower(strings.TrimSpace(s))) {
	case BackendWeb:
		return BackendWeb, true
	case BackendPlaces:
		return BackendPlaces, true
	case BackendBrowser:
		return BackendBrowser, true
	case BackendFlight:
		return BackendFlight, true
	}
	return "", false
}

// FailureClass is the closed classification of backend failures.
type FailureClass string

// Failure classifications. Adapter errors are always mapped onto one of these
// before they reach the synthesizer.
const (
	FailureTransient   FailureClass = "transient"
	FailureAuthInvalid FailureClass = "auth_invalid"
	FailureRateLimited FailureClass = "rate_limited"
	FailureNotFound    FailureClass = "not_found"
	FailureMalformed   FailureClass = "malformed"
)

// Record is a single heterogeneous result row from a backend. Fields are
// populated according to the backend kind; unset fields are zero.
type Record struct {
	// Title is the primary label (page title, place name, or route).
	Title string

	// Snippet is descriptive text (search snippet, extraction detail).
	Snippet string

	// URL is the source link, when the backend provides one.
	URL string

	// Address is the street address for place records.
	Address string

	// Location is the destination or city the record refers to.
	Location string

	// Category is the place category (hotel, restaurant, ...).
	Category string

	// Rating is a 0-5 quality signal; 0 means absent.
	Rating float64

	// RatingCount is the number of reviews behind Rating.
	RatingCount int

	// Price is a monetary amount; 0 means absent.
	Price float64

	// Currency is the ISO currency code for Price.
	Currency string

	// Carrier is the operating airline code for flight records.
	Carrier string

	// Duration is the itinerary duration for flight records.
	Duration string

	// Stops is the number of intermediate stops for flight records.
	Stops int

	// DepartAt and ArriveAt are schedule timestamps for flight records.
	DepartAt string
	ArriveAt string

	// Availability is the extracted availability note for browser records.
	Availability string
}

// BackendFailure describes why a backend invocation failed.
type BackendFailure struct {
	// Class is the failure classification.
	Class FailureClass

	// Message is a human-readable detail for logs and summaries.
	Message string
}

// BackendResult is the outcome of one backend invocation: either a list of
// records or a classified failure, never both.
type BackendResult struct {
	// Kind identifies the backend that produced this result.
	Kind BackendKind

	// Records are the returned rows. Empty on failure.
	Records []Record

	// Failure is non-nil when the invocation failed after exhausting retries.
	Failure *BackendFailure
}

// OK reports whether the invocation succeeded.
func (r BackendResult) OK() bool {
	return r.Failure == nil
}
