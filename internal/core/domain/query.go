package domain

import (
	"regexp"
	"strings"
	"time"
)

// CabinClass is the requested travel class for flight searches.
type CabinClass string

// Cabin classes accepted by the flight backend.
const (
	CabinEconomy        CabinClass = "ECONOMY"
	CabinPremiumEconomy CabinClass = "PREMIUM_ECONOMY"
	CabinBusiness       CabinClass = "BUSINESS"
	CabinFirst          CabinClass = "FIRST"
)

// Valid reports whether the cabin class is one of the accepted values.
func (c CabinClass) Valid() bool {
	switch c {
	case CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
		return true
	}
	return false
}

// Query is the raw caller input. It is immutable once received.
type Query struct {
	// Text is the natural-language query.
	Text string

	// Hints carries optional structured fields supplied by the caller.
	Hints QueryHints
}

// QueryHints are optional structured fields accompanying a query.
// Zero values mean "not provided".
type QueryHints struct {
	// Location biases web/places search towards a destination.
	Location string

	// Origin and Destination are 3-letter IATA airport codes.
	Origin      string
	Destination string

	// DepartDate and ReturnDate are in YYYY-MM-DD format.
	DepartDate string
	ReturnDate string

	// Adults is the passenger count (default 1).
	Adults int

	// Cabin is the travel class (default ECONOMY).
	Cabin CabinClass
}

// FlightSpec is a fully resolved flight search request.
type FlightSpec struct {
	// Origin and Destination are 3-letter IATA airport codes.
	Origin      string
	Destination string

	// DepartDate is the outbound date in YYYY-MM-DD format.
	DepartDate string

	// ReturnDate is the optional return date. Empty means one-way.
	ReturnDate string

	// Adults is the passenger count, at least 1.
	Adults int

	// Cabin is the travel class.
	Cabin CabinClass
}

// RoundTrip reports whether a return date was requested.
func (f FlightSpec) RoundTrip() bool {
	return f.ReturnDate != ""
}

// NormalizedQuery is the pipeline-internal form of a query. It is owned by a
// single pipeline invocation and discarded when the request completes.
type NormalizedQuery struct {
	// Raw is the original query text, preserved for summaries and logging.
	Raw string

	// SearchText is the canonical search string sent to search backends.
	SearchText string

	// Terms are the lowercased significant terms of the query.
	Terms []string

	// Location is the extracted destination, if any.
	Location string

	// Flight is the extracted flight request, nil when the query has no
	// recognisable flight intent.
	Flight *FlightSpec
}

var iataPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// ValidIATA reports whether code is a well-formed 3-letter IATA airport code.
func ValidIATA(code string) bool {
	return iataPattern.MatchString(strings.ToUpper(strings.TrimSpace(code)))
}

// ValidDate reports whether date is a well-formed YYYY-MM-DD calendar date.
func ValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
