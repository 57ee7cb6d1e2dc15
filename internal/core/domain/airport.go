package domain

// Airport is a reference-data entry resolved from an airport/city keyword.
type Airport struct {
	// IATA is the 3-letter airport code.
	IATA string

	// Name is the official airport name.
	Name string

	// City and Country locate the airport.
	City    string
	Country string
}
