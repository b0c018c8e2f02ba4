package entity

// Airport describes one entry of the airport directory used for
// timezone localization.
type Airport struct {
	IATA    string
	ICAO    string
	Name    string
	City    string
	Country string
	TzName  string
}
