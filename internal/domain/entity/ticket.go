package entity

import "time"

// RawRow maps a column header, exactly as it appears in the uploaded sheet,
// to its cell value (string, float64, time.Time or nil). It is kept on the
// normalized row for audit and enrichment.
type RawRow map[string]interface{}

// CrewEnrichment carries optional crew-roster data matched onto a ticket row.
// The typed sub-record replaces ad-hoc reserved keys in the raw bag.
type CrewEnrichment struct {
	PassportExpiry *time.Time `bson:"passportExpiry,omitempty"`
	CitizenshipNo  string     `bson:"citizenshipNo,omitempty"`
	Phone          string     `bson:"phone,omitempty"`
}

// TicketRow is one normalized reservation line from a ticketing sheet.
// Pointer time fields are nil when the source cell was absent or unparseable.
type TicketRow struct {
	PairingRoute   string          `bson:"pairingRoute,omitempty"`
	FlightNumber   string          `bson:"flightNumber,omitempty"`
	Airline        string          `bson:"airline,omitempty"`
	DepDateTime    *time.Time      `bson:"depDateTime,omitempty"`
	ArrDateTime    *time.Time      `bson:"arrDateTime,omitempty"`
	DepPort        string          `bson:"depPort,omitempty"`
	ArrPort        string          `bson:"arrPort,omitempty"`
	CrewName       string          `bson:"crewName,omitempty"`
	Rank           string          `bson:"rank,omitempty"`
	Nationality    string          `bson:"nationality,omitempty"`
	PassportNumber string          `bson:"passportNumber,omitempty"`
	DateOfBirth    *time.Time      `bson:"dateOfBirth,omitempty"`
	Gender         string          `bson:"gender,omitempty"`
	Status         string          `bson:"status,omitempty"`
	Enrichment     *CrewEnrichment `bson:"enrichment,omitempty"`
	Raw            RawRow          `bson:"raw,omitempty"`
}

// FlightGroup holds all crew rows belonging to one logical flight.
type FlightGroup struct {
	Key  string      `bson:"key"`
	Rows []TicketRow `bson:"rows"`
}

// TicketUpload is one persisted ticketing snapshot.
type TicketUpload struct {
	ID         string      `bson:"_id,omitempty"`
	Filename   string      `bson:"filename"`
	UploadedAt time.Time   `bson:"uploadedAt"`
	Headers    []string    `bson:"headers"`
	Rows       []TicketRow `bson:"rows"`
}
