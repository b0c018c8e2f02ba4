package entity

import "time"

// CrewMember is one crew database record used to enrich ticket rows.
type CrewMember struct {
	ID             string     `bson:"_id,omitempty"`
	FullName       string     `bson:"fullName,omitempty"`
	FirstName      string     `bson:"firstName,omitempty"`
	LastName       string     `bson:"lastName,omitempty"`
	Position       string     `bson:"position,omitempty"`
	Nationality    string     `bson:"nationality,omitempty"`
	PassportNumber string     `bson:"passportNumber,omitempty"`
	PassportExpiry *time.Time `bson:"passportExpiry,omitempty"`
	Phone          string     `bson:"phone,omitempty"`
	Raw            RawRow     `bson:"raw,omitempty"`
}
