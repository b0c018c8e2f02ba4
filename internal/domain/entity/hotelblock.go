package entity

import "time"

// HotelBlockRow is one normalized line from a hotel block reservation sheet.
type HotelBlockRow struct {
	HotelPort       string     `bson:"hotelPort,omitempty"`
	ArrLeg          string     `bson:"arrLeg,omitempty"`
	CheckInDate     *time.Time `bson:"checkInDate,omitempty"`
	CheckOutDate    *time.Time `bson:"checkOutDate,omitempty"`
	DepLeg          string     `bson:"depLeg,omitempty"`
	SingleRoomCount *int       `bson:"singleRoomCount,omitempty"`
	Raw             RawRow     `bson:"raw,omitempty"`
}

// HotelGroup holds the rows sharing one reservation-block key.
type HotelGroup struct {
	Key  string          `bson:"key"`
	Rows []HotelBlockRow `bson:"rows"`
}

// HotelBlockUpload is one persisted hotel block snapshot.
type HotelBlockUpload struct {
	ID         string          `bson:"_id,omitempty"`
	Filename   string          `bson:"filename"`
	UploadedAt time.Time       `bson:"uploadedAt"`
	Headers    []string        `bson:"headers"`
	Rows       []HotelBlockRow `bson:"rows"`
}
