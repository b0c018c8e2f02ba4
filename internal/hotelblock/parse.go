// Package hotelblock normalizes, diffs and renders hotel block reservation
// sheets.
package hotelblock

import (
	"strings"

	"crewtravel-service/internal/domain/entity"
	"crewtravel-service/pkg/logger"
	"crewtravel-service/pkg/rowfield"
	"crewtravel-service/pkg/sheetdate"
)

// columnMap routes punctuation-stripped header names onto schema fields.
// Partner sheets disagree on spacing and slashes ("Single Room Count W/O
// Crew"), so headers are normalized before lookup.
var columnMap = map[string]string{
	"hotel port":                 "hotelPort",
	"hotelport":                  "hotelPort",
	"port":                       "hotelPort",
	"arr leg":                    "arrLeg",
	"arrleg":                     "arrLeg",
	"check in date":              "checkInDate",
	"checkin date":               "checkInDate",
	"checkindate":                "checkInDate",
	"check in":                   "checkInDate",
	"checkin":                    "checkInDate",
	"check out date":             "checkOutDate",
	"checkout date":              "checkOutDate",
	"checkoutdate":               "checkOutDate",
	"check out":                  "checkOutDate",
	"checkout":                   "checkOutDate",
	"dep leg":                    "depLeg",
	"depleg":                     "depLeg",
	"single room count wo crew":  "singleRoomCount",
	"single room count w o crew": "singleRoomCount",
	"singleroomcountwocrew":      "singleRoomCount",
	"sng":                        "singleRoomCount",
}

// normalizeHeader lowercases, squeezes whitespace and strips everything
// outside [a-z0-9 ] so "Check-In Date" and "CHECK IN DATE" land together.
func normalizeHeader(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range lowered {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Normalizer maps raw sheet rows onto the hotel block schema.
type Normalizer struct {
	dates  *sheetdate.Parser
	logger logger.Logger
}

// NewNormalizer creates a hotel block row normalizer.
func NewNormalizer(dates *sheetdate.Parser, logger logger.Logger) *Normalizer {
	return &Normalizer{
		dates:  dates,
		logger: logger,
	}
}

// NormalizeRow converts one raw row. The second return value is false when
// every schema field came up empty, meaning it is not a reservation line.
func (n *Normalizer) NormalizeRow(raw entity.RawRow) (entity.HotelBlockRow, bool) {
	row := entity.HotelBlockRow{Raw: raw}
	for header, value := range raw {
		field, ok := columnMap[normalizeHeader(header)]
		if !ok {
			continue
		}
		switch field {
		case "hotelPort":
			row.HotelPort = rowfield.CellString(value)
		case "arrLeg":
			row.ArrLeg = rowfield.CellString(value)
		case "depLeg":
			row.DepLeg = rowfield.CellString(value)
		case "checkInDate", "checkOutDate":
			parsed := n.dates.Parse(value)
			if value != nil && rowfield.CellString(value) != "" && parsed == nil {
				n.logger.Warn("Unparseable hotel block date", "field", field, "value", value)
			}
			if field == "checkInDate" {
				row.CheckInDate = parsed
			} else {
				row.CheckOutDate = parsed
			}
		case "singleRoomCount":
			row.SingleRoomCount = rowfield.ParseCellInt(value)
		}
	}

	hasData := row.HotelPort != "" || row.ArrLeg != "" || row.DepLeg != "" ||
		row.CheckInDate != nil || row.CheckOutDate != nil || row.SingleRoomCount != nil
	return row, hasData
}

// NormalizeRows converts a batch, dropping fully empty lines.
func (n *Normalizer) NormalizeRows(raws []entity.RawRow) []entity.HotelBlockRow {
	rows := make([]entity.HotelBlockRow, 0, len(raws))
	for _, raw := range raws {
		if row, ok := n.NormalizeRow(raw); ok {
			rows = append(rows, row)
		}
	}
	n.logger.Info("Normalized hotel block rows", "in", len(raws), "kept", len(rows))
	return rows
}
