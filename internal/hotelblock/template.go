package hotelblock

import (
	"fmt"
	"time"

	"crewtravel-service/internal/domain/entity"
)

// BuildEmailBody returns the short accompanying message for the hotel block
// spreadsheet attachment.
func BuildEmailBody(month string) string {
	return fmt.Sprintf(`Dear Colleagues,

Attached you will find update information about the crews accommodations scheduled for %s, wish you a good day.`, month)
}

// MonthName derives the month the upload covers from the first dated
// check-in, defaulting when the sheet carries no dates at all.
func MonthName(rows []entity.HotelBlockRow) string {
	for _, r := range rows {
		if r.CheckInDate != nil {
			return r.CheckInDate.UTC().Month().String()
		}
	}
	return time.Now().UTC().Month().String()
}

// SuggestedFilename names the generated workbook after its month.
func SuggestedFilename(month string) string {
	return fmt.Sprintf("Hotel_Blokaj_%s.xlsx", month)
}
