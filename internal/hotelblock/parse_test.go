package hotelblock

import (
	"testing"
	"time"

	"crewtravel-service/internal/domain/entity"
	"crewtravel-service/pkg/logger"
	"crewtravel-service/pkg/sheetdate"
)

func newTestHotelNormalizer() *Normalizer {
	return NewNormalizer(sheetdate.New(), logger.NewNopLogger())
}

func TestNormalizeHeader(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Check-In Date", "checkin date"},
		{"CHECK IN DATE", "check in date"},
		{"Single Room Count W/O Crew", "single room count wo crew"},
		{"  Hotel   Port ", "hotel port"},
	}
	for _, c := range cases {
		if got := normalizeHeader(c.in); got != c.want {
			t.Errorf("normalizeHeader(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeRowHeaderVariants(t *testing.T) {
	n := newTestHotelNormalizer()

	raw := entity.RawRow{
		"Hotel Port":                 "IST",
		"Arr Leg":                    "TK123",
		"Check-In Date":              "21.11.2025 14:00",
		"CHECK OUT DATE":             "23.11.2025 12:00",
		"Dep Leg":                    "TK124",
		"Single Room Count W/O Crew": "2 SNG",
	}

	row, ok := n.NormalizeRow(raw)
	if !ok {
		t.Fatal("populated row should be kept")
	}
	if row.HotelPort != "IST" || row.ArrLeg != "TK123" || row.DepLeg != "TK124" {
		t.Errorf("string fields lost: %+v", row)
	}
	wantIn := time.Date(2025, time.November, 21, 14, 0, 0, 0, time.UTC)
	if row.CheckInDate == nil || !row.CheckInDate.Equal(wantIn) {
		t.Errorf("check-in: want %v, got %v", wantIn, row.CheckInDate)
	}
	wantOut := time.Date(2025, time.November, 23, 12, 0, 0, 0, time.UTC)
	if row.CheckOutDate == nil || !row.CheckOutDate.Equal(wantOut) {
		t.Errorf("check-out: want %v, got %v", wantOut, row.CheckOutDate)
	}
	if row.SingleRoomCount == nil || *row.SingleRoomCount != 2 {
		t.Errorf("SNG count: got %v", row.SingleRoomCount)
	}
}

func TestNormalizeRowsDropsEmptyLines(t *testing.T) {
	n := newTestHotelNormalizer()

	raws := []entity.RawRow{
		{"Hotel Port": "IST"},
		{"Unrelated Column": "x"},
	}
	rows := n.NormalizeRows(raws)
	if len(rows) != 1 {
		t.Fatalf("want 1 kept row, got %d", len(rows))
	}
}

func TestNormalizeRowUnparseableDateStaysNil(t *testing.T) {
	n := newTestHotelNormalizer()

	row, ok := n.NormalizeRow(entity.RawRow{
		"Hotel Port":    "IST",
		"Check In Date": "TBD",
	})
	if !ok {
		t.Fatal("row should be kept")
	}
	if row.CheckInDate != nil {
		t.Fatalf("unparseable date should stay nil, got %v", *row.CheckInDate)
	}
}
