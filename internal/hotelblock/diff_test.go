package hotelblock

import (
	"testing"
	"time"

	"crewtravel-service/internal/domain/entity"
)

func hp(v time.Time) *time.Time { return &v }

func hotelRow(port, arrLeg, depLeg string, checkIn, checkOut *time.Time, sng int) entity.HotelBlockRow {
	return entity.HotelBlockRow{
		HotelPort:       port,
		ArrLeg:          arrLeg,
		DepLeg:          depLeg,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		SingleRoomCount: &sng,
	}
}

func TestHotelGroupKey(t *testing.T) {
	in := hp(time.Date(2025, time.November, 21, 14, 0, 0, 0, time.UTC))
	out := hp(time.Date(2025, time.November, 23, 12, 0, 0, 0, time.UTC))

	got := GroupKey(hotelRow("IST", "TK123", "TK124", in, out, 2))
	want := "IST|TK123|2025-11-21T14:00|2025-11-23T12:00|TK124"
	if got != want {
		t.Fatalf("key: want %q, got %q", want, got)
	}

	bare := GroupKey(entity.HotelBlockRow{})
	if bare != "UNKNOWN||NO_DATE|NO_DATE|" {
		t.Fatalf("empty row key: got %q", bare)
	}
}

func TestHotelGroupKeyIgnoresSeconds(t *testing.T) {
	a := hp(time.Date(2025, time.November, 21, 14, 0, 10, 0, time.UTC))
	b := hp(time.Date(2025, time.November, 21, 14, 0, 40, 0, time.UTC))

	if GroupKey(hotelRow("IST", "TK1", "", a, nil, 1)) != GroupKey(hotelRow("IST", "TK1", "", b, nil, 1)) {
		t.Fatal("second-level drift must not split blocks")
	}
}

func TestHotelDiffIdenticalIsSilent(t *testing.T) {
	in := hp(time.Date(2025, time.November, 21, 14, 0, 0, 0, time.UTC))
	rows := []entity.HotelBlockRow{hotelRow("IST", "TK1", "TK2", in, nil, 2)}

	d := Diff(rows, rows)
	if len(d.NewReservations)+len(d.CancelledReservations)+len(d.ChangedReservations) != 0 {
		t.Fatalf("identical snapshots should diff empty: %+v", d)
	}
}

func TestHotelDiffNewAndCancelled(t *testing.T) {
	in := hp(time.Date(2025, time.November, 21, 14, 0, 0, 0, time.UTC))
	prev := []entity.HotelBlockRow{hotelRow("IST", "TK1", "TK2", in, nil, 2)}
	curr := []entity.HotelBlockRow{hotelRow("JFK", "TK3", "TK4", in, nil, 1)}

	d := Diff(prev, curr)
	if len(d.NewReservations) != 1 || len(d.CancelledReservations) != 1 {
		t.Fatalf("want one new and one cancelled, got %+v", d)
	}
	cancelled := d.Details[d.CancelledReservations[0]]
	if cancelled.Prev == nil || cancelled.Prev.HotelPort != "IST" {
		t.Fatal("cancelled detail should carry the previous row")
	}
}

func TestHotelDiffRoomCountChange(t *testing.T) {
	in := hp(time.Date(2025, time.November, 21, 14, 0, 0, 0, time.UTC))
	prev := []entity.HotelBlockRow{hotelRow("IST", "TK1", "TK2", in, nil, 2)}
	curr := []entity.HotelBlockRow{hotelRow("IST", "TK1", "TK2", in, nil, 4)}

	d := Diff(prev, curr)
	if len(d.ChangedReservations) != 1 {
		t.Fatalf("want one changed block, got %+v", d)
	}
	changes := d.Details[d.ChangedReservations[0]].Changes
	if len(changes) != 1 || changes[0] != "SNG: 2 → 4" {
		t.Fatalf("unexpected changes %v", changes)
	}
}

func TestHotelDiffDuplicateKeyLastLineWins(t *testing.T) {
	in := hp(time.Date(2025, time.November, 21, 14, 0, 0, 0, time.UTC))
	prev := []entity.HotelBlockRow{hotelRow("IST", "TK1", "TK2", in, nil, 2)}
	curr := []entity.HotelBlockRow{
		hotelRow("IST", "TK1", "TK2", in, nil, 2),
		hotelRow("IST", "TK1", "TK2", in, nil, 5),
	}

	d := Diff(prev, curr)
	if len(d.ChangedReservations) != 1 {
		t.Fatalf("want one changed block, got %+v", d)
	}
	changes := d.Details[d.ChangedReservations[0]].Changes
	if len(changes) != 1 || changes[0] != "SNG: 2 → 5" {
		t.Fatalf("last duplicate line should drive the comparison, got %v", changes)
	}
}

func TestHotelDiffMissingCountReadsAsZero(t *testing.T) {
	in := hp(time.Date(2025, time.November, 21, 14, 0, 0, 0, time.UTC))
	prevRow := hotelRow("IST", "TK1", "TK2", in, nil, 0)
	prevRow.SingleRoomCount = nil
	currRow := hotelRow("IST", "TK1", "TK2", in, nil, 0)

	d := Diff([]entity.HotelBlockRow{prevRow}, []entity.HotelBlockRow{currRow})
	if len(d.ChangedReservations) != 0 {
		t.Fatalf("nil count equals zero, got %+v", d.ChangedReservations)
	}
}
