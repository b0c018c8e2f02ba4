package ticketing

import (
	"testing"
	"time"

	"crewtravel-service/internal/domain/entity"
)

func tp(v time.Time) *time.Time { return &v }

func ticketRow(route, flight, airline, crew string, dep *time.Time) entity.TicketRow {
	return entity.TicketRow{
		PairingRoute: route,
		FlightNumber: flight,
		Airline:      airline,
		CrewName:     crew,
		DepDateTime:  dep,
	}
}

func TestGroupKeyFormat(t *testing.T) {
	dep := tp(time.Date(2025, time.November, 21, 18, 25, 0, 0, time.UTC))
	row := ticketRow("IST-JFK", "TK123", "TK", "Ayşe Yılmaz", dep)

	if got := GroupKey(row); got != "IST-JFK|2025-11-21T18:25:00.000Z|TK123|TK" {
		t.Fatalf("unexpected key %q", got)
	}

	empty := GroupKey(entity.TicketRow{})
	if empty != "|||" {
		t.Fatalf("missing parts should stay as empty segments, got %q", empty)
	}
}

func TestGroupPreservesOrder(t *testing.T) {
	dep := tp(time.Date(2025, time.November, 21, 18, 25, 0, 0, time.UTC))
	rows := []entity.TicketRow{
		ticketRow("IST-JFK", "TK1", "TK", "A", dep),
		ticketRow("IST-LHR", "TK3", "TK", "B", dep),
		ticketRow("IST-JFK", "TK1", "TK", "C", dep),
	}

	groups := Group(rows)
	if len(groups) != 2 {
		t.Fatalf("want 2 groups, got %d", len(groups))
	}
	if groups[0].Key != GroupKey(rows[0]) || groups[1].Key != GroupKey(rows[1]) {
		t.Fatal("groups should keep first-seen key order")
	}
	if len(groups[0].Rows) != 2 || groups[0].Rows[0].CrewName != "A" || groups[0].Rows[1].CrewName != "C" {
		t.Fatalf("rows inside a group should keep file order: %+v", groups[0].Rows)
	}
}

func TestGroupIsOrderIndependentOnKeys(t *testing.T) {
	dep := tp(time.Date(2025, time.November, 21, 18, 25, 0, 0, time.UTC))
	rows := []entity.TicketRow{
		ticketRow("IST-JFK", "TK1", "TK", "A", dep),
		ticketRow("IST-LHR", "TK3", "TK", "B", dep),
		ticketRow("IST-JFK", "TK1", "TK", "C", dep),
	}
	reversed := []entity.TicketRow{rows[2], rows[1], rows[0]}

	byKey := func(groups []entity.FlightGroup) map[string]int {
		m := make(map[string]int, len(groups))
		for _, g := range groups {
			m[g.Key] = len(g.Rows)
		}
		return m
	}

	a, b := byKey(Group(rows)), byKey(Group(reversed))
	if len(a) != len(b) {
		t.Fatalf("key sets differ: %v vs %v", a, b)
	}
	for k, n := range a {
		if b[k] != n {
			t.Errorf("key %q: %d rows vs %d", k, n, b[k])
		}
	}
}

func TestDiffIdenticalSnapshotsAreSilent(t *testing.T) {
	dep := tp(time.Date(2025, time.November, 21, 18, 25, 0, 0, time.UTC))
	rows := []entity.TicketRow{
		ticketRow("IST-JFK", "TK1", "TK", "Ayşe Yılmaz", dep),
		ticketRow("IST-JFK", "TK1", "TK", "Mehmet Kaya", dep),
	}

	d := Diff(Group(rows), Group(rows))
	if len(d.NewFlights)+len(d.CancelledFlights)+len(d.ChangedFlights) != 0 {
		t.Fatalf("identical snapshots should diff empty: %+v", d)
	}
	if len(d.Details) != 0 {
		t.Fatalf("no details expected, got %d", len(d.Details))
	}
}

func TestDiffClassifiesNewAndCancelled(t *testing.T) {
	dep := tp(time.Date(2025, time.November, 21, 18, 25, 0, 0, time.UTC))
	prev := Group([]entity.TicketRow{ticketRow("IST-JFK", "TK1", "TK", "A", dep)})
	curr := Group([]entity.TicketRow{ticketRow("IST-LHR", "TK3", "TK", "A", dep)})

	d := Diff(prev, curr)
	if len(d.NewFlights) != 1 || d.NewFlights[0] != curr[0].Key {
		t.Fatalf("want one new flight, got %v", d.NewFlights)
	}
	if len(d.CancelledFlights) != 1 || d.CancelledFlights[0] != prev[0].Key {
		t.Fatalf("want one cancelled flight, got %v", d.CancelledFlights)
	}
	if len(d.ChangedFlights) != 0 {
		t.Fatalf("one-sided groups are never changed, got %v", d.ChangedFlights)
	}
	if len(d.Details[curr[0].Key].Curr) != 1 || len(d.Details[prev[0].Key].Prev) != 1 {
		t.Fatal("details should carry the rows of each entry")
	}
}

func TestDiffDetectsRosterChange(t *testing.T) {
	dep := tp(time.Date(2025, time.November, 21, 18, 25, 0, 0, time.UTC))
	prev := Group([]entity.TicketRow{
		ticketRow("IST-JFK", "TK1", "TK", "Ayşe Yılmaz", dep),
		ticketRow("IST-JFK", "TK1", "TK", "Mehmet Kaya", dep),
	})
	curr := Group([]entity.TicketRow{
		ticketRow("IST-JFK", "TK1", "TK", "AYSE YILMAZ", dep), // same person, folded
		ticketRow("IST-JFK", "TK1", "TK", "Ali Demir", dep),
	})

	d := Diff(prev, curr)
	if len(d.ChangedFlights) != 1 {
		t.Fatalf("want one changed flight, got %v", d.ChangedFlights)
	}
	changes := d.Details[d.ChangedFlights[0]].Changes
	if len(changes) != 2 {
		t.Fatalf("want added and removed entries, got %v", changes)
	}
	if changes[0] != "Crew added: ali demir" {
		t.Errorf("unexpected added change %q", changes[0])
	}
	if changes[1] != "Crew removed: mehmet kaya" {
		t.Errorf("unexpected removed change %q", changes[1])
	}
}

func TestDiffDetectsTimeShift(t *testing.T) {
	depA := tp(time.Date(2025, time.November, 21, 18, 25, 0, 0, time.UTC))
	depB := tp(time.Date(2025, time.November, 21, 20, 0, 0, 0, time.UTC))

	prevRow := ticketRow("IST-JFK", "TK1", "TK", "A", depA)
	currRow := ticketRow("IST-JFK", "TK1", "TK", "A", depA)
	prevRow.ArrDateTime = depA
	currRow.ArrDateTime = depB

	d := Diff(Group([]entity.TicketRow{prevRow}), Group([]entity.TicketRow{currRow}))
	if len(d.ChangedFlights) != 1 {
		t.Fatalf("arrival shift should flag the group, got %+v", d)
	}
	changes := d.Details[d.ChangedFlights[0]].Changes
	if len(changes) != 1 || changes[0] != "Arrival time changed" {
		t.Fatalf("unexpected changes %v", changes)
	}
}

func TestDiffListsAreDisjoint(t *testing.T) {
	dep := tp(time.Date(2025, time.November, 21, 18, 25, 0, 0, time.UTC))
	prev := Group([]entity.TicketRow{
		ticketRow("IST-JFK", "TK1", "TK", "A", dep),
		ticketRow("IST-LHR", "TK3", "TK", "B", dep),
	})
	curr := Group([]entity.TicketRow{
		ticketRow("IST-LHR", "TK3", "TK", "C", dep),
		ticketRow("IST-CDG", "TK5", "TK", "D", dep),
	})

	d := Diff(prev, curr)
	seen := map[string]int{}
	for _, k := range d.NewFlights {
		seen[k]++
	}
	for _, k := range d.CancelledFlights {
		seen[k]++
	}
	for _, k := range d.ChangedFlights {
		seen[k]++
	}
	for k, n := range seen {
		if n > 1 {
			t.Errorf("key %q classified %d times", k, n)
		}
	}
	for _, k := range append(append([]string{}, d.NewFlights...), d.CancelledFlights...) {
		if _, ok := d.Details[k]; !ok {
			t.Errorf("key %q has no detail entry", k)
		}
	}
}
