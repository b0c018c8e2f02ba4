package ticketing

import (
	"strings"
	"testing"
	"time"

	"crewtravel-service/internal/domain/entity"
)

func draftRow(crew string) entity.TicketRow {
	dep := time.Date(2025, time.November, 21, 18, 25, 0, 0, time.UTC)
	arr := time.Date(2025, time.November, 21, 21, 45, 0, 0, time.UTC)
	return entity.TicketRow{
		PairingRoute: "IST-JFK/JFK-IST",
		FlightNumber: "TK123",
		Airline:      "TK",
		DepDateTime:  &dep,
		ArrDateTime:  &arr,
		CrewName:     crew,
		Rank:         "CPT",
	}
}

func TestBuildFlightHeader(t *testing.T) {
	got := BuildFlightHeader([]entity.TicketRow{draftRow("Ayşe Yılmaz")})
	want := "21.11.2025 - TK TK123 IST-JFK 18:25 L / 21.11.2025 21:45 L"
	if got != want {
		t.Fatalf("header:\nwant %q\ngot  %q", want, got)
	}
}

func TestBuildFlightHeaderFallsBackToPorts(t *testing.T) {
	row := draftRow("Ayşe Yılmaz")
	row.PairingRoute = ""
	row.DepPort = "IST"
	row.ArrPort = "JFK"

	got := BuildFlightHeader([]entity.TicketRow{row})
	if !strings.Contains(got, "IST-JFK") {
		t.Fatalf("header should derive the route from the ports, got %q", got)
	}

	draft := BuildDraft(Group([]entity.TicketRow{row}), nil, DraftOptions{})
	if !strings.Contains(draft, "IST-JFK") {
		t.Fatal("draft should carry the port-derived route")
	}

	row.ArrPort = ""
	if got := BuildFlightHeader([]entity.TicketRow{row}); !strings.Contains(got, "IST") || strings.Contains(got, "IST-") {
		t.Fatalf("one-sided fallback should not dangle a dash, got %q", got)
	}
}

func TestBuildFlightHeaderMissingTimes(t *testing.T) {
	row := draftRow("A")
	row.DepDateTime = nil
	row.ArrDateTime = nil
	got := BuildFlightHeader([]entity.TicketRow{row})
	if !strings.Contains(got, "TK TK123 IST-JFK") {
		t.Fatalf("header should survive missing instants, got %q", got)
	}
}

func TestBuildFlightTable(t *testing.T) {
	expiry := time.Date(2027, time.March, 1, 0, 0, 0, 0, time.UTC)
	row := draftRow("Ayşe Yılmaz")
	row.Enrichment = &entity.CrewEnrichment{
		PassportExpiry: &expiry,
		CitizenshipNo:  "12345678901",
		Phone:          "+90 555 000 0000",
	}

	got := BuildFlightTable([]entity.TicketRow{row, draftRow("Mehmet Kaya")})
	if !strings.Contains(got, "Total Number of Crew: 2") {
		t.Error("crew count missing")
	}
	if !strings.Contains(got, "Ayşe Yılmaz") || !strings.Contains(got, "1.3.2027") {
		t.Error("enriched row content missing")
	}
	// Unmatched crew render dashes, never empty cells.
	if !strings.Contains(got, ">-</td>") {
		t.Error("absent values should render as dashes")
	}
}

func TestBuildDraftWithoutDiff(t *testing.T) {
	groups := Group([]entity.TicketRow{draftRow("A"), draftRow("B")})
	got := BuildDraft(groups, nil, DraftOptions{})
	if !strings.Contains(got, "Dear Colleagues,") {
		t.Error("salutation missing")
	}
	if !strings.Contains(got, "We need ticket belowing flights;") {
		t.Error("intro line missing")
	}
	if strings.Contains(got, "New flights") {
		t.Error("no diff sections expected without a diff")
	}
}

func TestBuildDraftDiffSections(t *testing.T) {
	prevRow := draftRow("Ayşe Yılmaz")
	cancelledRow := draftRow("Old Crew")
	cancelledRow.FlightNumber = "TK999"

	currChanged := draftRow("Ali Demir")
	currNew := draftRow("New Crew")
	currNew.FlightNumber = "TK555"

	prevGroups := Group([]entity.TicketRow{prevRow, cancelledRow})
	currGroups := Group([]entity.TicketRow{currChanged, currNew})
	diff := Diff(prevGroups, currGroups)

	got := BuildDraft(currGroups, &diff, DraftOptions{})
	for _, section := range []string{"New flights", "Changed flights", "Cancelled flights"} {
		if !strings.Contains(got, section) {
			t.Errorf("section %q missing", section)
		}
	}
	if !strings.Contains(got, "#c6efce") {
		t.Error("new flights should carry the green header")
	}
	if !strings.Contains(got, "#ffeb9c") {
		t.Error("changed flights should carry the yellow header")
	}
	if !strings.Contains(got, "line-through") {
		t.Error("cancelled flights should render struck through")
	}
	if !strings.Contains(got, "Crew added: ali demir") {
		t.Error("change list missing")
	}
	if !strings.Contains(got, "TK999") {
		t.Error("cancelled flight should render from the previous snapshot")
	}
}

func TestBuildDraftShowAll(t *testing.T) {
	rows := []entity.TicketRow{draftRow("A")}
	groups := Group(rows)
	diff := Diff(groups, groups) // nothing changed

	hidden := BuildDraft(groups, &diff, DraftOptions{})
	if strings.Contains(hidden, "Current flights") {
		t.Error("unchanged groups should be hidden by default")
	}
	shown := BuildDraft(groups, &diff, DraftOptions{ShowAll: true})
	if !strings.Contains(shown, "Current flights") {
		t.Error("ShowAll should include unchanged groups")
	}
}
