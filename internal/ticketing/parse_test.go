package ticketing

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"crewtravel-service/internal/airports"
	"crewtravel-service/internal/domain/entity"
	"crewtravel-service/pkg/logger"
	"crewtravel-service/pkg/sheetdate"
)

type stubDirectory struct {
	tz map[string]string
}

func (d *stubDirectory) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	if tz, ok := d.tz[code]; ok {
		return &entity.Airport{IATA: code, TzName: tz}, nil
	}
	return nil, fmt.Errorf("airport %q not in directory", code)
}

func newTestNormalizer() *Normalizer {
	dir := &stubDirectory{tz: map[string]string{
		"IST": "Europe/Istanbul",
		"JFK": "America/New_York",
	}}
	log := logger.NewNopLogger()
	return NewNormalizer(sheetdate.New(), airports.NewLocalizer(dir, log), log)
}

func TestNormalizeRowHeaderSynonyms(t *testing.T) {
	n := newTestNormalizer()

	raw := entity.RawRow{
		"FLT NO":            "TK123",
		"ROUTE":             "IST-JFK",
		"AIRLINE":           "TK",
		"DEP PORT":          "IST",
		"ARR PORT":          "JFK",
		"NAME SURNAME":      "Ayşe  Yılmaz",
		"DUTY":              "CPT",
		"NAT":               "TUR",
		"PASSPORT NO":       "U1234567",
		"GEN":               "F",
	}

	row, ok := n.NormalizeRow(context.Background(), raw)
	if !ok {
		t.Fatal("row with identity fields should be kept")
	}
	if row.FlightNumber != "TK123" {
		t.Errorf("FLT NO synonym: got %q", row.FlightNumber)
	}
	if row.PairingRoute != "IST-JFK" {
		t.Errorf("ROUTE synonym: got %q", row.PairingRoute)
	}
	if row.CrewName != "Ayşe Yılmaz" {
		t.Errorf("crew name should be space-collapsed, got %q", row.CrewName)
	}
	if row.Rank != "CPT" || row.Nationality != "TUR" || row.PassportNumber != "U1234567" || row.Gender != "F" {
		t.Errorf("synonym fields lost: %+v", row)
	}
}

func TestNormalizeRowLocalizesPerPort(t *testing.T) {
	n := newTestNormalizer()

	raw := entity.RawRow{
		"FLT NO":   "TK1",
		"DEP PORT": "IST",
		"ARR PORT": "JFK",
		"DEP DATE": "21.11.2025 15:25",
		"ARR DATE": "21.11.2025 19:45",
	}

	row, ok := n.NormalizeRow(context.Background(), raw)
	if !ok {
		t.Fatal("row should be kept")
	}
	wantDep := time.Date(2025, time.November, 21, 18, 25, 0, 0, time.UTC) // UTC+3
	wantArr := time.Date(2025, time.November, 21, 14, 45, 0, 0, time.UTC) // UTC-5
	if row.DepDateTime == nil || !row.DepDateTime.Equal(wantDep) {
		t.Errorf("dep localization: want %v, got %v", wantDep, row.DepDateTime)
	}
	if row.ArrDateTime == nil || !row.ArrDateTime.Equal(wantArr) {
		t.Errorf("arr localization: want %v, got %v", wantArr, row.ArrDateTime)
	}
}

func TestDraftFromRowWithoutRouteColumn(t *testing.T) {
	n := newTestNormalizer()

	raw := entity.RawRow{
		"FLTNO":             "TK123",
		"AIRLINE":           "TK",
		"DEP PORT":          "IST",
		"ARR PORT":          "JFK",
		"DEP DATE":          "21.11.2025 18:25",
		"CREW NAME SURNAME": "Ayşe Yılmaz",
	}
	row, ok := n.NormalizeRow(context.Background(), raw)
	if !ok {
		t.Fatal("row should be kept")
	}

	groups := Group([]entity.TicketRow{row})
	if len(groups) != 1 || !strings.Contains(groups[0].Key, "TK123") {
		t.Fatalf("unexpected groups %+v", groups)
	}
	draft := BuildDraft(groups, nil, DraftOptions{})
	if !strings.Contains(draft, "IST-JFK") {
		t.Fatal("draft header should name the route from the ports")
	}
	if !strings.Contains(draft, "Ayşe Yılmaz") {
		t.Fatal("draft should carry the crew row")
	}
}

func TestNormalizeRowsDropsNonReservationLines(t *testing.T) {
	n := newTestNormalizer()

	raws := []entity.RawRow{
		{"FLT NO": "TK1", "NAME SURNAME": "A B"},
		{"GEN": "F", "NAT": "TUR"}, // no identity fields
		{"NAME SURNAME": "C D"},
	}

	rows := n.NormalizeRows(context.Background(), raws)
	if len(rows) != 2 {
		t.Fatalf("want 2 kept rows, got %d", len(rows))
	}
}
