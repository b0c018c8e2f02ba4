// Package ticketing normalizes, groups, diffs and renders crew ticket
// reservation sheets.
package ticketing

import (
	"context"

	"crewtravel-service/internal/airports"
	"crewtravel-service/internal/domain/entity"
	"crewtravel-service/pkg/logger"
	"crewtravel-service/pkg/rowfield"
	"crewtravel-service/pkg/sheetdate"
)

// Accepted header spellings per logical field. The same field shows up
// under different names across carriers and partners; candidates are tried
// in order of preference.
var (
	pairingRouteHeaders = []string{"PAIRING ROUTE", "ROUTE", "PAIRING"}
	flightNumberHeaders = []string{"FLTNO", "FLT NO", "FLIGHT NO", "FLIGHT NUMBER"}
	airlineHeaders      = []string{"AIRLINE"}
	depPortHeaders      = []string{"DEP PORT", "DEPARTURE PORT", "ORIGIN"}
	arrPortHeaders      = []string{"ARR PORT", "ARRIVAL PORT", "DEST"}
	depDateHeaders      = []string{"DEP DATE", "DEPARTURE DATE", "DEP DATETIME"}
	arrDateHeaders      = []string{"ARR DATE", "ARRIVAL DATE", "ARR DATETIME"}
	crewNameHeaders     = []string{"CREW NAME SURNAME", "NAME SURNAME", "NAME"}
	rankHeaders         = []string{"RANK", "DUTY", "DUTY TYPE", "RANK TYPE"}
	nationalityHeaders  = []string{"NAT", "NATIONALITY"}
	passportHeaders     = []string{"PASSPORT NUMBER", "PASSPORT NO"}
	dobHeaders          = []string{"DATE OF BIRTH", "BIRTH DATE"}
	genderHeaders       = []string{"GENDER", "GEN"}
	statusHeaders       = []string{"STATUS"}
)

// Normalizer maps raw sheet rows onto the ticket schema. Departure and
// arrival instants are parsed as GMT+0 and then localized to the wall clock
// of their port.
type Normalizer struct {
	dates     *sheetdate.Parser
	localizer *airports.Localizer
	logger    logger.Logger
}

// NewNormalizer creates a ticket row normalizer.
func NewNormalizer(dates *sheetdate.Parser, localizer *airports.Localizer, logger logger.Logger) *Normalizer {
	return &Normalizer{
		dates:     dates,
		localizer: localizer,
		logger:    logger,
	}
}

// NormalizeRow converts one raw row. The second return value is false when
// the row carries no identity-bearing field (route, flight number or crew
// name) and must be discarded.
func (n *Normalizer) NormalizeRow(ctx context.Context, raw entity.RawRow) (entity.TicketRow, bool) {
	row := entity.TicketRow{
		PairingRoute:   rowfield.ResolveString(raw, pairingRouteHeaders...),
		FlightNumber:   rowfield.ResolveString(raw, flightNumberHeaders...),
		Airline:        rowfield.ResolveString(raw, airlineHeaders...),
		DepPort:        rowfield.ResolveString(raw, depPortHeaders...),
		ArrPort:        rowfield.ResolveString(raw, arrPortHeaders...),
		CrewName:       rowfield.CollapseSpaces(rowfield.ResolveString(raw, crewNameHeaders...)),
		Rank:           rowfield.ResolveString(raw, rankHeaders...),
		Nationality:    rowfield.ResolveString(raw, nationalityHeaders...),
		PassportNumber: rowfield.ResolveString(raw, passportHeaders...),
		Gender:         rowfield.ResolveString(raw, genderHeaders...),
		Status:         rowfield.ResolveString(raw, statusHeaders...),
		Raw:            raw,
	}

	if row.PairingRoute == "" && row.FlightNumber == "" && row.CrewName == "" {
		return entity.TicketRow{}, false
	}

	depGMT := n.dates.Parse(rowfield.Resolve(raw, depDateHeaders...))
	arrGMT := n.dates.Parse(rowfield.Resolve(raw, arrDateHeaders...))
	row.DepDateTime = n.localizer.ToLocalTime(ctx, depGMT, row.DepPort)
	row.ArrDateTime = n.localizer.ToLocalTime(ctx, arrGMT, row.ArrPort)
	row.DateOfBirth = n.dates.Parse(rowfield.Resolve(raw, dobHeaders...))

	if depRaw := rowfield.Resolve(raw, depDateHeaders...); depRaw != nil && depGMT == nil {
		n.logger.Warn("Unparseable departure date", "value", depRaw, "flight", row.FlightNumber)
	}

	return row, true
}

// NormalizeRows converts a batch, dropping non-reservation lines.
func (n *Normalizer) NormalizeRows(ctx context.Context, raws []entity.RawRow) []entity.TicketRow {
	rows := make([]entity.TicketRow, 0, len(raws))
	for _, raw := range raws {
		if row, ok := n.NormalizeRow(ctx, raw); ok {
			rows = append(rows, row)
		}
	}
	n.logger.Info("Normalized ticket rows", "in", len(raws), "kept", len(rows))
	return rows
}
