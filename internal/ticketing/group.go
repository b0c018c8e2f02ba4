package ticketing

import (
	"strings"
	"time"

	"crewtravel-service/internal/domain/entity"
)

// keyTimeLayout keeps group keys human-debuggable and stable across runs.
const keyTimeLayout = "2006-01-02T15:04:05.000Z"

// GroupKey derives the stable composite key identifying one logical flight:
// route, localized departure instant, flight number and airline, pipe-joined
// with empty strings for missing parts.
func GroupKey(r entity.TicketRow) string {
	dep := ""
	if r.DepDateTime != nil {
		dep = r.DepDateTime.UTC().Format(keyTimeLayout)
	}
	return strings.Join([]string{r.PairingRoute, dep, r.FlightNumber, r.Airline}, "|")
}

// Group partitions rows by GroupKey, preserving first-seen key order and the
// original relative order of rows inside each group. It is a pure function
// of the rows: the same logical data always produces matching keys.
func Group(rows []entity.TicketRow) []entity.FlightGroup {
	index := make(map[string]int, len(rows))
	groups := make([]entity.FlightGroup, 0, len(rows))
	for _, row := range rows {
		key := GroupKey(row)
		if at, ok := index[key]; ok {
			groups[at].Rows = append(groups[at].Rows, row)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, entity.FlightGroup{Key: key, Rows: []entity.TicketRow{row}})
	}
	return groups
}

// timeKey formats an instant for equality checks, nil-safe.
func timeKey(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(keyTimeLayout)
}
