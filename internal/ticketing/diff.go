package ticketing

import (
	"strings"
	"time"

	"crewtravel-service/internal/domain/entity"
	"crewtravel-service/pkg/rowfield"
)

// Detail carries the material of one diff entry: the previous and/or current
// rows plus human-readable change descriptions for matched groups.
type Detail struct {
	Prev    []entity.TicketRow
	Curr    []entity.TicketRow
	Changes []string
}

// DiffResult classifies groups between two snapshots. The three key lists
// are pairwise disjoint and every listed key has a Details entry. A group
// with identical content on both sides appears nowhere: silence means
// unchanged.
type DiffResult struct {
	NewFlights       []string
	CancelledFlights []string
	ChangedFlights   []string
	Details          map[string]Detail
}

// crewNames returns the folded crew-name set of a group alongside the names
// in row order, so change descriptions read in sheet order.
func crewNames(rows []entity.TicketRow) (map[string]bool, []string) {
	set := make(map[string]bool, len(rows))
	ordered := make([]string, 0, len(rows))
	for _, r := range rows {
		folded := rowfield.FoldName(r.CrewName)
		if set[folded] {
			continue
		}
		set[folded] = true
		ordered = append(ordered, folded)
	}
	return set, ordered
}

// Diff compares two group-sets. Groups present on only one side are new or
// cancelled, never changed. Matched ticket groups change when the crew-name
// set differs or when the first row's departure or arrival instant moved;
// other metadata differences are deliberately not flagged. Roster detection
// compares names only; a rank or passport change on a stable roster is not
// reported.
func Diff(prevGroups, currGroups []entity.FlightGroup) DiffResult {
	prev := make(map[string][]entity.TicketRow, len(prevGroups))
	for _, g := range prevGroups {
		prev[g.Key] = g.Rows
	}
	curr := make(map[string][]entity.TicketRow, len(currGroups))
	for _, g := range currGroups {
		curr[g.Key] = g.Rows
	}

	result := DiffResult{Details: make(map[string]Detail)}

	for _, g := range currGroups {
		if _, ok := prev[g.Key]; !ok {
			result.NewFlights = append(result.NewFlights, g.Key)
			result.Details[g.Key] = Detail{Curr: g.Rows}
		}
	}
	for _, g := range prevGroups {
		if _, ok := curr[g.Key]; !ok {
			result.CancelledFlights = append(result.CancelledFlights, g.Key)
			result.Details[g.Key] = Detail{Prev: g.Rows}
		}
	}

	for _, g := range currGroups {
		prevRows, ok := prev[g.Key]
		if !ok {
			continue
		}
		currRows := g.Rows

		prevSet, prevOrdered := crewNames(prevRows)
		currSet, currOrdered := crewNames(currRows)
		var added, removed []string
		for _, name := range currOrdered {
			if !prevSet[name] {
				added = append(added, name)
			}
		}
		for _, name := range prevOrdered {
			if !currSet[name] {
				removed = append(removed, name)
			}
		}

		var changes []string
		if len(added) > 0 {
			changes = append(changes, "Crew added: "+strings.Join(added, ", "))
		}
		if len(removed) > 0 {
			changes = append(changes, "Crew removed: "+strings.Join(removed, ", "))
		}
		if timeKey(firstDep(prevRows)) != timeKey(firstDep(currRows)) {
			changes = append(changes, "Departure time changed")
		}
		if timeKey(firstArr(prevRows)) != timeKey(firstArr(currRows)) {
			changes = append(changes, "Arrival time changed")
		}

		if len(changes) > 0 {
			result.ChangedFlights = append(result.ChangedFlights, g.Key)
			result.Details[g.Key] = Detail{Prev: prevRows, Curr: currRows, Changes: changes}
		}
	}

	return result
}

func firstDep(rows []entity.TicketRow) *time.Time {
	if len(rows) == 0 {
		return nil
	}
	return rows[0].DepDateTime
}

func firstArr(rows []entity.TicketRow) *time.Time {
	if len(rows) == 0 {
		return nil
	}
	return rows[0].ArrDateTime
}

// IsNew reports whether a key was classified new.
func (d DiffResult) IsNew(key string) bool { return containsKey(d.NewFlights, key) }

// IsChanged reports whether a key was classified changed.
func (d DiffResult) IsChanged(key string) bool { return containsKey(d.ChangedFlights, key) }

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
