package hotelblock

import (
	"fmt"
	"strings"
	"time"

	"crewtravel-service/internal/domain/entity"
)

// minuteLayout is the precision at which check-in/out instants are compared
// and keyed; second-level drift in exports must not split groups.
const minuteLayout = "2006-01-02T15:04"

func formatMinute(t *time.Time) string {
	if t == nil {
		return "NO_DATE"
	}
	return t.UTC().Format(minuteLayout)
}

// GroupKey derives the stable composite key of one reservation block.
func GroupKey(r entity.HotelBlockRow) string {
	port := r.HotelPort
	if port == "" {
		port = "UNKNOWN"
	}
	return strings.Join([]string{
		port, r.ArrLeg, formatMinute(r.CheckInDate), formatMinute(r.CheckOutDate), r.DepLeg,
	}, "|")
}

// Group partitions rows by GroupKey in first-seen order.
func Group(rows []entity.HotelBlockRow) []entity.HotelGroup {
	index := make(map[string]int, len(rows))
	groups := make([]entity.HotelGroup, 0, len(rows))
	for _, row := range rows {
		key := GroupKey(row)
		if at, ok := index[key]; ok {
			groups[at].Rows = append(groups[at].Rows, row)
			continue
		}
		index[key] = len(groups)
		groups = append(groups, entity.HotelGroup{Key: key, Rows: []entity.HotelBlockRow{row}})
	}
	return groups
}

// Detail carries one diff entry for a reservation block.
type Detail struct {
	Prev    *entity.HotelBlockRow
	Curr    *entity.HotelBlockRow
	Changes []string
}

// DiffResult classifies reservation blocks between two snapshots. Key lists
// are pairwise disjoint; identical blocks produce no entry at all.
type DiffResult struct {
	NewReservations       []string
	CancelledReservations []string
	ChangedReservations   []string
	Details               map[string]Detail
}

func roomCount(r *entity.HotelBlockRow) int {
	if r == nil || r.SingleRoomCount == nil {
		return 0
	}
	return *r.SingleRoomCount
}

// Diff compares two row sets. Matched blocks change when the single room
// count differs, or when both sides carry a check-in or check-out instant
// and they disagree at minute precision.
func Diff(prevRows, currRows []entity.HotelBlockRow) DiffResult {
	prevGroups := Group(prevRows)
	currGroups := Group(currRows)

	// On duplicate keys within one sheet the last line wins.
	prev := make(map[string]*entity.HotelBlockRow, len(prevGroups))
	for i := range prevGroups {
		prev[prevGroups[i].Key] = &prevGroups[i].Rows[len(prevGroups[i].Rows)-1]
	}
	curr := make(map[string]*entity.HotelBlockRow, len(currGroups))
	for i := range currGroups {
		curr[currGroups[i].Key] = &currGroups[i].Rows[len(currGroups[i].Rows)-1]
	}

	result := DiffResult{Details: make(map[string]Detail)}

	for _, g := range currGroups {
		if _, ok := prev[g.Key]; !ok {
			result.NewReservations = append(result.NewReservations, g.Key)
			result.Details[g.Key] = Detail{Curr: curr[g.Key]}
		}
	}
	for _, g := range prevGroups {
		if _, ok := curr[g.Key]; !ok {
			result.CancelledReservations = append(result.CancelledReservations, g.Key)
			result.Details[g.Key] = Detail{Prev: prev[g.Key]}
		}
	}

	for _, g := range currGroups {
		prevRow, ok := prev[g.Key]
		if !ok {
			continue
		}
		currRow := curr[g.Key]

		var changes []string
		if roomCount(prevRow) != roomCount(currRow) {
			changes = append(changes, fmt.Sprintf("SNG: %d → %d", roomCount(prevRow), roomCount(currRow)))
		}
		if prevRow.CheckInDate != nil && currRow.CheckInDate != nil {
			before, after := formatMinute(prevRow.CheckInDate), formatMinute(currRow.CheckInDate)
			if before != after {
				changes = append(changes, fmt.Sprintf("CheckIn: %s → %s", before, after))
			}
		}
		if prevRow.CheckOutDate != nil && currRow.CheckOutDate != nil {
			before, after := formatMinute(prevRow.CheckOutDate), formatMinute(currRow.CheckOutDate)
			if before != after {
				changes = append(changes, fmt.Sprintf("CheckOut: %s → %s", before, after))
			}
		}

		if len(changes) > 0 {
			result.ChangedReservations = append(result.ChangedReservations, g.Key)
			result.Details[g.Key] = Detail{Prev: prevRow, Curr: currRow, Changes: changes}
		}
	}

	return result
}

// IsNew reports whether a key was classified new.
func (d DiffResult) IsNew(key string) bool { return containsKey(d.NewReservations, key) }

// IsChanged reports whether a key was classified changed.
func (d DiffResult) IsChanged(key string) bool { return containsKey(d.ChangedReservations, key) }

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
