package hotelblock

import (
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"crewtravel-service/internal/domain/entity"
)

const (
	flatSheet = "Hotel Blokaj"
	portSheet = "By Port"

	statusNormal    = "NORMAL"
	statusNew       = "NEW"
	statusChanged   = "CHANGED"
	statusCancelled = "CANCELLED"
)

var sheetHeader = []string{"Hotel Port", "Arr Leg", "Check In Date", "Check Out Date", "Dep Leg", "SNG", "Status"}

func formatDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("02.01.2006")
}

type sheetRow struct {
	row    entity.HotelBlockRow
	status string
}

func statusOf(diff *DiffResult, key string) string {
	if diff == nil {
		return statusNormal
	}
	switch {
	case diff.IsNew(key):
		return statusNew
	case diff.IsChanged(key):
		return statusChanged
	default:
		return statusNormal
	}
}

// collectRows pairs every current row with its diff status and appends the
// cancelled blocks from the previous snapshot, which the current upload no
// longer carries.
func collectRows(rows []entity.HotelBlockRow, diff *DiffResult) []sheetRow {
	out := make([]sheetRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, sheetRow{row: r, status: statusOf(diff, GroupKey(r))})
	}
	if diff != nil {
		for _, key := range diff.CancelledReservations {
			if detail, ok := diff.Details[key]; ok && detail.Prev != nil {
				out = append(out, sheetRow{row: *detail.Prev, status: statusCancelled})
			}
		}
	}
	return out
}

type styleSet struct {
	newStyle       int
	changedStyle   int
	cancelledStyle int
	headerStyle    int
}

func buildStyles(f *excelize.File) (styleSet, error) {
	var s styleSet
	var err error
	fill := func(color string) excelize.Fill {
		return excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}}
	}
	if s.newStyle, err = f.NewStyle(&excelize.Style{Fill: fill("C6EFCE")}); err != nil {
		return s, err
	}
	if s.changedStyle, err = f.NewStyle(&excelize.Style{Fill: fill("FFEB9C")}); err != nil {
		return s, err
	}
	if s.cancelledStyle, err = f.NewStyle(&excelize.Style{
		Fill: fill("FFC7CE"),
		Font: &excelize.Font{Strike: true},
	}); err != nil {
		return s, err
	}
	if s.headerStyle, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return s, err
	}
	return s, nil
}

func (s styleSet) forStatus(status string) (int, bool) {
	switch status {
	case statusNew:
		return s.newStyle, true
	case statusChanged:
		return s.changedStyle, true
	case statusCancelled:
		return s.cancelledStyle, true
	}
	return 0, false
}

func writeRow(f *excelize.File, sheet string, rowIdx int, sr sheetRow, changes []string, styles styleSet) error {
	sng := 0
	if sr.row.SingleRoomCount != nil {
		sng = *sr.row.SingleRoomCount
	}
	cells := []interface{}{
		sr.row.HotelPort, sr.row.ArrLeg,
		formatDay(sr.row.CheckInDate), formatDay(sr.row.CheckOutDate),
		sr.row.DepLeg, sng, sr.status,
	}
	start, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, start, &cells); err != nil {
		return err
	}
	if len(changes) > 0 {
		// Inline change annotation next to the colored row.
		annot, err := excelize.CoordinatesToCellName(8, rowIdx)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, annot, strings.Join(changes, "; ")); err != nil {
			return err
		}
	}
	if styleID, ok := styles.forStatus(sr.status); ok {
		end, err := excelize.CoordinatesToCellName(6, rowIdx)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, start, end, styleID); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, rowIdx int, styles styleSet) error {
	start, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return err
	}
	header := make([]interface{}, len(sheetHeader))
	for i, h := range sheetHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, start, &header); err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(len(sheetHeader), rowIdx)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, styles.headerStyle)
}

func decorateSheet(f *excelize.File, sheet string) error {
	widths := []struct {
		col   string
		width float64
	}{
		{"A", 15}, {"B", 10}, {"C", 12}, {"D", 12}, {"E", 10}, {"F", 8}, {"H", 40},
	}
	for _, w := range widths {
		if err := f.SetColWidth(sheet, w.col, w.col, w.width); err != nil {
			return err
		}
	}
	// The status column only drives coloring, it is not for display.
	return f.SetColVisible(sheet, "G", false)
}

// BuildWorkbook renders the hotel block spreadsheet: a flat chronological
// sheet and a port-grouped sheet with section headers, both colored by diff
// status (new green, changed yellow, cancelled red) via a hidden status
// column.
func BuildWorkbook(rows []entity.HotelBlockRow, diff *DiffResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", flatSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(portSheet); err != nil {
		return nil, err
	}
	styles, err := buildStyles(f)
	if err != nil {
		return nil, err
	}

	all := collectRows(rows, diff)

	// Flat sheet, chronological by check-in (undated rows sink to the end).
	flat := make([]sheetRow, len(all))
	copy(flat, all)
	sort.SliceStable(flat, func(i, j int) bool {
		a, b := flat[i].row.CheckInDate, flat[j].row.CheckInDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	if err := writeHeader(f, flatSheet, 1, styles); err != nil {
		return nil, err
	}
	for i, sr := range flat {
		var changes []string
		if diff != nil && sr.status == statusChanged {
			changes = diff.Details[GroupKey(sr.row)].Changes
		}
		if err := writeRow(f, flatSheet, i+2, sr, changes, styles); err != nil {
			return nil, err
		}
	}
	if err := decorateSheet(f, flatSheet); err != nil {
		return nil, err
	}

	// Port-grouped sheet with one section per port, first-seen port order.
	portOrder := []string{}
	byPort := map[string][]sheetRow{}
	for _, sr := range all {
		port := sr.row.HotelPort
		if port == "" {
			port = "UNKNOWN"
		}
		if _, ok := byPort[port]; !ok {
			portOrder = append(portOrder, port)
		}
		byPort[port] = append(byPort[port], sr)
	}
	rowIdx := 1
	for _, port := range portOrder {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(portSheet, cell, port); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(portSheet, cell, cell, styles.headerStyle); err != nil {
			return nil, err
		}
		rowIdx++
		if err := writeHeader(f, portSheet, rowIdx, styles); err != nil {
			return nil, err
		}
		rowIdx++
		for _, sr := range byPort[port] {
			var changes []string
			if diff != nil && sr.status == statusChanged {
				changes = diff.Details[GroupKey(sr.row)].Changes
			}
			if err := writeRow(f, portSheet, rowIdx, sr, changes, styles); err != nil {
				return nil, err
			}
			rowIdx++
		}
		rowIdx++ // blank spacer between sections
	}
	if err := decorateSheet(f, portSheet); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
