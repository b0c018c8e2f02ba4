package ticketing

import (
	"fmt"
	"html"
	"strings"
	"time"

	"crewtravel-service/internal/domain/entity"
)

// DraftOptions tunes diff-aware rendering. ShowAll includes the unchanged
// groups; by default only new, changed and cancelled flights are drawn.
type DraftOptions struct {
	ShowAll bool
}

var tableHeaders = []string{
	"Rank Type", "Crew Name", "Passport No", "Exp.", "Date of Birth",
	"Nat.", "Citizenship No", "Gen", "Phone",
}

// formatDateLocal renders an already-localized instant as d.M.yyyy HH:mm,
// the way operations staff read it.
func formatDateLocal(t *time.Time) string {
	if t == nil {
		return ""
	}
	return fmt.Sprintf("%d.%d.%d %02d:%02d", t.Day(), int(t.Month()), t.Year(), t.Hour(), t.Minute())
}

func datePart(t *time.Time) string {
	s := formatDateLocal(t)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

func timePart(t *time.Time) string {
	s := formatDateLocal(t)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[i+1:]
	}
	return ""
}

// BuildFlightHeader builds the one-line flight summary:
// "{depDate} - {airline} {flightNo} {route} {depTime} L / {arrDate} {arrTime} L".
// Times are local wall clock at their ports, hence the "L" suffix.
func BuildFlightHeader(rows []entity.TicketRow) string {
	if len(rows) == 0 {
		return ""
	}
	r := rows[0]
	airlineFlight := strings.TrimSpace(r.Airline + " " + r.FlightNumber)
	// Multi-segment pairings list every leg; the header shows the first one.
	route := r.PairingRoute
	if i := strings.IndexByte(route, '/'); i >= 0 {
		route = route[:i]
	}
	// Sheets without a pairing-route column still name the ports.
	if route == "" {
		route = strings.Trim(r.DepPort+"-"+r.ArrPort, "-")
	}
	return fmt.Sprintf("%s - %s %s %s L / %s %s L",
		datePart(r.DepDateTime), airlineFlight, route, timePart(r.DepDateTime),
		datePart(r.ArrDateTime), timePart(r.ArrDateTime))
}

func safeCell(v string) string {
	if v == "" {
		return "-"
	}
	return html.EscapeString(v)
}

// BuildFlightTable renders the crew table for one group. Enrichment fields
// come from the crew database match; absent values render as "-".
func BuildFlightTable(rows []entity.TicketRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<div style="margin-top:6px;margin-bottom:4px;font-size:11px;color:#2d3748;">Total Number of Crew: %d</div>`, len(rows))
	b.WriteString("\n")
	b.WriteString(`<table border="1" cellpadding="5" cellspacing="0" style="border-collapse: collapse; width: 100%; font-family: Arial, sans-serif; font-size: 12px; margin-top: 4px; margin-bottom: 10px;">` + "\n")

	b.WriteString("  <thead>\n    <tr style=\"background-color: #4a5568; color: white; font-weight: bold;\">\n")
	for _, col := range tableHeaders {
		fmt.Fprintf(&b, "      <th style=\"border: 1px solid #ccc; padding: 6px 8px; text-align: left;\">%s</th>\n", col)
	}
	b.WriteString("    </tr>\n  </thead>\n  <tbody>\n")

	for _, r := range rows {
		expiry, citizenship, phone := "", "", ""
		if r.Enrichment != nil {
			expiry = datePart(r.Enrichment.PassportExpiry)
			citizenship = r.Enrichment.CitizenshipNo
			phone = r.Enrichment.Phone
		}
		cells := []string{
			safeCell(r.Rank),
			safeCell(r.CrewName),
			safeCell(r.PassportNumber),
			safeCell(expiry),
			safeCell(datePart(r.DateOfBirth)),
			safeCell(r.Nationality),
			safeCell(citizenship),
			safeCell(r.Gender),
			safeCell(phone),
		}
		b.WriteString("    <tr>\n")
		for _, cell := range cells {
			fmt.Fprintf(&b, "      <td style=\"border: 1px solid #ccc; padding: 6px 8px; background-color: white; color: #1a202c;\">%s</td>\n", cell)
		}
		b.WriteString("    </tr>\n")
	}
	b.WriteString("  </tbody>\n</table>")
	return b.String()
}

func writeGroup(b *strings.Builder, rows []entity.TicketRow, headerStyle string) {
	fmt.Fprintf(b, "<p style=\"%s\">%s</p>\n", headerStyle, html.EscapeString(BuildFlightHeader(rows)))
	b.WriteString(BuildFlightTable(rows))
	b.WriteString("\n")
}

const (
	plainHeaderStyle     = "font-weight: bold; margin-top: 20px; margin-bottom: 5px; color: black;"
	newHeaderStyle       = "font-weight: bold; margin-top: 20px; margin-bottom: 5px; color: black; background-color: #c6efce; padding: 4px;"
	changedHeaderStyle   = "font-weight: bold; margin-top: 20px; margin-bottom: 5px; color: black; background-color: #ffeb9c; padding: 4px;"
	cancelledHeaderStyle = "font-weight: bold; margin-top: 20px; margin-bottom: 5px; color: #9b2c2c; text-decoration: line-through;"
	beforeHeaderStyle    = "margin-top: 4px; margin-bottom: 5px; color: #718096; text-decoration: line-through;"
)

// BuildDraft renders the full email body. Without a diff every group is
// drawn in file order. With a diff the draft splits into new, changed,
// cancelled and (when ShowAll) unchanged sections; cancelled flights render
// struck-through from the previous snapshot since the current one no longer
// carries them.
func BuildDraft(groups []entity.FlightGroup, diff *DiffResult, opts DraftOptions) string {
	var b strings.Builder
	b.WriteString(`<div style="font-family: Arial, sans-serif; color: black;">` + "\n")
	b.WriteString(`<p style="margin-bottom: 5px;">Dear Colleagues,</p>` + "\n")
	b.WriteString(`<p style="margin-top: 5px; margin-bottom: 15px;">We need ticket belowing flights;</p>` + "\n")

	if diff == nil {
		for _, g := range groups {
			writeGroup(&b, g.Rows, plainHeaderStyle)
		}
		b.WriteString("</div>")
		return b.String()
	}

	var newGroups, changedGroups, unchangedGroups []entity.FlightGroup
	for _, g := range groups {
		switch {
		case diff.IsNew(g.Key):
			newGroups = append(newGroups, g)
		case diff.IsChanged(g.Key):
			changedGroups = append(changedGroups, g)
		default:
			unchangedGroups = append(unchangedGroups, g)
		}
	}

	if opts.ShowAll && len(unchangedGroups) > 0 {
		b.WriteString(`<p style="font-size: 13px; color: #4a5568; margin-top: 16px;">Current flights</p>` + "\n")
		for _, g := range unchangedGroups {
			writeGroup(&b, g.Rows, plainHeaderStyle)
		}
	}

	if len(newGroups) > 0 {
		b.WriteString(`<p style="font-size: 13px; color: #276749; margin-top: 16px;">New flights</p>` + "\n")
		for _, g := range newGroups {
			writeGroup(&b, g.Rows, newHeaderStyle)
		}
	}

	if len(changedGroups) > 0 {
		b.WriteString(`<p style="font-size: 13px; color: #975a16; margin-top: 16px;">Changed flights</p>` + "\n")
		for _, g := range changedGroups {
			detail := diff.Details[g.Key]
			if len(detail.Prev) > 0 {
				fmt.Fprintf(&b, "<p style=\"%s\">%s</p>\n", beforeHeaderStyle, html.EscapeString(BuildFlightHeader(detail.Prev)))
			}
			fmt.Fprintf(&b, "<p style=\"%s\">%s</p>\n", changedHeaderStyle, html.EscapeString(BuildFlightHeader(g.Rows)))
			if len(detail.Changes) > 0 {
				b.WriteString(`<ul style="margin-top: 2px; font-size: 12px; color: #975a16;">` + "\n")
				for _, change := range detail.Changes {
					fmt.Fprintf(&b, "  <li>%s</li>\n", html.EscapeString(change))
				}
				b.WriteString("</ul>\n")
			}
			b.WriteString(BuildFlightTable(g.Rows))
			b.WriteString("\n")
		}
	}

	if len(diff.CancelledFlights) > 0 {
		b.WriteString(`<p style="font-size: 13px; color: #9b2c2c; margin-top: 16px;">Cancelled flights</p>` + "\n")
		for _, key := range diff.CancelledFlights {
			detail := diff.Details[key]
			if len(detail.Prev) == 0 {
				continue
			}
			writeGroup(&b, detail.Prev, cancelledHeaderStyle)
		}
	}

	b.WriteString("</div>")
	return b.String()
}
