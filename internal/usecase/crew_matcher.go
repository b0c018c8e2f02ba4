package usecase

import (
	"strings"

	"crewtravel-service/internal/domain/entity"
	"crewtravel-service/pkg/rowfield"
	"crewtravel-service/pkg/sheetdate"
)

// buildCrewIndex keys the roster by every name form a ticket sheet might
// use: the stored full name, first+last, the raw Name+Surname pair, and the
// bare surname as a last resort. All keys are diacritic-folded so "Yılmaz"
// and "Yilmaz" meet.
func buildCrewIndex(members []*entity.CrewMember) map[string]*entity.CrewMember {
	index := make(map[string]*entity.CrewMember, len(members)*2)
	for _, m := range members {
		if m.FullName != "" {
			index[rowfield.FoldName(m.FullName)] = m
		}
		combo := strings.TrimSpace(strings.TrimSpace(m.FirstName) + " " + strings.TrimSpace(m.LastName))
		if combo != "" && combo != m.LastName {
			index[rowfield.FoldName(combo)] = m
		}
		rawName := rowfield.ResolveString(m.Raw, "Name")
		rawSurname := rowfield.ResolveString(m.Raw, "Surname")
		if rawSurname == "" {
			rawSurname = m.LastName
		}
		if rawName != "" && rawSurname != "" {
			index[rowfield.FoldName(rawName+" "+rawSurname)] = m
		}
		if m.LastName != "" {
			index[rowfield.FoldName(m.LastName)] = m
		}
	}
	return index
}

// applyCrewData fills the row's enrichment sub-record and backfills typed
// fields the sheet left empty. Sheet values always win over roster values.
func applyCrewData(row *entity.TicketRow, member *entity.CrewMember, dates *sheetdate.Parser) {
	expiry := member.PassportExpiry
	if expiry == nil {
		expiry = dates.Parse(rowfield.Resolve(member.Raw, "Valid Until", "VALID UNTIL"))
	}
	phone := member.Phone
	if phone == "" {
		phone = rowfield.ResolveString(member.Raw, "Mobile Phone", "MOBILE PHONE")
	}
	row.Enrichment = &entity.CrewEnrichment{
		PassportExpiry: expiry,
		CitizenshipNo:  rowfield.ResolveString(member.Raw, "Citizenship No", "CITIZENSHIP NO"),
		Phone:          phone,
	}

	if row.Rank == "" {
		row.Rank = rowfield.ResolveString(member.Raw, "DUTY TYPE", "Duty Type")
		if row.Rank == "" {
			row.Rank = member.Position
		}
	}
	if row.Nationality == "" {
		row.Nationality = member.Nationality
		if row.Nationality == "" {
			row.Nationality = rowfield.ResolveString(member.Raw, "NATIONALITY")
		}
	}
	if row.PassportNumber == "" {
		row.PassportNumber = member.PassportNumber
		if row.PassportNumber == "" {
			row.PassportNumber = rowfield.ResolveString(member.Raw, "PASSPORT NUMBER", "PASSPORT NO")
		}
	}
	if row.Gender == "" {
		row.Gender = rowfield.ResolveString(member.Raw, "Gender", "GEN")
	}
	if row.DateOfBirth == nil {
		row.DateOfBirth = dates.Parse(rowfield.Resolve(member.Raw, "DATE OF BIRTH"))
	}
}
