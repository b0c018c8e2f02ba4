package rowfield

import (
	"fmt"
	"strconv"
	"strings"

	"crewtravel-service/internal/domain/entity"
)

// Resolve looks up a logical field in a raw sheet row. Candidates are tried
// in order; the first case-insensitive header match with a non-empty value
// wins. Returns nil when no candidate matches. The row is never mutated.
func Resolve(row entity.RawRow, candidates ...string) interface{} {
	for _, candidate := range candidates {
		for key, value := range row {
			if !strings.EqualFold(key, candidate) {
				continue
			}
			if value == nil {
				continue
			}
			if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
				continue
			}
			return value
		}
	}
	return nil
}

// ResolveString resolves a field and renders it as a trimmed string,
// returning "" when the field is absent.
func ResolveString(row entity.RawRow, candidates ...string) string {
	return CellString(Resolve(row, candidates...))
}

// CellString renders a cell value as a trimmed string. Numeric cells drop a
// trailing ".0" so flight numbers read back the way they were typed.
func CellString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

// ParseCellInt parses a cell as an integer, nil when absent or unparseable.
func ParseCellInt(value interface{}) *int {
	switch v := value.(type) {
	case nil:
		return nil
	case float64:
		n := int(v)
		return &n
	case int:
		n := v
		return &n
	}
	s := CellString(value)
	if s == "" {
		return nil
	}
	// Leading integer only, matching how partner sheets write counts ("2 SNG").
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	return &n
}

// CollapseSpaces trims and squeezes internal whitespace runs to one space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var turkishFolder = strings.NewReplacer(
	"ı", "i", "İ", "i",
	"ğ", "g", "Ğ", "g",
	"ü", "u", "Ü", "u",
	"ş", "s", "Ş", "s",
	"ö", "o", "Ö", "o",
	"ç", "c", "Ç", "c",
)

// FoldName normalizes a person name for matching: whitespace collapse,
// lowercase, Turkish diacritics folded to ASCII. Display values keep their
// original diacritics; this form is only ever a map key.
func FoldName(name string) string {
	folded := turkishFolder.Replace(CollapseSpaces(name))
	return strings.ToLower(folded)
}
