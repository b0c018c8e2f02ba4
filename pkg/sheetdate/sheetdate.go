// Package sheetdate turns the date and time shapes found in partner
// spreadsheets into absolute instants. Raw sheet times are airport-local but
// are carried as context-free UTC instants until localization is applied
// explicitly, so every path here builds the wall clock in UTC.
package sheetdate

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// Excel's day zero (1899-12-30) puts the Unix epoch at serial 25569.
	unixEpochSerial = 25569

	// DefaultSerialMin and DefaultSerialMax bound the plausible Excel serial
	// date range (roughly 1970-2119). Ordinary small integers in a sheet must
	// not be misread as dates; the exact bounds are a heuristic.
	DefaultSerialMin = 25569
	DefaultSerialMax = 80000
)

var (
	// D[./-]M[./-]YY(YY) with optional H[:MM[:SS]], separators may be spaces.
	dayFirstRe = regexp.MustCompile(`^(\d{1,2})[./-](\d{1,2})[./-](\d{2,4})(?:\s+(\d{1,2})(?:[:\s](\d{1,2}))?(?:[:\s](\d{1,2}))?)?$`)
	// YYYY[./-]M[./-]D with optional time, "T" separator tolerated.
	isoLikeRe = regexp.MustCompile(`^(\d{4})[./-](\d{1,2})[./-](\d{1,2})(?:[ T](\d{1,2})(?::(\d{1,2})(?::(\d{1,2}))?)?)?$`)
	// US M/D/YYYY, only consulted when the day-first reading is not a valid date.
	usRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})(?:\s+(\d{1,2})(?::(\d{1,2}))?(?::(\d{1,2}))?)?$`)

	serialRe = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

	// regexp \b is ASCII-only, so the Turkish meridiem markers are stripped
	// with a plain replacer instead.
	meridiemCleaner = strings.NewReplacer("ÖÖ", "", "Öö", "", "öö", "", "ÖS", "", "Ös", "", "ös", "")
)

// Fallback layouts for free-text dates that escaped every pattern.
var fallbackLayouts = []string{
	"02 Jan 2006 15:04:05",
	"02 Jan 2006 15:04",
	"02 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// Parser converts heterogeneous cell values into instants. The serial range
// is configurable; the zero value is not usable, construct with New.
type Parser struct {
	SerialMin float64
	SerialMax float64
}

// New returns a Parser with the default plausible serial range.
func New() *Parser {
	return &Parser{SerialMin: DefaultSerialMin, SerialMax: DefaultSerialMax}
}

// Parse returns the instant encoded by a cell value, or nil when the cell
// does not hold a recognizable date. It never fails louder than nil.
func (p *Parser) Parse(value interface{}) *time.Time {
	switch v := value.(type) {
	case nil:
		return nil
	case time.Time:
		if v.IsZero() {
			return nil
		}
		t := rebaseUTC(v)
		return &t
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil
		}
		t := rebaseUTC(*v)
		return &t
	case float64:
		return p.fromSerial(v)
	case int:
		return p.fromSerial(float64(v))
	case int64:
		return p.fromSerial(float64(v))
	case string:
		return p.parseString(v)
	}
	return p.parseString(strings.TrimSpace(toString(value)))
}

func toString(v interface{}) string {
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	return ""
}

// rebaseUTC keeps the wall clock of a decoded date cell but pins it to UTC,
// discarding whatever zone the decoder attached.
func rebaseUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

func (p *Parser) fromSerial(n float64) *time.Time {
	if !(n > p.SerialMin && n < p.SerialMax) {
		return nil
	}
	secs := math.Round((n - unixEpochSerial) * 86400)
	t := time.Unix(int64(secs), 0).UTC()
	return &t
}

type meridiem int

const (
	noMeridiem meridiem = iota
	anteMeridiem
	postMeridiem
)

func (p *Parser) parseString(s string) *time.Time {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return nil
	}

	// Turkish meridiem markers show up in hotel block timestamps.
	mer := noMeridiem
	upper := strings.ToUpper(s)
	if strings.Contains(upper, "ÖÖ") {
		mer = anteMeridiem
	} else if strings.Contains(upper, "ÖS") {
		mer = postMeridiem
	}
	if mer != noMeridiem {
		s = strings.Join(strings.Fields(meridiemCleaner.Replace(s)), " ")
	}

	if m := dayFirstRe.FindStringSubmatch(s); m != nil {
		year := expandYear(m[3])
		if t := buildDate(year, atoi(m[2]), atoi(m[1]), atoi(m[4]), atoi(m[5]), atoi(m[6]), mer); t != nil {
			return t
		}
		// Day-first reading was not a real date; maybe it is US month-first.
		if u := usRe.FindStringSubmatch(s); u != nil {
			if t := buildDate(atoi(u[3]), atoi(u[1]), atoi(u[2]), atoi(u[4]), atoi(u[5]), atoi(u[6]), mer); t != nil {
				return t
			}
		}
		return nil
	}

	if m := isoLikeRe.FindStringSubmatch(s); m != nil {
		return buildDate(atoi(m[1]), atoi(m[2]), atoi(m[3]), atoi(m[4]), atoi(m[5]), atoi(m[6]), mer)
	}

	if serialRe.MatchString(s) {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return p.fromSerial(n)
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			u := rebaseUTC(t)
			return &u
		}
	}
	return nil
}

// expandYear widens two-digit years: above 50 reads as 19xx, else 20xx.
func expandYear(s string) int {
	y := atoi(s)
	if len(s) == 2 {
		if y > 50 {
			return 1900 + y
		}
		return 2000 + y
	}
	return y
}

func buildDate(year, month, day, hour, minute, sec int, mer meridiem) *time.Time {
	if mer == postMeridiem && hour < 12 {
		hour += 12
	}
	if mer == anteMeridiem && hour == 12 {
		hour = 0
	}
	if month < 1 || month > 12 || day < 1 || hour > 23 || minute > 59 || sec > 59 {
		return nil
	}
	t := time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 becomes Mar 2); reject that.
	if t.Day() != day || t.Month() != time.Month(month) || t.Year() != year {
		return nil
	}
	return &t
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
