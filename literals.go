package forthic

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// A LiteralHandler tries to parse a token as a literal value. ok
// reports whether the token was recognized.
type LiteralHandler func(s string) (value interface{}, ok bool)

var (
	timeLiteralRe  = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?:\s*(AM|PM))?$`)
	dateLiteralRe  = regexp.MustCompile(`^(\d{4}|YYYY)-(\d{2}|MM)-(\d{2}|DD)$`)
	offsetSuffixRe = regexp.MustCompile(`[+-]\d{2}:\d{2}$`)
)

// ToBool recognizes the literals TRUE and FALSE. No other spellings are
// accepted.
func ToBool(s string) (interface{}, bool) {
	switch s {
	case "TRUE":
		return true, true
	case "FALSE":
		return false, true
	}
	return nil, false
}

// ToInt recognizes integer literals. The parse must round-trip exactly,
// so strings like "42abc", "+1", and "007" are not integers.
func ToInt(s string) (interface{}, bool) {
	if strings.Contains(s, ".") {
		return nil, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || strconv.Itoa(n) != s {
		return nil, false
	}
	return n, true
}

// ToFloat recognizes float literals. A decimal point is required so
// that integers are left to ToInt.
func ToFloat(s string) (interface{}, bool) {
	if !strings.Contains(s, ".") {
		return nil, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, false
	}
	return f, true
}

// ToTime recognizes time literals like 9:30, 14:30, and 9:30 PM.
func ToTime(s string) (interface{}, bool) {
	m := timeLiteralRe.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return nil, false
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil {
		return nil, false
	}
	switch m[3] {
	case "PM":
		if hour < 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		} else if hour > 12 {
			hour -= 12
		}
	}
	if hour > 23 || minute >= 60 {
		return nil, false
	}
	return TimeOfDay{Hour: hour, Minute: minute}, true
}

// ToLiteralDate returns a handler recognizing date literals like
// 2024-01-15. The wildcards YYYY, MM, and DD stand for the current
// year, month, and day in loc, so MM-DD-style partial dates work:
// YYYY-12-25 is Christmas of the current year.
func ToLiteralDate(loc *time.Location) LiteralHandler {
	return func(s string) (interface{}, bool) {
		m := dateLiteralRe.FindStringSubmatch(s)
		if m == nil {
			return nil, false
		}
		now := time.Now().In(loc)
		year := now.Year()
		month := int(now.Month())
		day := now.Day()
		if m[1] != "YYYY" {
			year, _ = strconv.Atoi(m[1])
		}
		if m[2] != "MM" {
			month, _ = strconv.Atoi(m[2])
		}
		if m[3] != "DD" {
			day, _ = strconv.Atoi(m[3])
		}
		if !validDate(year, month, day) {
			return nil, false
		}
		return Date{Year: year, Month: month, Day: day}, true
	}
}

func validDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.Year() == year && int(t.Month()) == month && t.Day() == day
}

// ToZonedDateTime returns a handler recognizing datetime literals.
// Supported forms:
//
//	2024-03-10T02:30:00                          naive, resolved in loc
//	2024-03-10T02:30:00Z                         UTC
//	2024-03-10T02:30:00-05:00                    offset, converted to loc
//	2024-03-10T02:30:00[America/New_York]        IANA bracket notation
//	2024-03-10T02:30:00Z[Asia/Tokyo]             instant converted to zone
//
// A bracketed IANA zone always wins: the value carries that zone, and
// any offset or Z only fixes the instant being converted.
func ToZonedDateTime(loc *time.Location) LiteralHandler {
	return func(s string) (interface{}, bool) {
		if !strings.Contains(s, "T") {
			return nil, false
		}

		bracketZone := (*time.Location)(nil)
		if i := strings.IndexByte(s, '['); i >= 0 {
			if !strings.HasSuffix(s, "]") {
				return nil, false
			}
			z, err := time.LoadLocation(s[i+1 : len(s)-1])
			if err != nil {
				return nil, false
			}
			bracketZone = z
			s = s[:i]
		}

		if strings.HasSuffix(s, "Z") {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return nil, false
			}
			if bracketZone != nil {
				return t.In(bracketZone), true
			}
			return t.UTC(), true
		}

		if offsetSuffixRe.MatchString(s) {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				return nil, false
			}
			if bracketZone != nil {
				return t.In(bracketZone), true
			}
			return t.In(loc), true
		}

		target := loc
		if bracketZone != nil {
			target = bracketZone
		}
		t, err := time.ParseInLocation("2006-01-02T15:04:05", s, target)
		if err != nil {
			return nil, false
		}
		return t, true
	}
}
