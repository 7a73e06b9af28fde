package forthic

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Forthic values are represented as Go values. The interpreter and the
// standard runtime library operate on this closed set of types:
//
//	nil
//	bool
//	int
//	float64
//	string
//	[]interface{}
//	map[string]interface{}
//	Date
//	TimeOfDay
//	time.Time (a zoned datetime; the Location is the zone)
//	*WordOptions

// A Date is a calendar date with no time or zone attached.
type Date struct {
	Year  int
	Month int
	Day   int
}

// NewDate creates a Date.
func NewDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf extracts the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

// At combines the date with a wall-clock time in the given location.
func (d Date) At(tod TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, tod.Hour, tod.Minute, tod.Second, 0, loc)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// A TimeOfDay is a wall-clock time with no date or zone attached.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// NewTimeOfDay creates a TimeOfDay.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	return TimeOfDay{Hour: hour, Minute: minute, Second: second}
}

// TimeOfDayOf extracts the wall-clock time of t in t's location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

// FormatValue renders a Forthic value as a string, the form used by
// >STR and by the REPL's stack display. Strings render without quotes;
// nil renders as "null".
func FormatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return val
	case []interface{}:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = FormatValue(item)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + FormatValue(val[k])
		}
		return "{" + strings.Join(parts, " ") + "}"
	case Date:
		return val.String()
	case TimeOfDay:
		return val.String()
	case time.Time:
		return val.Format(time.RFC3339)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
