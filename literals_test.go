package forthic

import (
	"testing"
	"time"
)

func TestToBool(t *testing.T) {
	if v, ok := ToBool("TRUE"); !ok || v != true {
		t.Errorf("TRUE: got %v %v", v, ok)
	}
	if v, ok := ToBool("FALSE"); !ok || v != false {
		t.Errorf("FALSE: got %v %v", v, ok)
	}
	for _, s := range []string{"true", "True", "T", "YES", ""} {
		if _, ok := ToBool(s); ok {
			t.Errorf("%q recognized as bool", s)
		}
	}
}

func TestToInt(t *testing.T) {
	if v, ok := ToInt("42"); !ok || v != 42 {
		t.Errorf("42: got %v %v", v, ok)
	}
	if v, ok := ToInt("-7"); !ok || v != -7 {
		t.Errorf("-7: got %v %v", v, ok)
	}
	if v, ok := ToInt("0"); !ok || v != 0 {
		t.Errorf("0: got %v %v", v, ok)
	}
	// The parse must round-trip exactly.
	for _, s := range []string{"007", "+1", "42abc", "1.0", "", "1e3"} {
		if _, ok := ToInt(s); ok {
			t.Errorf("%q recognized as int", s)
		}
	}
}

func TestToFloat(t *testing.T) {
	if v, ok := ToFloat("3.14"); !ok || v != 3.14 {
		t.Errorf("3.14: got %v %v", v, ok)
	}
	if v, ok := ToFloat("-0.5"); !ok || v != -0.5 {
		t.Errorf("-0.5: got %v %v", v, ok)
	}
	// A decimal point is required.
	for _, s := range []string{"42", "1e3", "abc"} {
		if _, ok := ToFloat(s); ok {
			t.Errorf("%q recognized as float", s)
		}
	}
}

func TestToTime(t *testing.T) {
	cases := []struct {
		in   string
		want TimeOfDay
	}{
		{"9:30", TimeOfDay{Hour: 9, Minute: 30}},
		{"14:30", TimeOfDay{Hour: 14, Minute: 30}},
		{"9:30 PM", TimeOfDay{Hour: 21, Minute: 30}},
		{"12:00 AM", TimeOfDay{Hour: 0, Minute: 0}},
		{"12:00 PM", TimeOfDay{Hour: 12, Minute: 0}},
	}
	for _, c := range cases {
		v, ok := ToTime(c.in)
		if !ok || v != c.want {
			t.Errorf("%q: got %v %v, want %v", c.in, v, ok, c.want)
		}
	}
	for _, s := range []string{"25:00", "10:75", "10", "abc"} {
		if _, ok := ToTime(s); ok {
			t.Errorf("%q recognized as time", s)
		}
	}
}

func TestToLiteralDate(t *testing.T) {
	handler := ToLiteralDate(time.UTC)

	v, ok := handler("2024-01-15")
	if !ok || v != NewDate(2024, 1, 15) {
		t.Errorf("2024-01-15: got %v %v", v, ok)
	}

	// Invalid calendar dates are not recognized.
	for _, s := range []string{"2024-02-30", "2024-13-01", "2024-00-10", "2024-1-15"} {
		if _, ok := handler(s); ok {
			t.Errorf("%q recognized as date", s)
		}
	}
}

func TestToLiteralDateWildcards(t *testing.T) {
	handler := ToLiteralDate(time.UTC)
	now := time.Now().UTC()

	v, ok := handler("YYYY-12-25")
	if !ok {
		t.Fatal("YYYY-12-25 not recognized")
	}
	d := v.(Date)
	if d.Year != now.Year() || d.Month != 12 || d.Day != 25 {
		t.Errorf("got %v, want Christmas of the current year", d)
	}
}

func TestToZonedDateTimeNaive(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("no timezone database")
	}
	handler := ToZonedDateTime(ny)

	v, ok := handler("2024-06-15T10:30:00")
	if !ok {
		t.Fatal("naive datetime not recognized")
	}
	dt := v.(time.Time)
	want := time.Date(2024, 6, 15, 10, 30, 0, 0, ny)
	if !dt.Equal(want) || dt.Location() != ny {
		t.Errorf("got %v in %v, want %v", dt, dt.Location(), want)
	}
}

func TestToZonedDateTimeUTC(t *testing.T) {
	handler := ToZonedDateTime(time.UTC)
	v, ok := handler("2024-06-15T10:30:00Z")
	if !ok {
		t.Fatal("Z-suffixed datetime not recognized")
	}
	dt := v.(time.Time)
	if dt.Location() != time.UTC {
		t.Errorf("zone %v, want UTC", dt.Location())
	}
	if dt.Hour() != 10 || dt.Minute() != 30 {
		t.Errorf("got %v", dt)
	}
}

func TestToZonedDateTimeOffset(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("no timezone database")
	}
	handler := ToZonedDateTime(ny)

	// An offset fixes the instant and the value is converted to the
	// interpreter zone.
	v, ok := handler("2024-06-15T10:30:00-05:00")
	if !ok {
		t.Fatal("offset datetime not recognized")
	}
	dt := v.(time.Time)
	if dt.Location() != ny {
		t.Errorf("zone %v, want America/New_York", dt.Location())
	}
	want := time.Date(2024, 6, 15, 15, 30, 0, 0, time.UTC)
	if !dt.Equal(want) {
		t.Errorf("instant %v, want %v", dt.UTC(), want)
	}
}

func TestToZonedDateTimeBracket(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skip("no timezone database")
	}
	handler := ToZonedDateTime(time.UTC)

	// The bracket zone wins over the interpreter zone.
	v, ok := handler("2024-06-15T10:30:00[Asia/Tokyo]")
	if !ok {
		t.Fatal("bracketed datetime not recognized")
	}
	dt := v.(time.Time)
	if dt.Location().String() != "Asia/Tokyo" {
		t.Errorf("zone %v, want Asia/Tokyo", dt.Location())
	}
	want := time.Date(2024, 6, 15, 10, 30, 0, 0, tokyo)
	if !dt.Equal(want) {
		t.Errorf("got %v, want %v", dt, want)
	}

	// The bracket zone also wins over a Z suffix; the Z fixes the
	// instant.
	v, ok = handler("2024-06-15T01:30:00Z[Asia/Tokyo]")
	if !ok {
		t.Fatal("Z plus bracket not recognized")
	}
	dt = v.(time.Time)
	if dt.Location().String() != "Asia/Tokyo" {
		t.Errorf("zone %v, want Asia/Tokyo", dt.Location())
	}
	if dt.Hour() != 10 || dt.Minute() != 30 {
		t.Errorf("got %v, want 10:30 in Tokyo", dt)
	}
}

func TestToZonedDateTimeRejections(t *testing.T) {
	handler := ToZonedDateTime(time.UTC)
	bad := []string{
		"2024-06-15 10:30:00",
		"2024-06-15T10:30:00[Not/A_Zone]",
		"2024-06-15T10:30:00[Asia/Tokyo",
		"not-a-datetime",
		"2024-06-15",
	}
	for _, s := range bad {
		if _, ok := handler(s); ok {
			t.Errorf("%q recognized as zoned datetime", s)
		}
	}
}
