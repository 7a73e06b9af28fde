package stdlib

import (
	"fmt"
	"time"

	"gitlab.com/variadico/lctime"

	forthic "github.com/forthix/forthic-go"
)

// NewDateTimeModule creates the datetime module. Words that need a
// reference timezone use the interpreter's configured zone; dates are
// forthic.Date values, times of day forthic.TimeOfDay, and full
// datetimes time.Time.
func NewDateTimeModule() *forthic.Module {
	m := forthic.NewModule("datetime")
	registerWords(m, []wordEntry{
		{"TODAY", wordToday},
		{"NOW", wordNow},
		{">TIME", wordToTime},
		{">DATE", wordToDate},
		{">DATETIME", wordToDateTime},
		{"AT", wordAt},
		{"TIME>STR", wordTimeToStr},
		{"DATE>STR", wordDateToStr},
		{"DATE>INT", wordDateToInt},
		{">TIMESTAMP", wordToTimestamp},
		{"TIMESTAMP>DATETIME", wordTimestampToDateTime},
		{"ADD-DAYS", wordAddDays},
		{"SUBTRACT-DATES", wordSubtractDates},
		{"STRFTIME", wordStrftime},
	})
	return m
}

// ctxLocation returns the interpreter's timezone when the context is
// an interpreter, and UTC otherwise.
func ctxLocation(ctx forthic.Context) *time.Location {
	if tz, ok := ctx.(interface{ Timezone() *time.Location }); ok {
		return tz.Timezone()
	}
	return time.UTC
}

func wordToday(ctx forthic.Context) error {
	now := time.Now().In(ctxLocation(ctx))
	ctx.StackPush(forthic.DateOf(now))
	return nil
}

// wordNow pushes the current datetime in UTC.
func wordNow(ctx forthic.Context) error {
	ctx.StackPush(time.Now().UTC())
	return nil
}

// toTimeOfDay converts a value to a TimeOfDay, or returns false.
func toTimeOfDay(v interface{}, loc *time.Location) (forthic.TimeOfDay, bool) {
	switch val := v.(type) {
	case forthic.TimeOfDay:
		return val, true
	case time.Time:
		return forthic.TimeOfDayOf(val.In(loc)), true
	case string:
		if parsed, ok := forthic.ToTime(val); ok {
			return parsed.(forthic.TimeOfDay), true
		}
	}
	return forthic.TimeOfDay{}, false
}

// toDate converts a value to a Date, or returns false.
func toDate(v interface{}, loc *time.Location) (forthic.Date, bool) {
	switch val := v.(type) {
	case forthic.Date:
		return val, true
	case time.Time:
		return forthic.DateOf(val.In(loc)), true
	case string:
		if parsed, ok := forthic.ToLiteralDate(loc)(val); ok {
			return parsed.(forthic.Date), true
		}
	}
	return forthic.Date{}, false
}

// toDateTime converts a value to a time.Time, or returns false.
func toDateTime(v interface{}, loc *time.Location) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case forthic.Date:
		return val.At(forthic.TimeOfDay{}, loc), true
	case string:
		if parsed, ok := forthic.ToZonedDateTime(loc)(val); ok {
			return parsed.(time.Time), true
		}
		if parsed, ok := forthic.ToLiteralDate(loc)(val); ok {
			return parsed.(forthic.Date).At(forthic.TimeOfDay{}, loc), true
		}
	case int:
		return time.Unix(int64(val), 0).In(loc), true
	}
	return time.Time{}, false
}

func wordToTime(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	if t, ok := toTimeOfDay(v, ctxLocation(ctx)); ok {
		ctx.StackPush(t)
	} else {
		ctx.StackPush(nil)
	}
	return nil
}

func wordToDate(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	if d, ok := toDate(v, ctxLocation(ctx)); ok {
		ctx.StackPush(d)
	} else {
		ctx.StackPush(nil)
	}
	return nil
}

func wordToDateTime(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	if dt, ok := toDateTime(v, ctxLocation(ctx)); ok {
		ctx.StackPush(dt)
	} else {
		ctx.StackPush(nil)
	}
	return nil
}

// wordAt combines a date and a time of day into a datetime in the
// interpreter's timezone.
func wordAt(ctx forthic.Context) error {
	timeVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	dateVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	loc := ctxLocation(ctx)
	d, dok := toDate(dateVal, loc)
	t, tok := toTimeOfDay(timeVal, loc)
	if !dok || !tok {
		ctx.StackPush(nil)
		return nil
	}
	ctx.StackPush(d.At(t, loc))
	return nil
}

func wordTimeToStr(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	t, ok := toTimeOfDay(v, ctxLocation(ctx))
	if !ok {
		ctx.StackPush(nil)
		return nil
	}
	ctx.StackPush(fmt.Sprintf("%02d:%02d", t.Hour, t.Minute))
	return nil
}

func wordDateToStr(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	d, ok := toDate(v, ctxLocation(ctx))
	if !ok {
		ctx.StackPush(nil)
		return nil
	}
	ctx.StackPush(d.String())
	return nil
}

func wordDateToInt(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	d, ok := toDate(v, ctxLocation(ctx))
	if !ok {
		ctx.StackPush(nil)
		return nil
	}
	ctx.StackPush(d.Year*10000 + d.Month*100 + d.Day)
	return nil
}

func wordToTimestamp(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	dt, ok := toDateTime(v, ctxLocation(ctx))
	if !ok {
		ctx.StackPush(nil)
		return nil
	}
	ctx.StackPush(int(dt.Unix()))
	return nil
}

func wordTimestampToDateTime(ctx forthic.Context) error {
	v, err := ctx.StackPop()
	if err != nil {
		return err
	}
	ts, ok := asInt(v)
	if !ok {
		ctx.StackPush(nil)
		return nil
	}
	ctx.StackPush(time.Unix(int64(ts), 0).In(ctxLocation(ctx)))
	return nil
}

func wordAddDays(ctx forthic.Context) error {
	nVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	dateVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	loc := ctxLocation(ctx)
	d, dok := toDate(dateVal, loc)
	n, nok := asInt(nVal)
	if !dok || !nok {
		ctx.StackPush(nil)
		return nil
	}
	shifted := d.At(forthic.TimeOfDay{}, time.UTC).AddDate(0, 0, n)
	ctx.StackPush(forthic.DateOf(shifted))
	return nil
}

// wordSubtractDates pushes the number of days from the second date to
// the first.
func wordSubtractDates(ctx forthic.Context) error {
	bVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	aVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	loc := ctxLocation(ctx)
	a, aok := toDate(aVal, loc)
	b, bok := toDate(bVal, loc)
	if !aok || !bok {
		ctx.StackPush(nil)
		return nil
	}
	at := a.At(forthic.TimeOfDay{}, time.UTC)
	bt := b.At(forthic.TimeOfDay{}, time.UTC)
	ctx.StackPush(int(at.Sub(bt).Hours() / 24))
	return nil
}

// wordStrftime formats a datetime with an strftime pattern in the
// current locale.
func wordStrftime(ctx forthic.Context) error {
	fmtVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	dtVal, err := ctx.StackPop()
	if err != nil {
		return err
	}
	format, ok := fmtVal.(string)
	if !ok {
		ctx.StackPush(nil)
		return nil
	}
	dt, ok := toDateTime(dtVal, ctxLocation(ctx))
	if !ok {
		ctx.StackPush(nil)
		return nil
	}
	ctx.StackPush(lctime.Strftime(format, dt))
	return nil
}
