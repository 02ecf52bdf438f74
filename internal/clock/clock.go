// Package clock holds the calendar-date and time-of-day value types used by
// the fact generators, the conformance resolver that snaps computed values
// back onto the generated fecha/horario dimensions, and the elapsed-interval
// calculator. Dates and times are kept as distinct values internally and only
// serialized to their text forms (YYYY-MM-DD, HH:MM:SS) at the storage
// boundary.
package clock

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// SlotMinutes is the width of one horario slot.
const SlotMinutes = 15

// Date is a single calendar day with no time component.
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{t: t.UTC()}, nil
}

// MustParseDate is ParseDate that panics on malformed input. Intended for
// fixed catalog literals.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Date) String() string { return d.t.Format("2006-01-02") }

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

func (d Date) Equal(o Date) bool  { return d.t.Equal(o.t) }
func (d Date) After(o Date) bool  { return d.t.After(o.t) }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

// Weekday returns the day of week under the Sunday-is-0 convention used by
// the dia_semana dimension.
func (d Date) Weekday() int { return int(d.t.Weekday()) }

// DaysSince returns d - o in whole days.
func (d Date) DaysSince(o Date) int {
	return int(d.t.Sub(o.t) / (24 * time.Hour))
}

// TimeOfDay is a clock time with seconds resolution, independent of any date.
type TimeOfDay struct {
	secs int // seconds since midnight, [0, 86400)
}

// NewTimeOfDay builds a TimeOfDay from hour, minute and second.
func NewTimeOfDay(hour, minute, second int) TimeOfDay {
	s := (hour*3600 + minute*60 + second) % 86400
	if s < 0 {
		s += 86400
	}
	return TimeOfDay{secs: s}
}

// ParseTimeOfDay parses an HH:MM:SS string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var h, m, sec int
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		return TimeOfDay{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return TimeOfDay{}, fmt.Errorf("parse time %q: out of range", s)
	}
	return NewTimeOfDay(h, m, sec), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

func (t TimeOfDay) Hour() int   { return t.secs / 3600 }
func (t TimeOfDay) Minute() int { return (t.secs % 3600) / 60 }
func (t TimeOfDay) Second() int { return t.secs % 60 }

// SecondsSinceMidnight exposes the raw offset for interval arithmetic.
func (t TimeOfDay) SecondsSinceMidnight() int { return t.secs }

// Advance moves a (date, time) pair forward by the given number of minutes.
// The time wraps modulo 24 hours and the overflow carries into the date, so
// the result is the raw computed instant before any dimension conformance.
func Advance(d Date, t TimeOfDay, minutes int) (Date, TimeOfDay) {
	total := t.secs + minutes*60
	days := total / 86400
	rem := total % 86400
	if rem < 0 {
		rem += 86400
		days--
	}
	return d.AddDays(days), TimeOfDay{secs: rem}
}

// Resolver snaps computed (date, time) values onto the finite fecha and
// horario dimensions generated for a run. Both collections must be non-empty
// and ordered ascending.
type Resolver struct {
	dates   []Date
	dateSet map[string]struct{}
	slots   []TimeOfDay
	slotSet map[TimeOfDay]struct{}
	rng     *rand.Rand
	log     zerolog.Logger
}

// NewResolver builds a resolver over the run's date and time-slot dimensions.
func NewResolver(dates []Date, slots []TimeOfDay, rng *rand.Rand, log zerolog.Logger) *Resolver {
	r := &Resolver{
		dates:   dates,
		dateSet: make(map[string]struct{}, len(dates)),
		slots:   slots,
		slotSet: make(map[TimeOfDay]struct{}, len(slots)),
		rng:     rng,
		log:     log,
	}
	for _, d := range dates {
		r.dateSet[d.String()] = struct{}{}
	}
	for _, s := range slots {
		r.slotSet[s] = struct{}{}
	}
	return r
}

// ResolveDate returns the date itself when it exists in the fecha dimension,
// and the dimension's last date otherwise. Forward-projected events that
// overshoot the generated calendar window clamp to the final valid day
// instead of failing.
func (r *Resolver) ResolveDate(d Date) Date {
	if _, ok := r.dateSet[d.String()]; ok {
		return d
	}
	return r.dates[len(r.dates)-1]
}

// ResolveTime floors the time down to its slot boundary and returns the
// matching horario entry. A floored value missing from the dimension means
// the horario table does not cover the full day; that case falls back to a
// uniformly random slot and is logged so a misconfigured dimension is not
// silently masked.
func (r *Resolver) ResolveTime(t TimeOfDay) TimeOfDay {
	floored := NewTimeOfDay(t.Hour(), (t.Minute()/SlotMinutes)*SlotMinutes, 0)
	if _, ok := r.slotSet[floored]; ok {
		return floored
	}
	picked := r.slots[r.rng.Intn(len(r.slots))]
	r.log.Warn().
		Str("computed", t.String()).
		Str("floored", floored.String()).
		Str("fallback", picked.String()).
		Msg("time slot not in horario dimension, using random slot")
	return picked
}

// Interval formats the elapsed wall-clock time between two instants as
// HH:MM:SS. Hours are not wrapped at 24, so multi-day spans report their full
// hour count. A negative raw difference (possible when date clamping pushes
// the end before the start) is corrected to its absolute value, and an exactly
// zero difference is reported as one minute: zero-length events are disallowed
// by convention in this schema.
func Interval(startDate Date, startTime TimeOfDay, endDate Date, endTime TimeOfDay) string {
	diff := endDate.DaysSince(startDate)*86400 + endTime.secs - startTime.secs
	if diff < 0 {
		diff = -diff
	}
	if diff == 0 {
		diff = 60
	}
	return fmt.Sprintf("%02d:%02d:%02d", diff/3600, (diff%3600)/60, diff%60)
}
