// Package calendar resolves instants to company-local calendar days.
//
// Storage and computation happen in UTC while companies live in their own
// IANA time zones, so every "which day is this" question in the codebase
// must go through this package. Date membership is always decided by
// comparing YYYY-MM-DD strings, never by comparing raw instants across
// mixed UTC/local representations.
package calendar

import (
	"fmt"
	"net/http"
	"time"

	"go-readiness/internal/shared/apperror"
)

// DateLayout is the canonical calendar-date form used everywhere:
// date columns, range tests, summary keys.
const DateLayout = "2006-01-02"

const clockLayout = "15:04"

var weekdayCodes = map[time.Weekday]string{
	time.Monday:    "MON",
	time.Tuesday:   "TUE",
	time.Wednesday: "WED",
	time.Thursday:  "THU",
	time.Friday:    "FRI",
	time.Saturday:  "SAT",
	time.Sunday:    "SUN",
}

// Location resolves an IANA timezone identifier.
func Location(tz string) (*time.Location, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInconsistent,
			fmt.Sprintf("unknown timezone %q", tz), http.StatusUnprocessableEntity)
	}
	return loc, nil
}

// LocalDate returns the calendar date of an instant in the given zone.
func LocalDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// Weekday returns the MON..SUN code of an instant in the given zone.
func Weekday(t time.Time, loc *time.Location) string {
	return weekdayCodes[t.In(loc).Weekday()]
}

// WeekdayOfDate returns the MON..SUN code of a calendar date. Once a date
// is fixed its weekday no longer depends on any zone.
func WeekdayOfDate(date string) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return weekdayCodes[t.Weekday()], nil
}

// ParseDate validates a YYYY-MM-DD string.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, apperror.Wrap(err, apperror.CodeInvalidInput,
			fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date), http.StatusBadRequest)
	}
	return t, nil
}

// StartOfDay returns the instant the calendar date begins in the given zone.
func StartOfDay(date string, loc *time.Location) (time.Time, error) {
	t, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// EndOfDay returns the last instant of the calendar date in the given zone.
func EndOfDay(date string, loc *time.Location) (time.Time, error) {
	start, err := StartOfDay(date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return start.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
}

// DBDate normalizes a calendar date to a fixed representative instant
// (UTC noon) so date-typed columns compare by calendar day regardless of
// the zone a driver renders them in.
func DBDate(date string) (time.Time, error) {
	t, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC), nil
}

// DBDateFromInstant is DBDate applied to the local calendar day of an instant.
func DBDateFromInstant(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 12, 0, 0, 0, time.UTC)
}

// AddDays shifts a calendar date by n days (n may be negative).
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

// DaysBetween returns to minus from in whole calendar days.
func DaysBetween(from, to string) (int, error) {
	f, err := ParseDate(from)
	if err != nil {
		return 0, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return 0, err
	}
	return int(t.Sub(f).Hours() / 24), nil
}

// ParseClock validates an HH:MM time-of-day string and returns the hour
// and minute components.
func ParseClock(clock string) (hour, minute int, err error) {
	t, perr := time.Parse(clockLayout, clock)
	if perr != nil {
		return 0, 0, apperror.Wrap(perr, apperror.CodeInvalidInput,
			fmt.Sprintf("invalid time %q, expected HH:MM", clock), http.StatusBadRequest)
	}
	return t.Hour(), t.Minute(), nil
}

// ClockPassed reports whether the given HH:MM time-of-day on the given
// calendar date has already passed at instant now, evaluated in loc.
func ClockPassed(date, clock string, loc *time.Location, now time.Time) (bool, error) {
	start, err := StartOfDay(date, loc)
	if err != nil {
		return false, err
	}
	hour, minute, err := ParseClock(clock)
	if err != nil {
		return false, err
	}
	at := time.Date(start.Year(), start.Month(), start.Day(), hour, minute, 0, 0, loc)
	return !now.Before(at), nil
}
