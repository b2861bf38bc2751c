// Package timemath computes calendar-aware elapsed time between two instants.
//
// All functions are pure: the current time is always passed in by the caller.
package timemath

import "time"

// Elapsed is the breakdown of calendar time between two instants.
type Elapsed struct {
	Days   int
	Weeks  int
	Months int
	Years  int
}

// Between returns the calendar time elapsed from start to now. Both instants
// are interpreted in now's location and reduced to their calendar dates, so a
// start at 23:59 and a now of 00:01 the next day is one day. If now is before
// start, the zero Elapsed is returned.
func Between(start, now time.Time) Elapsed {
	days := DaysBetween(start, now)
	if days <= 0 {
		return Elapsed{}
	}
	months := MonthsBetween(start, now)
	return Elapsed{
		Days:   days,
		Weeks:  days / 7,
		Months: months,
		Years:  months / 12,
	}
}

// DaysBetween returns the number of calendar-day boundaries crossed between
// start and now. Negative when now precedes start.
func DaysBetween(start, now time.Time) int {
	a := civilDate(start, now.Location())
	b := civilDate(now, now.Location())
	return int(b.Sub(a).Hours() / 24)
}

// MonthsBetween returns the number of whole calendar months between the dates
// of start and now. A month is complete once now reaches the same day of
// month as start, clamped to the last day of shorter months, so Jan 31 to
// Mar 1 is one month and Jan 31 to Feb 29 is also one.
func MonthsBetween(start, now time.Time) int {
	loc := now.Location()
	s := start.In(loc)
	n := now.In(loc)

	if !civilDate(n, loc).After(civilDate(s, loc)) {
		return 0
	}

	months := (n.Year()-s.Year())*12 + int(n.Month()-s.Month())
	if AddMonthsClamped(civilDate(s, loc), months).After(civilDate(n, loc)) {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// AddMonthsClamped adds n calendar months to t. When the day of month does
// not exist in the target month it is clamped to that month's last day,
// unlike time.AddDate which overflows into the next month.
func AddMonthsClamped(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	year := y + floorDiv(total, 12)
	month := time.Month(floorMod(total, 12) + 1)
	if last := DaysIn(year, month); d > last {
		d = last
	}
	return time.Date(year, month, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StartOfDay returns midnight of t's calendar date in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// civilDate maps t's calendar date in loc onto UTC midnight. Working in UTC
// keeps day subtraction exact across DST transitions.
func civilDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
