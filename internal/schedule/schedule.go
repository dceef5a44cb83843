// Package schedule provides the civil-date arithmetic the reminder engine is
// built on. Every date it produces is a calendar day normalized to midnight
// UTC, derived from the studio's fixed timezone rather than the host's, so
// "today" is the same no matter where the process runs.
package schedule

import "time"

// studioZone is the studio's fixed civil timezone (UTC-5, no DST).
var studioZone = time.FixedZone("UTC-5", -5*60*60)

// Location returns the studio's timezone, for anything that schedules
// wall-clock work (the cron dispatcher uses it).
func Location() *time.Location {
	return studioZone
}

// Today returns the current calendar day as observed in the studio's
// timezone, normalized to midnight UTC.
func Today() time.Time {
	return todayAt(time.Now())
}

func todayAt(now time.Time) time.Time {
	local := now.In(studioZone)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysFromToday returns today's date shifted by the given number of days,
// normalized to midnight UTC.
func DaysFromToday(days int) time.Time {
	return daysFrom(Today(), days)
}

// MonthsFromToday returns today's date shifted by the given number of
// calendar months, normalized to midnight UTC. Month arithmetic follows
// time.AddDate semantics: overflowing days normalize forward, so Jan 31
// plus one month lands in early March rather than clamping to Feb 28/29.
func MonthsFromToday(months int) time.Time {
	return monthsFrom(Today(), months)
}

func daysFrom(base time.Time, days int) time.Time {
	return base.AddDate(0, 0, days)
}

func monthsFrom(base time.Time, months int) time.Time {
	return base.AddDate(0, months, 0)
}

// SameCalendarDay reports whether two instants fall on the same UTC
// calendar day, ignoring time-of-day.
func SameCalendarDay(a, b time.Time) bool {
	au, bu := a.UTC(), b.UTC()
	return au.Year() == bu.Year() && au.Month() == bu.Month() && au.Day() == bu.Day()
}

// DueOnOrBefore reports whether date falls on today's calendar day or any
// earlier one. Dispatch filters with this rather than an exact same-day
// match so a pending reminder whose delivery failed keeps getting retried
// after its due date has passed.
func DueOnOrBefore(date, today time.Time) bool {
	return SameCalendarDay(date, today) || date.UTC().Before(today.UTC())
}

// Normalize discards the time-of-day component of an instant, returning
// midnight UTC of its UTC calendar day.
func Normalize(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
