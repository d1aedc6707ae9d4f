// Package dateutil provides day-granularity time helpers for scheduling.
//
// All due-date and week-window comparisons in the engine operate on calendar
// days, never on clock time, so that an item due "today" is due from midnight
// regardless of the hour a session runs.
package dateutil

import "time"

// DayStart returns t truncated to midnight in t's location.
func DayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// OnOrBeforeDay reports whether a's calendar day is on or before b's.
func OnOrBeforeDay(a, b time.Time) bool {
	return !DayStart(a).After(DayStart(b))
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayStart(a).Equal(DayStart(b))
}

// WeekStart returns midnight of the Monday of the week containing t.
func WeekStart(t time.Time) time.Time {
	day := DayStart(t)
	// time.Weekday counts Sunday as 0; shift so Monday is 0.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekEnd returns the exclusive end of the week containing t
// (midnight of the following Monday).
func WeekEnd(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, 7)
}

// InWeekOf reports whether t falls within the calendar week containing ref.
func InWeekOf(t, ref time.Time) bool {
	start := WeekStart(ref)
	return !t.Before(start) && t.Before(WeekEnd(ref))
}

// AddDays returns t shifted forward by a possibly fractional number of days.
func AddDays(t time.Time, days float64) time.Time {
	return t.Add(time.Duration(days * 24 * float64(time.Hour)))
}
