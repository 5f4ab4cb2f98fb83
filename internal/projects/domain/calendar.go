package domain

import "time"

// Calendar arithmetic for the duration calculations. All helpers normalize
// their inputs to UTC dates so time-of-day never influences day counts.
//
// Two sign conventions coexist deliberately: span counts (TotalDays,
// WorkingDays) are symmetric and inclusive, while remaining counts
// (DaysUntil, WorkingDaysUntil) are signed so negative values express an
// overdue end date.

// TotalDays returns the inclusive calendar-day span between two dates.
// The order of arguments does not matter. A span from Monday to Friday of
// the same week counts 5 days.
func TotalDays(a, b time.Time) int {
	start, end := dateOf(a), dateOf(b)
	if end.Before(start) {
		start, end = end, start
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// WorkingDays counts the days in [start, end] (inclusive) that fall
// Monday-Friday. Iterates one day at a time; no holiday calendar is
// modeled. Returns 0 when end precedes start.
func WorkingDays(start, end time.Time) int {
	s, e := dateOf(start), dateOf(end)
	if e.Before(s) {
		return 0
	}
	return countWeekdays(s, e)
}

// DaysUntil returns the signed number of calendar days from today until
// end: positive when end lies in the future, negative when it has passed,
// zero on the same day.
func DaysUntil(today, end time.Time) int {
	t, e := dateOf(today), dateOf(end)
	return int(e.Sub(t).Hours() / 24)
}

// WorkingDaysUntil returns the signed number of working days from today
// until end, excluding today itself. Negative values count the weekdays by
// which the end date has been missed.
func WorkingDaysUntil(today, end time.Time) int {
	t, e := dateOf(today), dateOf(end)
	switch {
	case e.After(t):
		return countWeekdays(t.AddDate(0, 0, 1), e)
	case e.Before(t):
		return -countWeekdays(e, t.AddDate(0, 0, -1))
	default:
		return 0
	}
}

// countWeekdays counts Monday-Friday days in [start, end], both normalized
// dates with start <= end.
func countWeekdays(start, end time.Time) int {
	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		wd := d.Weekday()
		if wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

// dateOf truncates a timestamp to its UTC calendar date.
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
