// Package window computes calendar-month time windows and the creation-date
// listings derived from them.
package window

import (
	"slices"
	"time"
)

// DateLayout is the calendar date format returned to clients.
const DateLayout = "2006-01-02"

// MonthsBefore returns midnight of the calendar day n months before now's date,
// in now's location. Months are subtracted on the calendar (not as 30-day
// multiples); the year rolls back as the month index wraps. The day of month is
// clamped to the length of the target month, so March 31 minus one month is the
// last day of February. Windows reaching past year 1 start on January 1 of year 1.
func MonthsBefore(now time.Time, n int) time.Time {
	y, m, d := now.Date()
	if n > (y-1)*12+int(m)-1 {
		return time.Date(1, time.January, 1, 0, 0, 0, 0, now.Location())
	}

	total := y*12 + int(m) - 1 - n
	year := floorDiv(total, 12)
	month := time.Month(total - year*12 + 1)

	day := min(d, daysIn(year, month))
	return time.Date(year, month, day, 0, 0, 0, 0, now.Location())
}

// Dates converts unix timestamps to calendar dates in loc and returns them most
// recent first. One entry is produced per timestamp; equal dates are kept.
func Dates(timestamps []int64, loc *time.Location) []string {
	days := make([]time.Time, len(timestamps))
	for i, ts := range timestamps {
		y, m, d := time.Unix(ts, 0).In(loc).Date()
		days[i] = time.Date(y, m, d, 0, 0, 0, 0, loc)
	}

	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })
	slices.Reverse(days)

	out := make([]string, len(days))
	for i, day := range days {
		out[i] = day.Format(DateLayout)
	}
	return out
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
