// Package sleepday maps wall-clock instants to logical journal dates.
// Early-morning activity belongs to the previous calendar day: an entry
// written at 01:30 is still "last night" from the user's point of view.
package sleepday

import "time"

// DefaultCutoffHour is the hour (local time) at which a new sleep-day
// begins. Instants before the cutoff are bucketed into the previous day.
const DefaultCutoffHour = 6

// Key returns the sleep-day date key (YYYY-MM-DD, local time) for the
// given instant. cutoffHour is clamped to [0,23]; values outside the
// range fall back to the default.
func Key(cutoffHour int, now time.Time) string {
	if cutoffHour < 0 || cutoffHour > 23 {
		cutoffHour = DefaultCutoffHour
	}
	d := now
	if d.Hour() < cutoffHour {
		d = d.AddDate(0, 0, -1)
	}
	return d.Format("2006-01-02")
}

// Today returns the sleep-day key for the current instant.
func Today(cutoffHour int) string {
	return Key(cutoffHour, time.Now())
}

// DaysAgo returns the calendar date key n days before the given instant,
// without applying the cutoff shift. Used to enumerate insight windows.
func DaysAgo(now time.Time, n int) string {
	return now.AddDate(0, 0, -n).Format("2006-01-02")
}

// LastN returns n consecutive date keys ending at the date of now,
// newest first, offset by offsetDaysAgo. LastN(now, 7, 0) is the
// trailing week; LastN(now, 7, 7) is the week before that.
func LastN(now time.Time, n, offsetDaysAgo int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, DaysAgo(now, i+offsetDaysAgo))
	}
	return out
}

// MonthDays enumerates every date key of the given month (1-12) in the
// local calendar, from day 1 to the month's last day inclusive.
func MonthDays(year int, month time.Month) []string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	last := first.AddDate(0, 1, -1).Day()
	out := make([]string, 0, last)
	for d := 1; d <= last; d++ {
		out = append(out, time.Date(year, month, d, 0, 0, 0, 0, time.Local).Format("2006-01-02"))
	}
	return out
}
