// internal/domain/points/dates.go
package points

import "time"

// Week boundaries start on Sunday at local midnight. The same boundary
// is used everywhere points are windowed: weekly sums, chart series, and
// the last-week winner. Daylight-saving transitions are handled by
// AddDate, so a "week" is seven calendar days, not a flat 168 hours.

// WeekStart returns Sunday 00:00:00 of the week containing t, in t's
// location.
func WeekStart(t time.Time) time.Time {
	day := DayStart(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// LastWeekStart returns the start of the week immediately preceding the
// week containing t.
func LastWeekStart(t time.Time) time.Time {
	return WeekStart(t).AddDate(0, 0, -7)
}

// InWeek reports whether t falls inside the week starting at weekStart:
// weekStart <= t < weekStart+7d.
func InWeek(t, weekStart time.Time) bool {
	end := weekStart.AddDate(0, 0, 7)
	return !t.Before(weekStart) && t.Before(end)
}

// DayStart returns local midnight of the calendar day containing t.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd returns the first instant of the next calendar day. Day windows
// are [DayStart, DayEnd) with an exclusive upper bound.
func DayEnd(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1)
}

// WeekDays returns the seven day-start times (Sunday through Saturday)
// of the week containing t.
func WeekDays(t time.Time) []time.Time {
	start := WeekStart(t)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}
