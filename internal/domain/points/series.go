// internal/domain/points/series.go
package points

import (
	"time"

	"github.com/quangoinc/qscore/internal/domain/models"
)

// SeriesPoint is one x-axis position of the leaderboard chart: a label
// plus each member's cumulative effective points as of that position.
type SeriesPoint struct {
	Label  string         `json:"label"`
	Totals map[string]int `json:"totals"` // member ID -> cumulative points
}

// maxSeriesWeeks caps the all-time chart to the most recent weeks so the
// x-axis stays readable.
const maxSeriesWeeks = 12

// WeekSeries produces the current week's chart: one point per day from
// Sunday up to and including today, with each member's cumulative total
// through the end of that day. Only entries inside the current week
// count.
func WeekSeries(entries []models.PointEntry, tasks []models.Task, members []models.TeamMember, now time.Time) []SeriesPoint {
	idx := TaskIndex(tasks)
	weekStart := WeekStart(now)

	var series []SeriesPoint
	for _, day := range WeekDays(now) {
		if day.After(now) {
			break
		}
		dayEnd := DayEnd(day)
		pt := SeriesPoint{
			Label:  day.Format("Mon"),
			Totals: make(map[string]int, len(members)),
		}
		for _, m := range members {
			sum := 0
			for _, e := range entries {
				if e.MemberID != m.ID || !InWeek(e.Timestamp, weekStart) {
					continue
				}
				if e.Timestamp.Before(dayEnd) {
					sum += Effective(e, idx)
				}
			}
			pt.Totals[m.ID] = sum
		}
		series = append(series, pt)
	}
	return series
}

// AllTimeSeries produces the all-time chart: one point per calendar week
// from the first entry through now, capped to the most recent 12 weeks.
// Each member's value is their cumulative total over all entries before
// that week's end boundary (exclusive).
func AllTimeSeries(entries []models.PointEntry, tasks []models.Task, members []models.TeamMember, now time.Time) []SeriesPoint {
	if len(entries) == 0 {
		return nil
	}
	idx := TaskIndex(tasks)

	first := entries[0].Timestamp
	for _, e := range entries[1:] {
		if e.Timestamp.Before(first) {
			first = e.Timestamp
		}
	}

	var weeks []time.Time
	for ws := WeekStart(first.In(now.Location())); !ws.After(now); ws = ws.AddDate(0, 0, 7) {
		weeks = append(weeks, ws)
	}
	if len(weeks) > maxSeriesWeeks {
		weeks = weeks[len(weeks)-maxSeriesWeeks:]
	}

	series := make([]SeriesPoint, 0, len(weeks))
	for _, ws := range weeks {
		weekEnd := ws.AddDate(0, 0, 7)
		pt := SeriesPoint{
			Label:  ws.Format("Jan 2"),
			Totals: make(map[string]int, len(members)),
		}
		for _, m := range members {
			sum := 0
			for _, e := range entries {
				if e.MemberID == m.ID && e.Timestamp.Before(weekEnd) {
					sum += Effective(e, idx)
				}
			}
			pt.Totals[m.ID] = sum
		}
		series = append(series, pt)
	}
	return series
}
