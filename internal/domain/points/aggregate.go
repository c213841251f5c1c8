// internal/domain/points/aggregate.go

// Package points derives leaderboard data from the raw entry log. All
// functions are pure: they take a snapshot of entries plus reference
// data and never mutate either. Dangling references degrade instead of
// failing: an unknown task scores zero unless the entry carries custom
// points, and an unknown member becomes an "Unknown" placeholder.
package points

import (
	"sort"
	"time"

	"github.com/quangoinc/qscore/internal/domain/models"
)

// MemberTotal is a member's aggregated effective points inside one time
// window. Ephemeral: recomputed on every read, never persisted.
type MemberTotal struct {
	Member models.TeamMember `json:"member"`
	Points int               `json:"points"`
}

// UnknownMemberName labels totals for entries whose member is missing
// from the directory.
const UnknownMemberName = "Unknown"

// TaskIndex builds an ID lookup over the task catalog.
func TaskIndex(tasks []models.Task) map[string]models.Task {
	idx := make(map[string]models.Task, len(tasks))
	for _, t := range tasks {
		idx[t.ID] = t
	}
	return idx
}

// Effective returns the entry's effective points: resolved task points
// (or the entry's custom points when the task is not in the catalog)
// times quantity, plus the daily bonus if the entry earned one.
func Effective(e models.PointEntry, tasks map[string]models.Task) int {
	pts := 0
	if t, ok := tasks[e.TaskID]; ok {
		pts = t.Points
	} else if e.CustomTaskPoints > 0 {
		pts = e.CustomTaskPoints
	}
	total := pts * e.Quantity
	if e.DailyBonus {
		total += models.DailyBonusPoints
	}
	return total
}

// Totals sums effective points per member over the entries whose
// timestamp satisfies within, and returns a ranked list: descending by
// points, ties keeping directory order (stable sort). Every directory
// member appears even with zero points; members referenced by an entry
// but missing from the directory are appended as Unknown placeholders.
func Totals(entries []models.PointEntry, tasks []models.Task, members []models.TeamMember, within func(time.Time) bool) []MemberTotal {
	idx := TaskIndex(tasks)

	sums := make(map[string]int, len(members))
	var orphans []string // entry member IDs not in the directory, first-seen order
	known := make(map[string]bool, len(members))
	for _, m := range members {
		known[m.ID] = true
	}

	for _, e := range entries {
		if within != nil && !within(e.Timestamp) {
			continue
		}
		if !known[e.MemberID] {
			if _, seen := sums[e.MemberID]; !seen {
				orphans = append(orphans, e.MemberID)
			}
		}
		sums[e.MemberID] += Effective(e, idx)
	}

	totals := make([]MemberTotal, 0, len(members)+len(orphans))
	for _, m := range members {
		totals = append(totals, MemberTotal{Member: m, Points: sums[m.ID]})
	}
	for _, id := range orphans {
		totals = append(totals, MemberTotal{
			Member: models.TeamMember{ID: id, Name: UnknownMemberName},
			Points: sums[id],
		})
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Points > totals[j].Points
	})
	return totals
}

// WindowAll is a window predicate that admits every entry ("all time").
func WindowAll(time.Time) bool { return true }

// WindowWeek returns a predicate admitting entries in the week starting
// at weekStart.
func WindowWeek(weekStart time.Time) func(time.Time) bool {
	return func(t time.Time) bool { return InWeek(t, weekStart) }
}
