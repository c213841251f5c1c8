// internal/domain/points/leader.go
package points

import (
	"time"

	"github.com/quangoinc/qscore/internal/domain/models"
)

// Leader returns the member with the strictly greatest total. Leadership
// requires a strict maximum above zero: on a tie for first place, or
// when the top total is zero, no leader is declared. The input does not
// need to be sorted.
func Leader(totals []MemberTotal) (MemberTotal, bool) {
	var lead MemberTotal
	unique := false
	for _, t := range totals {
		switch {
		case t.Points > lead.Points:
			lead = t
			unique = true
		case t.Points > 0 && t.Points == lead.Points:
			unique = false
		}
	}
	if lead.Points <= 0 || !unique {
		return MemberTotal{}, false
	}
	return lead, true
}

// LastWeekWinner returns the leader of the 7-day window immediately
// preceding the current week (relative to now). Same strict-maximum rule
// as Leader; a tie means no winner.
func LastWeekWinner(entries []models.PointEntry, tasks []models.Task, members []models.TeamMember, now time.Time) (MemberTotal, bool) {
	totals := Totals(entries, tasks, members, WindowWeek(LastWeekStart(now)))
	return Leader(totals)
}

// LeaderTracker watches successive aggregation results and reports when
// the leader changes. The zero value is ready to use: the first
// observation seeds the tracker without firing, so a page load never
// produces a false celebration.
//
// State is a single previous-leader ID, mutated only here. Construct one
// per watching context and feed it every recompute.
type LeaderTracker struct {
	prev   string
	seeded bool
}

// Observe records the current leader and reports whether a leader-change
// celebration should fire. It fires only when a previous leader was
// already recorded, the strict leader identity changed, and the new
// leader's total is above zero. The new leader is stored regardless.
func (t *LeaderTracker) Observe(totals []MemberTotal) (MemberTotal, bool) {
	lead, ok := Leader(totals)
	id := ""
	if ok {
		id = lead.Member.ID
	}

	if !t.seeded {
		t.seeded = true
		t.prev = id
		return MemberTotal{}, false
	}

	fired := ok && t.prev != "" && id != t.prev
	t.prev = id
	if !fired {
		return MemberTotal{}, false
	}
	return lead, true
}

// PrevLeader exposes the stored previous-leader ID, empty when none.
func (t *LeaderTracker) PrevLeader() string { return t.prev }
