// internal/app/features/leaderboard/handler.go
package leaderboard

import (
	"context"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	uierrors "github.com/quangoinc/qscore/internal/app/features/errors"
	entrystore "github.com/quangoinc/qscore/internal/app/store/entries"
	userstore "github.com/quangoinc/qscore/internal/app/store/users"
	"github.com/quangoinc/qscore/internal/app/system/timeouts"
	"github.com/quangoinc/qscore/internal/domain/catalog"
	"github.com/quangoinc/qscore/internal/domain/models"
	"github.com/quangoinc/qscore/internal/domain/points"
	"go.uber.org/zap"
)

// Handler computes leaderboard views from the entry log. Nothing here is
// persisted; every request aggregates the current snapshot.
type Handler struct {
	Entries *entrystore.Store
	Users   *userstore.Store
	Loc     *time.Location
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger

	// now is swappable for tests.
	now func() time.Time
}

func NewHandler(entries *entrystore.Store, users *userstore.Store, loc *time.Location, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		Entries: entries,
		Users:   users,
		Loc:     loc,
		ErrLog:  errLog,
		Log:     logger,
		now:     time.Now,
	}
}

// leaderboardResponse is the payload of GET /api/leaderboard.
type leaderboardResponse struct {
	Period string               `json:"period"`
	Totals []points.MemberTotal `json:"totals"`
	Series []points.SeriesPoint `json:"series"`
	Leader *points.MemberTotal  `json:"leader,omitempty"`
}

// ServeLeaderboard handles GET /api/leaderboard?period=week|all.
// week (the default) ranks the current week, Sunday to now, with a
// per-day cumulative series; all ranks every entry ever with a
// per-week series.
func (h *Handler) ServeLeaderboard(w http.ResponseWriter, r *http.Request) {
	period := query.Get(r, "period")
	if period == "" {
		period = "week"
	}
	if period != "week" && period != "all" {
		uierrors.RenderError(w, http.StatusBadRequest, "period must be week or all")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	entries, members, err := h.load(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load leaderboard data failed", err, "A database error occurred.")
		return
	}

	now := h.now().In(h.Loc)
	tasks := catalog.Tasks()

	var resp leaderboardResponse
	resp.Period = period
	switch period {
	case "week":
		resp.Totals = points.Totals(entries, tasks, members, points.WindowWeek(points.WeekStart(now)))
		resp.Series = points.WeekSeries(entries, tasks, members, now)
	case "all":
		resp.Totals = points.Totals(entries, tasks, members, points.WindowAll)
		resp.Series = points.AllTimeSeries(entries, tasks, members, now)
	}
	if lead, ok := points.Leader(resp.Totals); ok {
		resp.Leader = &lead
	}

	uierrors.RenderJSON(w, http.StatusOK, resp)
}

// lastWeekResponse is the payload of GET /api/leaderboard/last-week.
type lastWeekResponse struct {
	Winner *points.MemberTotal `json:"winner,omitempty"`
}

// ServeLastWeek handles GET /api/leaderboard/last-week: the strict
// winner of the previous calendar week, or null when the week was a
// tie or empty.
func (h *Handler) ServeLastWeek(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	entries, members, err := h.load(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load last-week data failed", err, "A database error occurred.")
		return
	}

	now := h.now().In(h.Loc)

	var resp lastWeekResponse
	if winner, ok := points.LastWeekWinner(entries, catalog.Tasks(), members, now); ok {
		resp.Winner = &winner
	}

	uierrors.RenderJSON(w, http.StatusOK, resp)
}

func (h *Handler) load(ctx context.Context) ([]models.PointEntry, []models.TeamMember, error) {
	entries, err := h.Entries.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	members, err := h.Users.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	return entries, members, nil
}
