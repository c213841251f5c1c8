// internal/app/features/leaderboard/routes.go
package leaderboard

import (
	"github.com/go-chi/chi/v5"
	"github.com/quangoinc/qscore/internal/app/system/auth"
)

// MountRoutes registers the leaderboard endpoints.
func MountRoutes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/api/leaderboard", h.ServeLeaderboard)
		pr.Get("/api/leaderboard/last-week", h.ServeLastWeek)
	})
}
