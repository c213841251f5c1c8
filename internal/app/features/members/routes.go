// internal/app/features/members/routes.go
package members

import (
	"github.com/go-chi/chi/v5"
	"github.com/quangoinc/qscore/internal/app/system/auth"
)

// MountRoutes registers the member directory and profile endpoints.
func MountRoutes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/api/members", h.ServeList)
		pr.Post("/api/profile", h.ServeUpdateProfile)
	})
}
