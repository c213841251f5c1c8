// internal/app/features/notifications/routes.go
package notifications

import (
	"github.com/go-chi/chi/v5"
	"github.com/quangoinc/qscore/internal/app/system/auth"
)

// MountRoutes registers the notification endpoints.
func MountRoutes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/api/notifications", h.ServeList)
		pr.Post("/api/notifications/{id}/dismiss", h.ServeDismiss)
		pr.Post("/api/notifications/{id}/act", h.ServeAct)
	})
}
