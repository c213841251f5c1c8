// internal/app/features/events/routes.go
package events

import (
	"github.com/go-chi/chi/v5"
	"github.com/quangoinc/qscore/internal/app/system/auth"
)

// MountRoutes registers the SSE stream endpoint.
func MountRoutes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/api/events", h.ServeStream)
	})
}
