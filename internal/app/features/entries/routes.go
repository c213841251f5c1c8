// internal/app/features/entries/routes.go
package entries

import (
	"github.com/go-chi/chi/v5"
	"github.com/quangoinc/qscore/internal/app/system/auth"
)

// MountRoutes registers the point ledger endpoints.
func MountRoutes(r chi.Router, h *Handler, sm *auth.SessionManager) {
	r.Group(func(pr chi.Router) {
		pr.Use(sm.RequireSignedIn)
		pr.Get("/api/entries", h.ServeList)
		pr.Post("/api/entries", h.ServeCreate)
		pr.Patch("/api/entries/{id}", h.ServeUpdate)
		pr.Delete("/api/entries/{id}", h.ServeDelete)
	})
}
