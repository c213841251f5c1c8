// internal/app/features/logout/routes.go
package logout

import "github.com/go-chi/chi/v5"

// MountRoutes registers POST /logout. Public: signing out an already
// signed-out session is harmless.
func MountRoutes(r chi.Router, h *Handler) {
	r.Post("/logout", h.ServeLogout)
}
