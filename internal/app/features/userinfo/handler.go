// internal/app/features/userinfo/handler.go
package userinfo

import (
	"context"
	"encoding/json"
	"net/http"

	userstore "github.com/quangoinc/qscore/internal/app/store/users"
	"github.com/quangoinc/qscore/internal/app/system/auth"
	"github.com/quangoinc/qscore/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler serves the signed-in member's identity and profile.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger
}

// NewHandler creates a new userinfo handler.
func NewHandler(users *userstore.Store, logger *zap.Logger) *Handler {
	return &Handler{Users: users, Log: logger}
}

// ServeUserInfo returns JSON with the current member's authentication
// status, identity, and avatar profile.
//
// Response format:
//
//	{ "isAuthenticated": bool, "email": "...", "name": "...",
//	  "color": "...", "face": 0 }
func (h *Handler) ServeUserInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	user, ok := auth.CurrentUser(r)
	if !ok {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"isAuthenticated": false,
			"email":           "",
			"name":            "",
		})
		return
	}

	resp := map[string]any{
		"isAuthenticated": true,
		"email":           user.Email,
		"name":            user.Name,
	}

	// Profile enrichment is best-effort; identity alone is enough for
	// the client to render.
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()
	if m, err := h.Users.GetByID(ctx, user.Email); err == nil {
		resp["name"] = m.Name
		resp["color"] = m.Color
		resp["face"] = m.Face
	} else {
		h.Log.Debug("userinfo: member lookup failed", zap.Error(err), zap.String("email", user.Email))
	}

	_ = json.NewEncoder(w).Encode(resp)
}
