// internal/app/features/logout/handler.go
package logout

import (
	"net/http"
	"strings"

	"github.com/quangoinc/qscore/internal/app/system/auth"
	"go.uber.org/zap"
)

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
}

func NewHandler(sessionMgr *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
	}
}

// ServeLogout handles POST /logout.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.SessionMgr.ClearSession(w, r); err != nil {
		// The deletion cookie still went out; nothing more to do.
		h.Log.Warn("logout: clear session", zap.Error(err))
	}

	if user, ok := auth.CurrentUser(r); ok {
		h.Log.Info("member signed out", zap.String("email", user.Email))
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
