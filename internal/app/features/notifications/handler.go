// internal/app/features/notifications/handler.go
package notifications

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	uierrors "github.com/quangoinc/qscore/internal/app/features/errors"
	"github.com/quangoinc/qscore/internal/app/system/auth"
	"github.com/quangoinc/qscore/internal/app/system/notify"
	"github.com/quangoinc/qscore/internal/app/system/realtime"
	"github.com/quangoinc/qscore/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Handler exposes the in-memory notification center over HTTP.
type Handler struct {
	Center *notify.Center
	Hub    *realtime.Hub
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(center *notify.Center, hub *realtime.Hub, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Center: center,
		Hub:    hub,
		ErrLog: errLog,
		Log:    logger,
	}
}

// ServeList handles GET /api/notifications: global notifications plus
// the caller's own, oldest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderError(w, http.StatusUnauthorized, "not signed in")
		return
	}

	active := h.Center.Active(user.Email)
	uierrors.RenderJSON(w, http.StatusOK, map[string]any{"notifications": active})
}

// ServeDismiss handles POST /api/notifications/{id}/dismiss. Dismissing
// an expired or unknown notification is a no-op, not an error; the
// client may race the expiry timer.
func (h *Handler) ServeDismiss(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if h.Center.Dismiss(id) {
		h.Log.Debug("notification dismissed", zap.String("notification_id", id))
	}
	uierrors.RenderJSON(w, http.StatusOK, map[string]any{"dismissed": true})
}

// ServeAct handles POST /api/notifications/{id}/act: run the
// notification's action (for an undo prompt, re-insert the deleted
// entry). Acting after expiry returns 404; the undo window is gone.
func (h *Handler) ServeAct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Center.Act(ctx, id); err != nil {
		if errors.Is(err, notify.ErrNotFound) {
			h.ErrLog.LogNotFound(w, "Notification expired or not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "notification action failed", err, "The action could not be completed.")
		return
	}

	if h.Hub != nil {
		h.Hub.EntriesChanged(ctx)
	}

	uierrors.RenderJSON(w, http.StatusOK, map[string]any{"acted": true})
}
