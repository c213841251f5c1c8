// internal/app/features/members/handler.go
package members

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	uierrors "github.com/quangoinc/qscore/internal/app/features/errors"
	userstore "github.com/quangoinc/qscore/internal/app/store/users"
	"github.com/quangoinc/qscore/internal/app/system/auth"
	"github.com/quangoinc/qscore/internal/app/system/realtime"
	"github.com/quangoinc/qscore/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the member directory and profile updates.
type Handler struct {
	Users  *userstore.Store
	Hub    *realtime.Hub
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(users *userstore.Store, hub *realtime.Hub, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  users,
		Hub:    hub,
		ErrLog: errLog,
		Log:    logger,
	}
}

// ServeList handles GET /api/members: the full directory in join order.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := h.Users.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list members failed", err, "A database error occurred.")
		return
	}

	uierrors.RenderJSON(w, http.StatusOK, map[string]any{"members": members})
}

// profileRequest is the body of POST /api/profile.
type profileRequest struct {
	Color string `json:"color"`
	Face  int    `json:"face"`
}

// ServeUpdateProfile handles POST /api/profile: the signed-in member
// changes their own avatar color and face.
func (h *Handler) ServeUpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderError(w, http.StatusUnauthorized, "not signed in")
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode profile body failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	m, err := h.Users.UpdateProfile(ctx, user.Email, req.Color, req.Face)
	if err != nil {
		switch {
		case errors.Is(err, userstore.ErrBadColor), errors.Is(err, userstore.ErrBadFace):
			uierrors.RenderError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, mongo.ErrNoDocuments):
			h.ErrLog.LogNotFound(w, "Member not found.")
		default:
			h.ErrLog.LogServerError(w, r, "update profile failed", err, "A database error occurred.")
		}
		return
	}

	h.Log.Info("profile updated",
		zap.String("email", m.ID),
		zap.String("color", m.Color),
		zap.Int("face", m.Face))

	if h.Hub != nil {
		h.Hub.MembersChanged()
	}

	uierrors.RenderJSON(w, http.StatusOK, m)
}
