// internal/app/features/entries/handler.go
package entries

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	uierrors "github.com/quangoinc/qscore/internal/app/features/errors"
	entrystore "github.com/quangoinc/qscore/internal/app/store/entries"
	"github.com/quangoinc/qscore/internal/app/system/auth"
	"github.com/quangoinc/qscore/internal/app/system/realtime"
	"github.com/quangoinc/qscore/internal/app/system/timeouts"
	"github.com/quangoinc/qscore/internal/app/system/undo"
	"github.com/quangoinc/qscore/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the point ledger endpoints.
type Handler struct {
	Entries *entrystore.Store
	Undo    *undo.Coordinator
	Hub     *realtime.Hub
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(entries *entrystore.Store, und *undo.Coordinator, hub *realtime.Hub, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Entries: entries,
		Undo:    und,
		Hub:     hub,
		ErrLog:  errLog,
		Log:     logger,
	}
}

// ServeList handles GET /api/entries?limit=: the ledger, newest first,
// optionally capped to the most recent entries.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := query.Get(r, "limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			uierrors.RenderError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Entries.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list entries failed", err, "A database error occurred.")
		return
	}
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}

	uierrors.RenderJSON(w, http.StatusOK, map[string]any{"entries": list})
}

// createRequest is the body of POST /api/entries.
type createRequest struct {
	TaskID           string     `json:"task_id"`
	Quantity         int        `json:"quantity"`
	Timestamp        *time.Time `json:"timestamp"`
	CustomTaskName   string     `json:"custom_task_name"`
	CustomTaskPoints int        `json:"custom_task_points"`
}

// ServeCreate handles POST /api/entries: the signed-in member logs a
// completed task.
func (h *Handler) ServeCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderError(w, http.StatusUnauthorized, "not signed in")
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode entry body failed", err, "Invalid request body.")
		return
	}

	e := models.PointEntry{
		MemberID:         user.Email,
		TaskID:           req.TaskID,
		Quantity:         req.Quantity,
		CustomTaskName:   req.CustomTaskName,
		CustomTaskPoints: req.CustomTaskPoints,
	}
	if req.Timestamp != nil {
		e.Timestamp = *req.Timestamp
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	created, err := h.Entries.Insert(ctx, e)
	if err != nil {
		if isValidationErr(err) {
			uierrors.RenderError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.ErrLog.LogServerError(w, r, "insert entry failed", err, "A database error occurred.")
		return
	}

	h.Log.Info("entry logged",
		zap.String("member_id", created.MemberID),
		zap.String("task_id", created.TaskID),
		zap.Int("quantity", created.Quantity),
		zap.Bool("daily_bonus", created.DailyBonus))

	if h.Hub != nil {
		h.Hub.EntriesChanged(ctx)
	}

	uierrors.RenderJSON(w, http.StatusCreated, created)
}

// updateRequest is the body of PATCH /api/entries/{id}. Absent fields
// are left unchanged.
type updateRequest struct {
	TaskID           *string    `json:"task_id"`
	Quantity         *int       `json:"quantity"`
	Timestamp        *time.Time `json:"timestamp"`
	CustomTaskName   *string    `json:"custom_task_name"`
	CustomTaskPoints *int       `json:"custom_task_points"`
}

// ServeUpdate handles PATCH /api/entries/{id}: partial edit of the
// member's own entry.
func (h *Handler) ServeUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderError(w, http.StatusUnauthorized, "not signed in")
		return
	}

	id, ok := h.entryID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode entry update failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	updated, err := h.Entries.UpdateEntry(ctx, id, user.Email, entrystore.Update{
		TaskID:           req.TaskID,
		Quantity:         req.Quantity,
		Timestamp:        req.Timestamp,
		CustomTaskName:   req.CustomTaskName,
		CustomTaskPoints: req.CustomTaskPoints,
	})
	if err != nil {
		switch {
		case isValidationErr(err):
			uierrors.RenderError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, mongo.ErrNoDocuments):
			h.ErrLog.LogNotFound(w, "Entry not found.")
		default:
			h.ErrLog.LogServerError(w, r, "update entry failed", err, "A database error occurred.")
		}
		return
	}

	h.Log.Info("entry updated",
		zap.String("member_id", user.Email),
		zap.String("entry_id", id.Hex()))

	if h.Hub != nil {
		h.Hub.EntriesChanged(ctx)
	}

	uierrors.RenderJSON(w, http.StatusOK, updated)
}

// ServeDelete handles DELETE /api/entries/{id}: remove the member's
// own entry and open the undo window. The response carries the undo
// notification so the client can offer the revert.
func (h *Handler) ServeDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		uierrors.RenderError(w, http.StatusUnauthorized, "not signed in")
		return
	}

	id, ok := h.entryID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Undo.Delete(ctx, user.Email, id)
	if err != nil {
		switch {
		case errors.Is(err, undo.ErrForbidden):
			uierrors.RenderError(w, http.StatusForbidden, "entry belongs to another member")
		case errors.Is(err, mongo.ErrNoDocuments):
			h.ErrLog.LogNotFound(w, "Entry not found.")
		default:
			h.ErrLog.LogServerError(w, r, "delete entry failed", err, "A database error occurred.")
		}
		return
	}

	if h.Hub != nil {
		h.Hub.EntriesChanged(ctx)
	}

	uierrors.RenderJSON(w, http.StatusOK, map[string]any{"notification": n})
}

func (h *Handler) entryID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad entry id", err, "Invalid entry id.")
		return primitive.NilObjectID, false
	}
	return id, true
}

func isValidationErr(err error) bool {
	return errors.Is(err, entrystore.ErrBadQuantity) ||
		errors.Is(err, entrystore.ErrUnknownTask) ||
		errors.Is(err, entrystore.ErrCustomFields)
}
