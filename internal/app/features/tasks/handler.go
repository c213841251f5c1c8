// internal/app/features/tasks/handler.go
package tasks

import (
	"net/http"

	uierrors "github.com/quangoinc/qscore/internal/app/features/errors"
	"github.com/quangoinc/qscore/internal/domain/catalog"
)

// Handler serves the static task catalog.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// ServeList handles GET /api/tasks.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	uierrors.RenderJSON(w, http.StatusOK, map[string]any{
		"tasks": catalog.Tasks(),
	})
}
