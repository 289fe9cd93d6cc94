package api

import (
	"context"
	"net/http"

	"github.com/okian/squadrate/internal/domain/types"
)

// AllTimeDependencies defines the interface for the all-time summary.
type AllTimeDependencies interface {
	AllTimeSummary(ctx context.Context) (types.AllTimeSummary, error)
}

// AllTimeHandler handles all-time summary requests.
type AllTimeHandler struct {
	deps AllTimeDependencies
}

// NewAllTimeHandler creates a new all-time handler.
func NewAllTimeHandler(deps AllTimeDependencies) *AllTimeHandler {
	return &AllTimeHandler{deps: deps}
}

// HandleGetAllTime handles GET /api/summary-all requests.
func (h *AllTimeHandler) HandleGetAllTime(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sum, err := h.deps.AllTimeSummary(r.Context())
	if err != nil {
		writeServiceError(w, "api.summary_all", err)
		return
	}
	writeJSON(w, http.StatusOK, allTimeResponse{OK: true, Rows: sum.Players})
}
