package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/squadrate/internal/domain/types"
)

// SummaryDependencies defines the interface for per-date summaries.
type SummaryDependencies interface {
	DateSummary(ctx context.Context, date string) (types.DateSummary, error)
}

// SummaryHandler handles per-date summary requests.
type SummaryHandler struct {
	deps SummaryDependencies
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(deps SummaryDependencies) *SummaryHandler {
	return &SummaryHandler{deps: deps}
}

// HandleGetSummary handles GET /api/summary?date=YYYY-MM-DD requests.
func (h *SummaryHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	const op = "api.summary"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		writeError(w, http.StatusBadRequest, "missing_date", NewKind(op, ErrBadRequest))
		return
	}
	sum, err := h.deps.DateSummary(r.Context(), date)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, dateSummaryResponse{OK: true, DateSummary: sum})
}
