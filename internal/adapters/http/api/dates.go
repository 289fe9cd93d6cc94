package api

import (
	"context"
	"net/http"
)

// DatesDependencies defines the interface for listing match dates.
type DatesDependencies interface {
	Dates(ctx context.Context) ([]string, error)
}

// DatesHandler handles date listing requests.
type DatesHandler struct {
	deps DatesDependencies
}

// NewDatesHandler creates a new dates handler.
func NewDatesHandler(deps DatesDependencies) *DatesHandler {
	return &DatesHandler{deps: deps}
}

// HandleGetDates handles GET /api/dates requests.
func (h *DatesHandler) HandleGetDates(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	dates, err := h.deps.Dates(r.Context())
	if err != nil {
		writeServiceError(w, "api.dates", err)
		return
	}
	writeJSON(w, http.StatusOK, datesResponse{OK: true, Dates: dates})
}
