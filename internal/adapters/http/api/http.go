// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/squadrate/internal/app"
	"github.com/okian/squadrate/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	SummaryDependencies
	AllTimeDependencies
	DatesDependencies
	SubmitDependencies
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	summaryHandler *SummaryHandler
	allTimeHandler *AllTimeHandler
	datesHandler   *DatesHandler
	submitHandler  *SubmitHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		summaryHandler: NewSummaryHandler(deps),
		allTimeHandler: NewAllTimeHandler(deps),
		datesHandler:   NewDatesHandler(deps),
		submitHandler:  NewSubmitHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/summary", MetricsMiddleware(s.summaryHandler.HandleGetSummary, "summary"))
	mux.HandleFunc("/api/summary-all", MetricsMiddleware(s.allTimeHandler.HandleGetAllTime, "summary_all"))
	mux.HandleFunc("/api/dates", MetricsMiddleware(s.datesHandler.HandleGetDates, "dates"))
	mux.HandleFunc("/api/submit", MetricsMiddleware(s.submitHandler.HandlePostSubmit, "submit"))
}

type dateSummaryResponse struct {
	OK bool `json:"ok"`
	types.DateSummary
}

type allTimeResponse struct {
	OK   bool                     `json:"ok"`
	Rows []types.AllTimePlayerRow `json:"rows"`
}

type datesResponse struct {
	OK    bool     `json:"ok"`
	Dates []string `json:"dates"`
}

type submitResponse struct {
	OK       bool `json:"ok"`
	Inserted int  `json:"inserted"`
}

type errorResponse struct {
	OK    bool   `json:"ok"`
	Code  string `json:"code"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{OK: false, Code: code, Error: msg})
}

// writeServiceError maps service error kinds to a status code.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, service.ErrMissingDate), errors.Is(err, service.ErrInvalidSubmission):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
