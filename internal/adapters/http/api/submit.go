package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/squadrate/internal/domain/types"
)

// maxSubmitBody bounds a submission payload.
const maxSubmitBody = 1 << 20

// SubmitDependencies defines the interface for storing submissions.
type SubmitDependencies interface {
	Submit(ctx context.Context, sub types.Submission) (int, error)
}

// SubmitHandler handles submission requests.
type SubmitHandler struct {
	deps SubmitDependencies
}

// NewSubmitHandler creates a new submit handler.
func NewSubmitHandler(deps SubmitDependencies) *SubmitHandler {
	return &SubmitHandler{deps: deps}
}

// HandlePostSubmit handles POST /api/submit requests.
func (h *SubmitHandler) HandlePostSubmit(w http.ResponseWriter, r *http.Request) {
	const op = "api.submit"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var sub types.Submission
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubmitBody)).Decode(&sub); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if len(sub.EvalRows) == 0 || sub.SelfRow == nil {
		writeError(w, http.StatusBadRequest, "invalid_payload",
			WrapKind(op, ErrBadRequest, errors.New("invalid payload")))
		return
	}
	n, err := h.deps.Submit(r.Context(), sub)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{OK: true, Inserted: n})
}
