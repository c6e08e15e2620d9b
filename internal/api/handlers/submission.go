package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/veritasnetwork/veritas-core/internal/api/middleware"
	"github.com/veritasnetwork/veritas-core/internal/domain"
	"github.com/veritasnetwork/veritas-core/internal/fixedpoint"
	"github.com/veritasnetwork/veritas-core/internal/service"
	"github.com/veritasnetwork/veritas-core/internal/state"
)

type SubmissionHandler struct {
	aggregator *service.AggregatorService
	exec       *state.Executor
}

func NewSubmissionHandler(aggregator *service.AggregatorService, exec *state.Executor) *SubmissionHandler {
	return &SubmissionHandler{aggregator: aggregator, exec: exec}
}

type submitBeliefRequest struct {
	BeliefID domain.BeliefID `json:"belief_id"`
	Value    uint64          `json:"value"`
}

func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req submitBeliefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var res service.SubmitResult
	err := h.exec.Execute(func(height uint64) error {
		var err error
		res, err = h.aggregator.Submit(caller, req.BeliefID, req.Value, height)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValueOutOfRange):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrAgentNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrBeliefNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, fixedpoint.ErrOverflow):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to submit belief")
		}
		return
	}

	writeJSON(w, http.StatusOK, res)
}
