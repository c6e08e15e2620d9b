package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/veritasnetwork/veritas-core/internal/domain"
	"github.com/veritasnetwork/veritas-core/internal/service"
	"github.com/veritasnetwork/veritas-core/internal/state"
)

type BeliefHandler struct {
	beliefs *service.BeliefService
	ledger  *service.LedgerService
	exec    *state.Executor
}

func NewBeliefHandler(beliefs *service.BeliefService, ledger *service.LedgerService, exec *state.Executor) *BeliefHandler {
	return &BeliefHandler{beliefs: beliefs, ledger: ledger, exec: exec}
}

type createBeliefRequest struct {
	Question     string `json:"question"`
	InitialValue uint64 `json:"initial_value"`
}

func (h *BeliefHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBeliefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var id domain.BeliefID
	err := h.exec.Execute(func(uint64) error {
		var err error
		id, err = h.beliefs.Create(req.Question, req.InitialValue)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValueOutOfRange), errors.Is(err, service.ErrEmptyQuestion):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create belief")
		}
		return
	}

	var belief domain.Belief
	h.exec.View(func() {
		belief, _ = h.beliefs.Get(id)
	})
	writeJSON(w, http.StatusCreated, belief)
}

func (h *BeliefHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseBeliefID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid belief id")
		return
	}

	var belief domain.Belief
	var lookupErr error
	h.exec.View(func() {
		belief, lookupErr = h.beliefs.Get(id)
	})
	if lookupErr != nil {
		writeError(w, http.StatusNotFound, lookupErr.Error())
		return
	}

	writeJSON(w, http.StatusOK, belief)
}

type submissionRecord struct {
	Sequence uint64 `json:"sequence"`
	domain.Submission
}

type submissionsResponse struct {
	BeliefID    domain.BeliefID    `json:"belief_id"`
	Submissions []submissionRecord `json:"submissions"`
}

func (h *BeliefHandler) Submissions(w http.ResponseWriter, r *http.Request) {
	id, err := parseBeliefID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid belief id")
		return
	}

	var lookupErr error
	records := []submissionRecord{}
	h.exec.View(func() {
		if _, lookupErr = h.beliefs.Get(id); lookupErr != nil {
			return
		}
		for seq, sub := range h.ledger.ByBelief(id) {
			records = append(records, submissionRecord{Sequence: seq, Submission: sub})
		}
	})
	if lookupErr != nil {
		writeError(w, http.StatusNotFound, lookupErr.Error())
		return
	}

	writeJSON(w, http.StatusOK, submissionsResponse{BeliefID: id, Submissions: records})
}

func parseBeliefID(r *http.Request) (domain.BeliefID, error) {
	raw, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	return domain.BeliefID(raw), err
}
