package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/veritasnetwork/veritas-core/internal/api/middleware"
	"github.com/veritasnetwork/veritas-core/internal/domain"
	"github.com/veritasnetwork/veritas-core/internal/fixedpoint"
	"github.com/veritasnetwork/veritas-core/internal/service"
	"github.com/veritasnetwork/veritas-core/internal/state"
)

type AgentHandler struct {
	registry *service.RegistryService
	exec     *state.Executor
}

func NewAgentHandler(registry *service.RegistryService, exec *state.Executor) *AgentHandler {
	return &AgentHandler{registry: registry, exec: exec}
}

type registerAgentRequest struct {
	InitialStake uint64 `json:"initial_stake"`
}

type agentResponse struct {
	Address string `json:"address"`
	Stake   uint64 `json:"stake"`
	Score   uint64 `json:"score"`
}

func (h *AgentHandler) Register(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req registerAgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.exec.Execute(func(uint64) error {
		return h.registry.Register(caller, req.InitialStake)
	})
	if err != nil {
		if errors.Is(err, service.ErrAlreadyRegistered) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to register agent")
		return
	}

	writeJSON(w, http.StatusCreated, agentResponse{
		Address: caller.String(),
		Stake:   req.InitialStake,
		Score:   service.DefaultScore,
	})
}

type stakeRequest struct {
	Amount uint64 `json:"amount"`
}

func (h *AgentHandler) AddStake(w http.ResponseWriter, r *http.Request) {
	h.stakeOp(w, r, h.registry.AddStake)
}

func (h *AgentHandler) WithdrawStake(w http.ResponseWriter, r *http.Request) {
	h.stakeOp(w, r, h.registry.WithdrawStake)
}

func (h *AgentHandler) stakeOp(w http.ResponseWriter, r *http.Request, op func(domain.Address, uint64) error) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req stakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.exec.Execute(func(uint64) error {
		return op(caller, req.Amount)
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAgentNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrInsufficientStake):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, fixedpoint.ErrOverflow):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to adjust stake")
		}
		return
	}

	var agent domain.Agent
	h.exec.View(func() {
		agent, _ = h.registry.Get(caller)
	})
	writeJSON(w, http.StatusOK, agentResponse{
		Address: caller.String(),
		Stake:   agent.Stake,
		Score:   agent.Score,
	})
}

func (h *AgentHandler) GetByAddress(w http.ResponseWriter, r *http.Request) {
	addr, err := domain.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid agent address")
		return
	}

	var agent domain.Agent
	var lookupErr error
	h.exec.View(func() {
		agent, lookupErr = h.registry.Get(addr)
	})
	if lookupErr != nil {
		writeError(w, http.StatusNotFound, lookupErr.Error())
		return
	}

	writeJSON(w, http.StatusOK, agentResponse{
		Address: addr.String(),
		Stake:   agent.Stake,
		Score:   agent.Score,
	})
}
