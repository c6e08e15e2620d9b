package service

import (
	"github.com/veritasnetwork/veritas-core/internal/domain"
	"github.com/veritasnetwork/veritas-core/internal/fixedpoint"
	"github.com/veritasnetwork/veritas-core/internal/state"
)

// DefaultScore is the reputation every agent starts with.
const DefaultScore uint64 = 100

// RegistryService owns agent records: registration, stake adjustment, and
// the weight/score queries the orchestrator aggregates with. It performs no
// locking of its own; the host executor serializes all writers.
type RegistryService struct {
	agents *state.Map[domain.Address, domain.Agent]
}

func NewRegistryService(agents *state.Map[domain.Address, domain.Agent]) *RegistryService {
	return &RegistryService{agents: agents}
}

// Register creates the agent with the given stake and the default score.
// Registration is one-time; agents are never deleted.
func (s *RegistryService) Register(addr domain.Address, initialStake uint64) error {
	if _, ok := s.agents.Get(addr); ok {
		return ErrAlreadyRegistered
	}
	s.agents.Set(addr, domain.Agent{Stake: initialStake, Score: DefaultScore})
	return nil
}

// AddStake adds amount to the agent's stake. Overflow is an error, not a cap.
func (s *RegistryService) AddStake(addr domain.Address, amount uint64) error {
	agent, ok := s.agents.Get(addr)
	if !ok {
		return ErrAgentNotFound
	}
	stake, err := fixedpoint.CheckedAdd(agent.Stake, amount)
	if err != nil {
		return err
	}
	agent.Stake = stake
	s.agents.Set(addr, agent)
	return nil
}

// WithdrawStake subtracts amount from the agent's stake. Stake never goes
// below zero; an over-withdrawal is rejected outright.
func (s *RegistryService) WithdrawStake(addr domain.Address, amount uint64) error {
	agent, ok := s.agents.Get(addr)
	if !ok {
		return ErrAgentNotFound
	}
	if amount > agent.Stake {
		return ErrInsufficientStake
	}
	agent.Stake -= amount
	s.agents.Set(addr, agent)
	return nil
}

// Weight returns stake × score, the agent's influence on a submission.
func (s *RegistryService) Weight(addr domain.Address) (uint64, error) {
	agent, ok := s.agents.Get(addr)
	if !ok {
		return 0, ErrAgentNotFound
	}
	return fixedpoint.CheckedMul(agent.Stake, agent.Score)
}

// UpdateScore adds delta to the agent's reputation. System-only: called by
// the orchestrator, never routed to external callers.
func (s *RegistryService) UpdateScore(addr domain.Address, delta uint64) error {
	agent, ok := s.agents.Get(addr)
	if !ok {
		return ErrAgentNotFound
	}
	score, err := fixedpoint.CheckedAdd(agent.Score, delta)
	if err != nil {
		return err
	}
	agent.Score = score
	s.agents.Set(addr, agent)
	return nil
}

// Get returns a read-only snapshot of the agent record.
func (s *RegistryService) Get(addr domain.Address) (domain.Agent, error) {
	agent, ok := s.agents.Get(addr)
	if !ok {
		return domain.Agent{}, ErrAgentNotFound
	}
	return agent, nil
}
