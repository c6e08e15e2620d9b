package service

import (
	"github.com/veritasnetwork/veritas-core/internal/domain"
	"github.com/veritasnetwork/veritas-core/internal/fixedpoint"
	"github.com/veritasnetwork/veritas-core/internal/state"
)

// BeliefService owns belief records: creation, reads, and the weighted
// aggregate update the orchestrator drives.
type BeliefService struct {
	beliefs *state.Map[domain.BeliefID, domain.Belief]
	nextID  *state.Value[domain.BeliefID]
}

func NewBeliefService(
	beliefs *state.Map[domain.BeliefID, domain.Belief],
	nextID *state.Value[domain.BeliefID],
) *BeliefService {
	return &BeliefService{beliefs: beliefs, nextID: nextID}
}

// Create allocates the next sequential id (starting from 1) and stores the
// belief with the given starting aggregate and zero accumulated weight.
func (s *BeliefService) Create(question string, initialValue uint64) (domain.BeliefID, error) {
	if initialValue > fixedpoint.Scale {
		return 0, ErrValueOutOfRange
	}
	if question == "" {
		return 0, ErrEmptyQuestion
	}

	id, ok := s.nextID.Get()
	if !ok {
		id = 1
	}
	s.beliefs.Set(id, domain.Belief{
		ID:        id,
		Question:  question,
		Aggregate: initialValue,
	})
	s.nextID.Set(id + 1)
	return id, nil
}

// Get returns a read-only snapshot of the belief.
func (s *BeliefService) Get(id domain.BeliefID) (domain.Belief, error) {
	b, ok := s.beliefs.Get(id)
	if !ok {
		return domain.Belief{}, ErrBeliefNotFound
	}
	return b, nil
}

// UpdateAggregate folds one weighted submission into the belief's running
// aggregate and returns the new aggregate. System-only: the orchestrator is
// the sole caller, and invocations for the same belief must arrive in the
// host-imposed transaction order — the formula is order-dependent through
// total-weight accumulation.
func (s *BeliefService) UpdateAggregate(id domain.BeliefID, value, weight uint64) (uint64, error) {
	if value > fixedpoint.Scale {
		return 0, ErrValueOutOfRange
	}
	b, ok := s.beliefs.Get(id)
	if !ok {
		return 0, ErrBeliefNotFound
	}

	agg, total, err := fixedpoint.WeightedUpdate(b.Aggregate, b.TotalWeight, value, weight)
	if err != nil {
		return 0, err
	}
	b.Aggregate = agg
	b.TotalWeight = total
	b.SubmissionCount++
	s.beliefs.Set(id, b)
	return agg, nil
}
