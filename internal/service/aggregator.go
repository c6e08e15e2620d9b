package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/veritasnetwork/veritas-core/internal/domain"
	"github.com/veritasnetwork/veritas-core/internal/fixedpoint"
)

// SubmitResult is what a committed submission returns to the caller.
type SubmitResult struct {
	NewAggregate uint64 `json:"new_aggregate"`
	NewScore     uint64 `json:"new_score"`
	Sequence     uint64 `json:"sequence"`
}

// AggregatorService is the single entry point for submitting a belief. It
// holds references (not ownership) to the three leaf components and mutates
// them only through their declared operations. Each Submit runs the stage
// sequence validating → weight lookup → aggregating → scoring → recording
// synchronously; the host executor's journal discards every write when any
// stage fails, so the sequence is all-or-nothing and no stage is retried.
type AggregatorService struct {
	registry *RegistryService
	beliefs  *BeliefService
	ledger   *LedgerService
	archiver *ArchiverService
	logger   *zap.Logger
}

func NewAggregatorService(
	registry *RegistryService,
	beliefs *BeliefService,
	ledger *LedgerService,
	logger *zap.Logger,
) *AggregatorService {
	return &AggregatorService{
		registry: registry,
		beliefs:  beliefs,
		ledger:   ledger,
		logger:   logger,
	}
}

// SetArchiver wires the optional off-chain archive mirror.
func (s *AggregatorService) SetArchiver(a *ArchiverService) {
	s.archiver = a
}

// Submit processes one validated, ordered submission. Must be called inside
// the host executor's transaction scope with its logical height.
func (s *AggregatorService) Submit(
	agent domain.Address,
	beliefID domain.BeliefID,
	value uint64,
	height uint64,
) (SubmitResult, error) {
	if value > fixedpoint.Scale {
		return SubmitResult{}, fmt.Errorf("validating: %w", ErrValueOutOfRange)
	}

	weight, err := s.registry.Weight(agent)
	if err != nil {
		if err == ErrAgentNotFound {
			return SubmitResult{}, fmt.Errorf("weight lookup: %w", ErrUnknownAgent)
		}
		return SubmitResult{}, fmt.Errorf("weight lookup: %w", err)
	}

	newAggregate, err := s.beliefs.UpdateAggregate(beliefID, value, weight)
	if err != nil {
		if err == ErrBeliefNotFound {
			return SubmitResult{}, fmt.Errorf("aggregating: %w", ErrUnknownBelief)
		}
		return SubmitResult{}, fmt.Errorf("aggregating: %w", err)
	}

	// Closer to consensus earns more: the delta is maximal at distance 0 and
	// falls to 0 at maximal disagreement.
	delta := fixedpoint.ScoreDelta(fixedpoint.Distance(value, newAggregate))
	if err := s.registry.UpdateScore(agent, delta); err != nil {
		return SubmitResult{}, fmt.Errorf("scoring: %w", err)
	}

	sub := domain.Submission{
		Agent:     agent,
		BeliefID:  beliefID,
		Value:     value,
		Weight:    weight,
		Timestamp: height,
	}
	seq := s.ledger.Append(sub)

	updated, err := s.registry.Get(agent)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("recording: %w", err)
	}

	if s.archiver != nil {
		belief, _ := s.beliefs.Get(beliefID)
		s.archiver.Enqueue(seq, sub, belief)
	}

	s.logger.Debug("submission committed",
		zap.String("agent", agent.String()),
		zap.Uint64("belief_id", uint64(beliefID)),
		zap.Uint64("value", value),
		zap.Uint64("weight", weight),
		zap.Uint64("new_aggregate", newAggregate),
		zap.Uint64("score_delta", delta),
		zap.Uint64("seq", seq),
	)

	return SubmitResult{
		NewAggregate: newAggregate,
		NewScore:     updated.Score,
		Sequence:     seq,
	}, nil
}
