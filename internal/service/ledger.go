package service

import (
	"iter"

	"github.com/veritasnetwork/veritas-core/internal/domain"
	"github.com/veritasnetwork/veritas-core/internal/state"
)

// LedgerService owns the append-only submission history. Records are
// immutable once the appending transaction commits.
type LedgerService struct {
	submissions *state.List[domain.Submission]
}

func NewLedgerService(submissions *state.List[domain.Submission]) *LedgerService {
	return &LedgerService{submissions: submissions}
}

// Append stores the record and returns its sequence number.
func (s *LedgerService) Append(sub domain.Submission) uint64 {
	return s.submissions.Append(sub)
}

// ByBelief returns a lazy, restartable iterator over (sequence, record) for
// every submission to the given belief, in original append order. Pure read.
func (s *LedgerService) ByBelief(id domain.BeliefID) iter.Seq2[uint64, domain.Submission] {
	return func(yield func(uint64, domain.Submission) bool) {
		for seq, sub := range s.submissions.All() {
			if sub.BeliefID != id {
				continue
			}
			if !yield(seq, sub) {
				return
			}
		}
	}
}

// All iterates the full history in append order.
func (s *LedgerService) All() iter.Seq2[uint64, domain.Submission] {
	return s.submissions.All()
}

// Len returns the number of recorded submissions.
func (s *LedgerService) Len() uint64 {
	return s.submissions.Len()
}
