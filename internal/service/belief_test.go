package service

import (
	"testing"

	"github.com/veritasnetwork/veritas-core/internal/domain"
	"github.com/veritasnetwork/veritas-core/internal/fixedpoint"
	"github.com/veritasnetwork/veritas-core/internal/state"
)

func setupBeliefs() *BeliefService {
	j := state.NewJournal()
	return NewBeliefService(
		state.NewMap[domain.BeliefID, domain.Belief](j),
		state.NewValue[domain.BeliefID](j),
	)
}

func TestBelief_Create(t *testing.T) {
	svc := setupBeliefs()

	id, err := svc.Create("Will ETH exceed $5000 by Dec 2026?", 5000)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if id != 1 {
		t.Fatalf("expected first id 1, got %d", id)
	}

	b, err := svc.Get(id)
	if err != nil {
		t.Fatalf("expected belief, got %v", err)
	}
	if b.Aggregate != 5000 || b.TotalWeight != 0 || b.SubmissionCount != 0 {
		t.Fatalf("unexpected initial belief %+v", b)
	}
}

func TestBelief_Create_SequentialIDs(t *testing.T) {
	svc := setupBeliefs()

	for want := domain.BeliefID(1); want <= 3; want++ {
		id, err := svc.Create("q", 0)
		if err != nil {
			t.Fatalf("create %d: %v", want, err)
		}
		if id != want {
			t.Fatalf("expected id %d, got %d", want, id)
		}
	}
}

func TestBelief_Create_InvalidValue(t *testing.T) {
	svc := setupBeliefs()
	if _, err := svc.Create("q", fixedpoint.Scale+1); err != ErrValueOutOfRange {
		t.Fatalf("expected ErrValueOutOfRange, got %v", err)
	}
}

func TestBelief_Create_EmptyQuestion(t *testing.T) {
	svc := setupBeliefs()
	if _, err := svc.Create("", 5000); err != ErrEmptyQuestion {
		t.Fatalf("expected ErrEmptyQuestion, got %v", err)
	}
}

func TestBelief_Get_NotFound(t *testing.T) {
	svc := setupBeliefs()
	if _, err := svc.Get(42); err != ErrBeliefNotFound {
		t.Fatalf("expected ErrBeliefNotFound, got %v", err)
	}
}

func TestBelief_UpdateAggregate(t *testing.T) {
	svc := setupBeliefs()
	id, _ := svc.Create("q", 5000)

	agg, err := svc.UpdateAggregate(id, 7000, 100000)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if agg != 7000 {
		t.Fatalf("expected aggregate 7000, got %d", agg)
	}

	agg, err = svc.UpdateAggregate(id, 6000, 50000)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if agg != 6666 {
		t.Fatalf("expected aggregate 6666, got %d", agg)
	}

	b, _ := svc.Get(id)
	if b.TotalWeight != 150000 {
		t.Fatalf("expected total weight 150000, got %d", b.TotalWeight)
	}
	if b.SubmissionCount != 2 {
		t.Fatalf("expected submission count 2, got %d", b.SubmissionCount)
	}
}

func TestBelief_UpdateAggregate_TotalWeightMonotone(t *testing.T) {
	svc := setupBeliefs()
	id, _ := svc.Create("q", 0)

	var prev uint64
	weights := []uint64{10, 0, 500, 1, 0, 99999}
	for i, w := range weights {
		if _, err := svc.UpdateAggregate(id, 5000, w); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		b, _ := svc.Get(id)
		if b.TotalWeight < prev {
			t.Fatalf("total weight decreased at step %d: %d < %d", i, b.TotalWeight, prev)
		}
		prev = b.TotalWeight
	}
	if prev != 100510 {
		t.Fatalf("expected total weight 100510, got %d", prev)
	}
}

func TestBelief_UpdateAggregate_ZeroWeightLeavesAggregate(t *testing.T) {
	svc := setupBeliefs()
	id, _ := svc.Create("q", 4200)

	agg, err := svc.UpdateAggregate(id, 9999, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if agg != 4200 {
		t.Fatalf("expected aggregate unchanged at 4200, got %d", agg)
	}
}

func TestBelief_UpdateAggregate_NotFound(t *testing.T) {
	svc := setupBeliefs()
	if _, err := svc.UpdateAggregate(7, 5000, 10); err != ErrBeliefNotFound {
		t.Fatalf("expected ErrBeliefNotFound, got %v", err)
	}
}

func TestBelief_UpdateAggregate_InvalidValue(t *testing.T) {
	svc := setupBeliefs()
	id, _ := svc.Create("q", 0)
	if _, err := svc.UpdateAggregate(id, fixedpoint.Scale+1, 10); err != ErrValueOutOfRange {
		t.Fatalf("expected ErrValueOutOfRange, got %v", err)
	}
}
