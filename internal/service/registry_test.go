package service

import (
	"errors"
	"math"
	"testing"

	"github.com/veritasnetwork/veritas-core/internal/domain"
	"github.com/veritasnetwork/veritas-core/internal/fixedpoint"
	"github.com/veritasnetwork/veritas-core/internal/state"
)

func setupRegistry() *RegistryService {
	j := state.NewJournal()
	return NewRegistryService(state.NewMap[domain.Address, domain.Agent](j))
}

var (
	addrA = domain.Address{0xaa}
	addrB = domain.Address{0xbb}
)

func TestRegistry_Register(t *testing.T) {
	reg := setupRegistry()

	if err := reg.Register(addrA, 1000); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	agent, err := reg.Get(addrA)
	if err != nil {
		t.Fatalf("expected agent, got %v", err)
	}
	if agent.Stake != 1000 {
		t.Fatalf("expected stake 1000, got %d", agent.Stake)
	}
	if agent.Score != DefaultScore {
		t.Fatalf("expected score %d, got %d", DefaultScore, agent.Score)
	}
}

func TestRegistry_Register_ZeroStakeAllowed(t *testing.T) {
	reg := setupRegistry()
	if err := reg.Register(addrA, 0); err != nil {
		t.Fatalf("expected zero-stake registration to succeed, got %v", err)
	}
	w, err := reg.Weight(addrA)
	if err != nil || w != 0 {
		t.Fatalf("expected weight 0, got %d (%v)", w, err)
	}
}

func TestRegistry_Register_Duplicate(t *testing.T) {
	reg := setupRegistry()
	_ = reg.Register(addrA, 1000)

	if err := reg.Register(addrA, 500); err != ErrAlreadyRegistered {
		t.Fatalf("expected ErrAlreadyRegistered, got %v", err)
	}
	// The original record is untouched.
	agent, _ := reg.Get(addrA)
	if agent.Stake != 1000 {
		t.Fatalf("expected stake 1000, got %d", agent.Stake)
	}
}

func TestRegistry_StakeRoundTrip(t *testing.T) {
	reg := setupRegistry()
	_ = reg.Register(addrA, 1000)

	if err := reg.AddStake(addrA, 250); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := reg.WithdrawStake(addrA, 250); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	agent, _ := reg.Get(addrA)
	if agent.Stake != 1000 {
		t.Fatalf("expected stake restored to 1000, got %d", agent.Stake)
	}
}

func TestRegistry_WithdrawStake_Insufficient(t *testing.T) {
	reg := setupRegistry()
	_ = reg.Register(addrA, 100)

	if err := reg.WithdrawStake(addrA, 101); err != ErrInsufficientStake {
		t.Fatalf("expected ErrInsufficientStake, got %v", err)
	}
	agent, _ := reg.Get(addrA)
	if agent.Stake != 100 {
		t.Fatalf("expected stake unchanged at 100, got %d", agent.Stake)
	}
}

func TestRegistry_AddStake_Overflow(t *testing.T) {
	reg := setupRegistry()
	_ = reg.Register(addrA, math.MaxUint64)

	if err := reg.AddStake(addrA, 1); !errors.Is(err, fixedpoint.ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
}

func TestRegistry_NotFound(t *testing.T) {
	reg := setupRegistry()

	if err := reg.AddStake(addrB, 1); err != ErrAgentNotFound {
		t.Fatalf("add: expected ErrAgentNotFound, got %v", err)
	}
	if err := reg.WithdrawStake(addrB, 1); err != ErrAgentNotFound {
		t.Fatalf("withdraw: expected ErrAgentNotFound, got %v", err)
	}
	if _, err := reg.Weight(addrB); err != ErrAgentNotFound {
		t.Fatalf("weight: expected ErrAgentNotFound, got %v", err)
	}
	if err := reg.UpdateScore(addrB, 1); err != ErrAgentNotFound {
		t.Fatalf("score: expected ErrAgentNotFound, got %v", err)
	}
}

func TestRegistry_Weight(t *testing.T) {
	reg := setupRegistry()
	_ = reg.Register(addrA, 1000)

	w, err := reg.Weight(addrA)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if w != 1000*DefaultScore {
		t.Fatalf("expected weight %d, got %d", 1000*DefaultScore, w)
	}
}

func TestRegistry_Weight_Overflow(t *testing.T) {
	reg := setupRegistry()
	_ = reg.Register(addrA, math.MaxUint64/10)

	if _, err := reg.Weight(addrA); !errors.Is(err, fixedpoint.ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
}

func TestRegistry_UpdateScore(t *testing.T) {
	reg := setupRegistry()
	_ = reg.Register(addrA, 1000)

	if err := reg.UpdateScore(addrA, 37); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	agent, _ := reg.Get(addrA)
	if agent.Score != DefaultScore+37 {
		t.Fatalf("expected score %d, got %d", DefaultScore+37, agent.Score)
	}
}

func TestRegistry_UpdateScore_Overflow(t *testing.T) {
	reg := setupRegistry()
	_ = reg.Register(addrA, 0)
	_ = reg.UpdateScore(addrA, math.MaxUint64-DefaultScore)

	if err := reg.UpdateScore(addrA, 1); !errors.Is(err, fixedpoint.ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
}
