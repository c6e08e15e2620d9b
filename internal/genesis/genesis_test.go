package genesis

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/veritasnetwork/veritas-core/internal/domain"
	"github.com/veritasnetwork/veritas-core/internal/service"
	"github.com/veritasnetwork/veritas-core/internal/state"
)

func writeGenesis(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "genesis.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func setup() (*state.Executor, *service.RegistryService, *service.BeliefService) {
	j := state.NewJournal()
	registry := service.NewRegistryService(state.NewMap[domain.Address, domain.Agent](j))
	beliefs := service.NewBeliefService(
		state.NewMap[domain.BeliefID, domain.Belief](j),
		state.NewValue[domain.BeliefID](j),
	)
	return state.NewExecutor(j), registry, beliefs
}

func TestLoadAndApply(t *testing.T) {
	path := writeGenesis(t, `{
		"agents": [
			{"address": "0x00112233445566778899aabbccddeeff00112233", "stake": 1000}
		],
		"beliefs": [
			{"question": "Will the devnet survive the week?", "initial_value": 5000}
		]
	}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	exec, registry, beliefs := setup()
	if err := Apply(exec, registry, beliefs, cfg); err != nil {
		t.Fatalf("apply: %v", err)
	}

	addr, _ := domain.ParseAddress("0x00112233445566778899aabbccddeeff00112233")
	agent, err := registry.Get(addr)
	if err != nil {
		t.Fatalf("expected genesis agent, got %v", err)
	}
	if agent.Stake != 1000 || agent.Score != service.DefaultScore {
		t.Fatalf("unexpected genesis agent %+v", agent)
	}

	b, err := beliefs.Get(1)
	if err != nil {
		t.Fatalf("expected genesis belief, got %v", err)
	}
	if b.Aggregate != 5000 || b.TotalWeight != 0 {
		t.Fatalf("unexpected genesis belief %+v", b)
	}
}

func TestApply_InvalidBeliefRevertsEverything(t *testing.T) {
	cfg := &Config{
		Agents:  []AgentConfig{{Address: domain.Address{0x01}, Stake: 10}},
		Beliefs: []BeliefConfig{{Question: "q", InitialValue: 99999}},
	}

	exec, registry, beliefs := setup()
	if err := Apply(exec, registry, beliefs, cfg); err == nil {
		t.Fatal("expected error for out-of-range initial value")
	}

	if _, err := registry.Get(domain.Address{0x01}); err != service.ErrAgentNotFound {
		t.Fatalf("expected agent rolled back, got %v", err)
	}
	if _, err := beliefs.Get(1); err != service.ErrBeliefNotFound {
		t.Fatalf("expected belief rolled back, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
