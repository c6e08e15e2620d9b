// Package genesis loads the initial chain state: the agents and beliefs the
// ledger starts with before any transaction is applied.
package genesis

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/veritasnetwork/veritas-core/internal/domain"
	"github.com/veritasnetwork/veritas-core/internal/service"
	"github.com/veritasnetwork/veritas-core/internal/state"
)

type AgentConfig struct {
	Address domain.Address `json:"address"`
	Stake   uint64         `json:"stake"`
}

type BeliefConfig struct {
	Question     string `json:"question"`
	InitialValue uint64 `json:"initial_value"`
}

type Config struct {
	Agents  []AgentConfig  `json:"agents"`
	Beliefs []BeliefConfig `json:"beliefs"`
}

// Load reads and decodes a genesis file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read genesis: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("decode genesis: %w", err)
	}
	return &cfg, nil
}

// Apply registers the genesis agents and creates the genesis beliefs inside
// one transaction: a malformed genesis leaves the state empty.
func Apply(
	exec *state.Executor,
	registry *service.RegistryService,
	beliefs *service.BeliefService,
	cfg *Config,
) error {
	return exec.Execute(func(uint64) error {
		for _, a := range cfg.Agents {
			if err := registry.Register(a.Address, a.Stake); err != nil {
				return fmt.Errorf("genesis agent %s: %w", a.Address, err)
			}
		}
		for _, b := range cfg.Beliefs {
			if _, err := beliefs.Create(b.Question, b.InitialValue); err != nil {
				return fmt.Errorf("genesis belief %q: %w", b.Question, err)
			}
		}
		return nil
	})
}
