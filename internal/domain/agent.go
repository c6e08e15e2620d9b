package domain

// Agent is a staked participant. Influence on aggregation is stake × score.
type Agent struct {
	// Stake is the amount of tokens locked by the agent. Adjusted only by
	// the agent's own stake operations; never negative.
	Stake uint64 `json:"stake"`

	// Score is the reputation, initialized to the registry default on
	// registration and adjusted only by the orchestrator.
	Score uint64 `json:"score"`
}
