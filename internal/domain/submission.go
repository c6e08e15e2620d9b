package domain

// Submission is an immutable historical record of one agent's belief value.
// Weight is the agent's stake × score snapshotted at the instant the
// submission was processed, so history can always be replayed exactly.
type Submission struct {
	Agent    Address  `json:"agent"`
	BeliefID BeliefID `json:"belief_id"`
	Value    uint64   `json:"value"`
	Weight   uint64   `json:"weight"`

	// Timestamp is the logical clock value supplied by the host with the
	// transaction (one tick per applied transaction).
	Timestamp uint64 `json:"timestamp"`
}
