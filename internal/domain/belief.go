package domain

// BeliefID identifies a belief. Assigned sequentially at creation.
type BeliefID uint64

// Belief is a tracked question with a running weighted-consensus value.
// Aggregate is fixed-point on fixedpoint.Scale and always within [0, Scale];
// TotalWeight only ever increases.
type Belief struct {
	ID              BeliefID `json:"id"`
	Question        string   `json:"question"`
	Aggregate       uint64   `json:"aggregate"`
	TotalWeight     uint64   `json:"total_weight"`
	SubmissionCount uint64   `json:"submission_count"`
}
