package domain

import "context"

// ArchiveSink mirrors committed state to durable storage for off-chain
// consumers (dashboards, analytics). It sits outside the consensus path:
// failures are logged, never surfaced to the state machine.
type ArchiveSink interface {
	RecordSubmission(ctx context.Context, seq uint64, sub Submission) error
	SnapshotBelief(ctx context.Context, b Belief) error
}
