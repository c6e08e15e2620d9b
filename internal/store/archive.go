// Package store holds the Postgres-backed archive that mirrors committed
// ledger state for off-chain consumers. The consensus state itself lives in
// the journaled in-memory collections; nothing here is read on the
// consensus path.
package store

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veritasnetwork/veritas-core/internal/domain"
)

type Archive struct {
	db *pgxpool.Pool
}

func NewArchive(db *pgxpool.Pool) *Archive {
	return &Archive{db: db}
}

// EnsureSchema creates the archive tables if they do not exist. Weights can
// exceed the signed 64-bit range, so they are stored as NUMERIC.
func (a *Archive) EnsureSchema(ctx context.Context) error {
	_, err := a.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS submissions (
			seq          BIGINT PRIMARY KEY,
			agent        TEXT NOT NULL,
			belief_id    BIGINT NOT NULL,
			value        BIGINT NOT NULL,
			weight       NUMERIC NOT NULL,
			logical_time BIGINT NOT NULL,
			archived_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS submissions_belief_idx ON submissions (belief_id, seq);

		CREATE TABLE IF NOT EXISTS beliefs (
			id               BIGINT PRIMARY KEY,
			question         TEXT NOT NULL,
			aggregate        BIGINT NOT NULL,
			total_weight     NUMERIC NOT NULL,
			submission_count BIGINT NOT NULL,
			updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	return err
}

func (a *Archive) RecordSubmission(ctx context.Context, seq uint64, sub domain.Submission) error {
	_, err := a.db.Exec(ctx,
		`INSERT INTO submissions (seq, agent, belief_id, value, weight, logical_time)
		 VALUES ($1, $2, $3, $4, $5::numeric, $6)
		 ON CONFLICT (seq) DO NOTHING`,
		int64(seq), sub.Agent.String(), int64(sub.BeliefID), int64(sub.Value),
		strconv.FormatUint(sub.Weight, 10), int64(sub.Timestamp),
	)
	return err
}

func (a *Archive) SnapshotBelief(ctx context.Context, b domain.Belief) error {
	_, err := a.db.Exec(ctx,
		`INSERT INTO beliefs (id, question, aggregate, total_weight, submission_count, updated_at)
		 VALUES ($1, $2, $3, $4::numeric, $5, NOW())
		 ON CONFLICT (id) DO UPDATE
		 SET aggregate = EXCLUDED.aggregate,
		     total_weight = EXCLUDED.total_weight,
		     submission_count = EXCLUDED.submission_count,
		     updated_at = NOW()`,
		int64(b.ID), b.Question, int64(b.Aggregate),
		strconv.FormatUint(b.TotalWeight, 10), int64(b.SubmissionCount),
	)
	return err
}
