package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/veritasnetwork/veritas-core/internal/domain"
)

type mockArchiveSink struct {
	mock.Mock
}

func (m *mockArchiveSink) RecordSubmission(ctx context.Context, seq uint64, sub domain.Submission) error {
	args := m.Called(ctx, seq, sub)
	return args.Error(0)
}

func (m *mockArchiveSink) SnapshotBelief(ctx context.Context, b domain.Belief) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func TestArchiver_WritesEnqueuedEntries(t *testing.T) {
	sink := &mockArchiveSink{}
	sub := domain.Submission{Agent: addrA, BeliefID: 1, Value: 7000, Weight: 100000, Timestamp: 1}
	belief := domain.Belief{ID: 1, Question: "q", Aggregate: 7000, TotalWeight: 100000, SubmissionCount: 1}

	done := make(chan struct{})
	sink.On("RecordSubmission", mock.Anything, uint64(0), sub).Return(nil).Once()
	sink.On("SnapshotBelief", mock.Anything, belief).Return(nil).Once().Run(func(mock.Arguments) {
		close(done)
	})

	svc := NewArchiverService(sink, zap.NewNop())
	svc.Start()
	svc.Enqueue(0, sub, belief)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("archiver did not write within 2s")
	}
	svc.Stop()
	sink.AssertExpectations(t)
}

func TestArchiver_DrainsQueueOnStop(t *testing.T) {
	sink := &mockArchiveSink{}
	sink.On("RecordSubmission", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	sink.On("SnapshotBelief", mock.Anything, mock.Anything).Return(nil)

	svc := NewArchiverService(sink, zap.NewNop())
	svc.Start()
	for i := range 5 {
		svc.Enqueue(uint64(i), domain.Submission{BeliefID: 1}, domain.Belief{ID: 1})
	}
	svc.Stop()

	sink.AssertNumberOfCalls(t, "RecordSubmission", 5)
}
