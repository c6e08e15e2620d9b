package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/veritasnetwork/veritas-core/internal/domain"
)

const archiveQueueSize = 256

type archiveEntry struct {
	seq    uint64
	sub    domain.Submission
	belief domain.Belief
}

// ArchiverService mirrors committed submissions and belief snapshots to a
// durable sink in a background goroutine. It sits entirely off the consensus
// path: Enqueue never blocks, and sink failures are logged and dropped.
type ArchiverService struct {
	sink   domain.ArchiveSink
	logger *zap.Logger

	ch     chan archiveEntry
	stopCh chan struct{}
	wg     sync.WaitGroup
}

func NewArchiverService(sink domain.ArchiveSink, logger *zap.Logger) *ArchiverService {
	return &ArchiverService{
		sink:   sink,
		logger: logger,
		ch:     make(chan archiveEntry, archiveQueueSize),
		stopCh: make(chan struct{}),
	}
}

// Start runs the archive writer in a background goroutine.
func (s *ArchiverService) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.logger.Info("submission archiver started")
		for {
			select {
			case entry := <-s.ch:
				s.write(entry)
			case <-s.stopCh:
				// Drain whatever was enqueued before shutdown.
				for {
					select {
					case entry := <-s.ch:
						s.write(entry)
					default:
						s.logger.Info("submission archiver stopped")
						return
					}
				}
			}
		}
	}()
}

// Stop gracefully stops the archiver after draining the queue.
func (s *ArchiverService) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

// Enqueue hands a committed submission to the writer. If the queue is full
// the entry is dropped with a warning rather than stalling the state machine.
func (s *ArchiverService) Enqueue(seq uint64, sub domain.Submission, belief domain.Belief) {
	select {
	case s.ch <- archiveEntry{seq: seq, sub: sub, belief: belief}:
	default:
		s.logger.Warn("archive queue full, dropping entry", zap.Uint64("seq", seq))
	}
}

func (s *ArchiverService) write(entry archiveEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.sink.RecordSubmission(ctx, entry.seq, entry.sub); err != nil {
		s.logger.Error("failed to archive submission",
			zap.Uint64("seq", entry.seq), zap.Error(err))
		return
	}
	if err := s.sink.SnapshotBelief(ctx, entry.belief); err != nil {
		s.logger.Error("failed to snapshot belief",
			zap.Uint64("belief_id", uint64(entry.belief.ID)), zap.Error(err))
	}
}
