package state

import "sync"

// Executor applies transactions one at a time against a shared journal,
// standing in for the host ledger runtime: a single writer, a globally
// agreed order, and all-or-nothing visibility for every transaction. It
// also owns the logical clock, advanced once per transaction.
type Executor struct {
	mu      sync.RWMutex
	journal *Journal
	height  uint64
}

func NewExecutor(j *Journal) *Executor {
	return &Executor{journal: j}
}

// Execute runs fn as one transaction. The height passed to fn is the
// transaction's logical timestamp. If fn returns an error every write it
// made is reverted and the error is returned unchanged; otherwise the
// writes are committed.
func (e *Executor) Execute(fn func(height uint64) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.height++
	if err := fn(e.height); err != nil {
		e.journal.Revert()
		return err
	}
	e.journal.Commit()
	return nil
}

// View runs fn with shared read access and no transaction open.
func (e *Executor) View(fn func()) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	fn()
}

// Height returns the logical clock after the last applied transaction.
func (e *Executor) Height() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.height
}
