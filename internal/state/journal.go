// Package state provides the journaled in-memory collections the ledger
// modules store their entities in, plus the executor that applies one
// transaction at a time. Collections record an undo entry for every write;
// the executor reverts them all when a transaction fails, so no partial
// state is ever observable.
//
// Lifetime and initialization are owned by the host: it constructs one
// Journal, builds each module's collections over it, and tears everything
// down at process end. No collection is a package singleton.
package state

// Journal is an undo log shared by all collections of one state machine.
// At most one transaction is open at a time; the Executor enforces that.
type Journal struct {
	undo []func()
}

func NewJournal() *Journal {
	return &Journal{}
}

// Record registers a function that restores the state a write replaced.
func (j *Journal) Record(fn func()) {
	j.undo = append(j.undo, fn)
}

// Pending reports how many writes the open transaction has made.
func (j *Journal) Pending() int {
	return len(j.undo)
}

// Revert undoes every write of the open transaction, newest first.
func (j *Journal) Revert() {
	for i := len(j.undo) - 1; i >= 0; i-- {
		j.undo[i]()
	}
	j.undo = j.undo[:0]
}

// Commit discards the undo log, making the open transaction's writes final.
func (j *Journal) Commit() {
	j.undo = j.undo[:0]
}
