package pipeline

// Store holds the current full in-memory collection of one record type.
// Callers replace the whole snapshot after every fetch; there is no
// incremental update model. The store does no locking: the snapshot is
// owned by the caller that supplied it, and the pipeline never mutates
// records, so concurrent readers only need caller-side synchronization
// around Replace.
type Store[R Record] struct {
	records []R
}

func NewStore[R Record]() *Store[R] { return &Store[R]{} }

// Replace swaps in a new snapshot wholesale, discarding the previous one.
func (s *Store[R]) Replace(records []R) {
	s.records = records
}

// Snapshot returns the current collection. The returned slice must be
// treated as read-only.
func (s *Store[R]) Snapshot() []R { return s.records }

func (s *Store[R]) Len() int { return len(s.records) }
