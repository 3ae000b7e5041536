package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/trailforge/plancal/internal/domain/plan"
	"github.com/trailforge/plancal/internal/usecase"
)

// SnapshotStore keeps the currently published snapshot in memory. Readers
// get the snapshot pointer under a read lock and then work entirely on the
// immutable snapshot, so resolution never blocks resolution.
type SnapshotStore struct {
	mu         sync.RWMutex
	current    *plan.Snapshot
	generation uint64
	calendar   plan.Calendar
}

func NewSnapshotStore(calendar plan.Calendar) *SnapshotStore {
	return &SnapshotStore{calendar: calendar}
}

// Current returns the published snapshot, or ErrNotFound before the first
// Swap.
func (s *SnapshotStore) Current(_ context.Context) (*plan.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil, fmt.Errorf("%w: no dataset snapshot loaded", usecase.ErrNotFound)
	}
	return s.current, nil
}

// Swap indexes the dataset as a new generation and publishes it.
func (s *SnapshotStore) Swap(ds plan.Dataset) *plan.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.current = plan.NewSnapshot(ds, s.calendar, s.generation)
	return s.current
}
