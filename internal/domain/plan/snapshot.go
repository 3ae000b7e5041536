package plan

import (
	"github.com/trailforge/plancal/internal/domain/block"
	"github.com/trailforge/plancal/internal/domain/season"
	"github.com/trailforge/plancal/internal/domain/week"
	"github.com/trailforge/plancal/internal/domain/workout"
)

// Snapshot is an immutable indexed view over one dataset generation. The
// id->entity maps are built once here so per-query resolution never scans;
// they live and die with the snapshot, which is the only caching the engine
// does across calls (a new generation replaces everything).
//
// Snapshots are safe for concurrent readers: nothing mutates after New.
type Snapshot struct {
	calendar   Calendar
	dataset    Dataset
	generation uint64

	weeksByID     map[string]week.Week
	blocksByID    map[string]block.Block
	workoutsByKey map[string]workout.Workout
	latestByID    map[string]int
}

// NewSnapshot indexes a dataset. Duplicate ids keep the first occurrence;
// the invariant validator is the place that rejects duplicates outright.
// The latest-version index only considers non-draft records, so a bare
// reference can never land on a draft.
func NewSnapshot(ds Dataset, cal Calendar, generation uint64) *Snapshot {
	s := &Snapshot{
		calendar:      cal,
		dataset:       ds,
		generation:    generation,
		weeksByID:     make(map[string]week.Week, len(ds.Weeks)),
		blocksByID:    make(map[string]block.Block, len(ds.Blocks)),
		workoutsByKey: make(map[string]workout.Workout, len(ds.Workouts)),
		latestByID:    make(map[string]int, len(ds.Workouts)),
	}

	for _, wk := range ds.Weeks {
		if _, ok := s.weeksByID[wk.ID]; !ok {
			s.weeksByID[wk.ID] = wk
		}
	}
	for _, b := range ds.Blocks {
		if _, ok := s.blocksByID[b.ID]; !ok {
			s.blocksByID[b.ID] = b
		}
	}
	for _, w := range ds.Workouts {
		key := w.Key()
		if _, ok := s.workoutsByKey[key]; !ok {
			s.workoutsByKey[key] = w
		}
		if w.Status != workout.StatusDraft && w.Version > s.latestByID[w.ID] {
			s.latestByID[w.ID] = w.Version
		}
	}

	return s
}

func (s *Snapshot) Calendar() Calendar { return s.calendar }

func (s *Snapshot) Dataset() Dataset { return s.dataset }

func (s *Snapshot) Generation() uint64 { return s.generation }

func (s *Snapshot) Seasons() []season.Season { return s.dataset.Seasons }

func (s *Snapshot) WeekByID(id string) (week.Week, bool) {
	wk, ok := s.weeksByID[id]
	return wk, ok
}

func (s *Snapshot) BlockByID(id string) (block.Block, bool) {
	b, ok := s.blocksByID[id]
	return b, ok
}

// WorkoutByRef resolves a parsed reference. Pinned refs hit the exact
// (id, version) record, draft or not; the caller enforces the draft rule so
// it can produce a precise error. Latest refs resolve through the non-draft
// version index.
func (s *Snapshot) WorkoutByRef(ref workout.Ref) (workout.Workout, bool) {
	if ref.Pinned() {
		w, ok := s.workoutsByKey[ref.String()]
		return w, ok
	}

	version, ok := s.latestByID[ref.ID]
	if !ok {
		return workout.Workout{}, false
	}
	w, ok := s.workoutsByKey[workout.Ref{ID: ref.ID, Version: version}.String()]
	return w, ok
}
