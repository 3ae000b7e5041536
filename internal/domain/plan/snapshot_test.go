package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailforge/plancal/internal/domain/workout"
)

func snapshotFixture(t *testing.T) *Snapshot {
	t.Helper()

	cal, err := NewCalendar("America/Los_Angeles", "monday")
	require.NoError(t, err)

	ds := Dataset{
		Workouts: []workout.Workout{
			{ID: "tempo", Version: 1, Status: workout.StatusArchived},
			{ID: "tempo", Version: 2, Status: workout.StatusPublished},
			{ID: "tempo", Version: 3, Status: workout.StatusDraft},
			{ID: "easy", Version: 1, Status: workout.StatusPublished},
		},
	}
	return NewSnapshot(ds, cal, 7)
}

func TestSnapshotGeneration(t *testing.T) {
	snap := snapshotFixture(t)
	assert.Equal(t, uint64(7), snap.Generation())
}

func TestSnapshotWorkoutByRefPinned(t *testing.T) {
	snap := snapshotFixture(t)

	w, ok := snap.WorkoutByRef(workout.Ref{ID: "tempo", Version: 1})
	require.True(t, ok)
	assert.Equal(t, workout.StatusArchived, w.Status)

	// Pinned lookups see drafts too; rejecting them is the resolver's call.
	w, ok = snap.WorkoutByRef(workout.Ref{ID: "tempo", Version: 3})
	require.True(t, ok)
	assert.Equal(t, workout.StatusDraft, w.Status)

	_, ok = snap.WorkoutByRef(workout.Ref{ID: "tempo", Version: 9})
	assert.False(t, ok)
}

func TestSnapshotWorkoutByRefLatestSkipsDrafts(t *testing.T) {
	snap := snapshotFixture(t)

	w, ok := snap.WorkoutByRef(workout.Ref{ID: "tempo"})
	require.True(t, ok)
	assert.Equal(t, 2, w.Version)

	_, ok = snap.WorkoutByRef(workout.Ref{ID: "missing"})
	assert.False(t, ok)
}

func TestSnapshotKeepsFirstDuplicate(t *testing.T) {
	cal, err := NewCalendar("America/Los_Angeles", "monday")
	require.NoError(t, err)

	ds := Dataset{
		Workouts: []workout.Workout{
			{ID: "tempo", Version: 1, Status: workout.StatusPublished, Title: "first"},
			{ID: "tempo", Version: 1, Status: workout.StatusPublished, Title: "second"},
		},
	}
	snap := NewSnapshot(ds, cal, 1)

	w, ok := snap.WorkoutByRef(workout.Ref{ID: "tempo", Version: 1})
	require.True(t, ok)
	assert.Equal(t, "first", w.Title)
}
