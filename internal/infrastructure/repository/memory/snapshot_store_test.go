package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailforge/plancal/internal/domain/plan"
	"github.com/trailforge/plancal/internal/usecase"
)

func newTestCalendar(t *testing.T) plan.Calendar {
	t.Helper()
	cal, err := plan.NewCalendar("America/Los_Angeles", "monday")
	require.NoError(t, err)
	return cal
}

func TestSnapshotStoreCurrentBeforeFirstSwap(t *testing.T) {
	store := NewSnapshotStore(newTestCalendar(t))

	_, err := store.Current(context.Background())
	require.ErrorIs(t, err, usecase.ErrNotFound)
}

func TestSnapshotStoreSwapIncrementsGeneration(t *testing.T) {
	store := NewSnapshotStore(newTestCalendar(t))

	first := store.Swap(SeedDataset())
	require.NotNil(t, first)
	assert.Equal(t, uint64(1), first.Generation())

	second := store.Swap(SeedDataset())
	require.NotNil(t, second)
	assert.Equal(t, uint64(2), second.Generation())

	current, err := store.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, second.Generation(), current.Generation())
}

func TestSnapshotStoreCurrentReturnsIndexedView(t *testing.T) {
	store := NewSnapshotStore(newTestCalendar(t))
	store.Swap(SeedDataset())

	snap, err := store.Current(context.Background())
	require.NoError(t, err)

	wk, ok := snap.WeekByID("week-2026-05")
	require.True(t, ok)
	assert.Equal(t, "season-2026-winter", wk.SeasonID)

	_, ok = snap.BlockByID("block-winter-base")
	assert.True(t, ok)
}

func TestSeedDatasetIsSelfConsistent(t *testing.T) {
	ds := SeedDataset()

	assert.Len(t, ds.Seasons, 2)
	assert.Len(t, ds.Blocks, 2)
	assert.Len(t, ds.Weeks, 4)
	require.NotEmpty(t, ds.Workouts)

	for _, s := range ds.Seasons {
		assert.Equal(t, "America/Los_Angeles", s.Timezone)
		assert.NotEmpty(t, s.WeekIDs)
	}
}
