package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailforge/plancal/internal/domain/workout"
	"github.com/trailforge/plancal/internal/platform/logging"
)

const (
	fixtureSeasons = `[
		{
			"seasonId": "season-2026-winter",
			"name": "Winter Base 2026",
			"startDate": "2026-01-26",
			"endDate": "2026-02-08",
			"timezone": "America/Los_Angeles",
			"weekIds": ["week-2026-05"]
		}
	]`

	fixtureBlocks = `[
		{
			"blockId": "block-winter-base",
			"name": "Base Volume",
			"intent": "Aerobic volume.",
			"weekIds": ["week-2026-05"]
		}
	]`

	fixtureWeeks = `[
		{
			"weekId": "week-2026-05",
			"seasonId": "season-2026-winter",
			"blockId": "block-winter-base",
			"startDate": "2026-01-26",
			"workouts": {
				"monday": "easy-run@v1",
				"tuesday": "rest",
				"wednesday": "easy-run@v1",
				"thursday": "rest",
				"friday": "easy-run@v1",
				"saturday": "easy-run@v1",
				"sunday": "rest"
			}
		}
	]`

	fixtureWorkouts = `[
		{
			"workoutId": "easy-run",
			"version": 1,
			"status": "published",
			"title": "Easy Aerobic Run",
			"tiers": {
				"MED": {"intervals": [{"name": "steady", "durationMinutes": 40, "effort": 3, "heartRateZone": 2}]},
				"LRG": {"intervals": [{"name": "steady", "durationMinutes": 55, "effort": 3}]},
				"XL": {"intervals": [{"name": "steady", "durationMinutes": 75, "effort": 3, "powerZone": 2}]}
			}
		},
		{
			"workoutId": "easy-run",
			"version": 2,
			"status": "draft",
			"title": "Easy Aerobic Run (rework)"
		}
	]`
)

func writeFixtures(t *testing.T, overrides map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		seasonsFile:  fixtureSeasons,
		blocksFile:   fixtureBlocks,
		weeksFile:    fixtureWeeks,
		workoutsFile: fixtureWorkouts,
	}
	for name, content := range overrides {
		files[name] = content
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func TestFileSourceLoad(t *testing.T) {
	dir := writeFixtures(t, nil)
	src := NewFileSource(dir, 2, logging.NewNop())

	ds, err := src.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Seasons, 1)
	assert.Equal(t, "season-2026-winter", ds.Seasons[0].ID)
	assert.Equal(t, "2026-01-26", ds.Seasons[0].StartDate.String())
	assert.Equal(t, "America/Los_Angeles", ds.Seasons[0].Timezone)

	require.Len(t, ds.Blocks, 1)
	assert.Equal(t, "block-winter-base", ds.Blocks[0].ID)

	require.Len(t, ds.Weeks, 1)
	assert.Equal(t, "week-2026-05", ds.Weeks[0].ID)
	assert.Equal(t, "rest", ds.Weeks[0].Workouts["tuesday"])

	require.Len(t, ds.Workouts, 2)
	published := ds.Workouts[0]
	assert.Equal(t, "easy-run", published.ID)
	assert.Equal(t, 1, published.Version)
	assert.Equal(t, workout.StatusPublished, published.Status)
	require.Contains(t, published.Tiers, workout.TierMED)
	require.Len(t, published.Tiers[workout.TierMED].Intervals, 1)
	assert.Equal(t, 3, published.Tiers[workout.TierMED].Intervals[0].Effort)
	require.NotNil(t, published.Tiers[workout.TierMED].Intervals[0].HeartRateZone)
	assert.Equal(t, 2, *published.Tiers[workout.TierMED].Intervals[0].HeartRateZone)

	draft := ds.Workouts[1]
	assert.Equal(t, workout.StatusDraft, draft.Status)
	assert.Empty(t, draft.Tiers)
}

func TestFileSourceLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	src := NewFileSource(dir, 2, logging.NewNop())

	_, err := src.Load(context.Background())
	require.Error(t, err)
}

func TestFileSourceLoadRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
	}{
		{
			name:      "malformed json",
			overrides: map[string]string{seasonsFile: `{not json`},
		},
		{
			name: "season missing timezone",
			overrides: map[string]string{seasonsFile: `[
				{"seasonId": "s1", "name": "S1", "startDate": "2026-01-26", "endDate": "2026-02-08", "weekIds": ["week-2026-05"]}
			]`},
		},
		{
			name: "season bad date format",
			overrides: map[string]string{seasonsFile: `[
				{"seasonId": "s1", "name": "S1", "startDate": "01/26/2026", "endDate": "2026-02-08", "timezone": "America/Los_Angeles", "weekIds": ["w"]}
			]`},
		},
		{
			name: "week with short day map",
			overrides: map[string]string{weeksFile: `[
				{"weekId": "w1", "seasonId": "s1", "blockId": "b1", "startDate": "2026-01-26", "workouts": {"monday": "rest"}}
			]`},
		},
		{
			name: "workout with unknown status",
			overrides: map[string]string{workoutsFile: `[
				{"workoutId": "easy-run", "version": 1, "status": "retired", "tiers": {"MED": {"intervals": [{"effort": 3}]}}}
			]`},
		},
		{
			name: "workout with unknown tier name",
			overrides: map[string]string{workoutsFile: `[
				{"workoutId": "easy-run", "version": 1, "status": "published", "tiers": {"XXL": {"intervals": [{"effort": 3}]}}}
			]`},
		},
		{
			name: "workout effort out of range",
			overrides: map[string]string{workoutsFile: `[
				{"workoutId": "easy-run", "version": 1, "status": "published", "tiers": {"MED": {"intervals": [{"effort": 11}]}}}
			]`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeFixtures(t, tt.overrides)
			src := NewFileSource(dir, 2, logging.NewNop())

			_, err := src.Load(context.Background())
			require.Error(t, err)
		})
	}
}
