package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trailforge/plancal/internal/domain/civil"
	"github.com/trailforge/plancal/internal/domain/plan"
	"github.com/trailforge/plancal/internal/domain/season"
	"github.com/trailforge/plancal/internal/domain/workout"
	"github.com/trailforge/plancal/internal/infrastructure/repository/memory"
	"github.com/trailforge/plancal/internal/usecase"
)

func testCalendar(t *testing.T) plan.Calendar {
	t.Helper()
	cal, err := plan.NewCalendar("America/Los_Angeles", "monday")
	require.NoError(t, err)
	return cal
}

func testSnapshot(t *testing.T) *plan.Snapshot {
	t.Helper()
	return plan.NewSnapshot(memory.SeedDataset(), testCalendar(t), 1)
}

func TestResolveActiveSeason(t *testing.T) {
	snap := testSnapshot(t)

	tests := []struct {
		name     string
		date     string
		seasonID string
	}{
		{name: "winter start boundary", date: "2026-01-26", seasonID: "season-2026-winter"},
		{name: "winter mid season", date: "2026-02-01", seasonID: "season-2026-winter"},
		{name: "winter end boundary", date: "2026-02-08", seasonID: "season-2026-winter"},
		{name: "day before winter", date: "2026-01-25", seasonID: ""},
		{name: "day after winter", date: "2026-02-09", seasonID: ""},
		{name: "between seasons", date: "2026-02-20", seasonID: ""},
		{name: "spring start boundary", date: "2026-03-02", seasonID: "season-2026-spring"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := usecase.ResolveActiveSeason(snap, civil.MustParse(tt.date))
			require.NoError(t, err)
			if tt.seasonID == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.seasonID, got.ID)
		})
	}
}

func TestResolveActiveSeasonOverlapLatestStartWins(t *testing.T) {
	ds := memory.SeedDataset()
	ds.Seasons = append(ds.Seasons, season.Season{
		ID:        "season-2026-winter-redo",
		Name:      "Winter Redo",
		StartDate: civil.MustParse("2026-02-02"),
		EndDate:   civil.MustParse("2026-02-15"),
		Timezone:  "America/Los_Angeles",
		WeekIDs:   []string{"week-2026-06"},
	})
	snap := plan.NewSnapshot(ds, testCalendar(t), 1)

	got, err := usecase.ResolveActiveSeason(snap, civil.MustParse("2026-02-05"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "season-2026-winter-redo", got.ID)

	// Before the overlapping season begins, the original still wins.
	got, err = usecase.ResolveActiveSeason(snap, civil.MustParse("2026-02-01"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "season-2026-winter", got.ID)
}

func TestResolveActiveSeasonOverlapTieKeepsInputOrder(t *testing.T) {
	ds := memory.SeedDataset()
	ds.Seasons = append(ds.Seasons, season.Season{
		ID:        "season-2026-winter-twin",
		Name:      "Winter Twin",
		StartDate: civil.MustParse("2026-01-26"),
		EndDate:   civil.MustParse("2026-02-08"),
		Timezone:  "America/Los_Angeles",
		WeekIDs:   []string{"week-2026-05"},
	})
	snap := plan.NewSnapshot(ds, testCalendar(t), 1)

	got, err := usecase.ResolveActiveSeason(snap, civil.MustParse("2026-01-28"))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "season-2026-winter", got.ID)
}

func TestResolveActiveSeasonTimezoneMismatch(t *testing.T) {
	ds := memory.SeedDataset()
	ds.Seasons[0].Timezone = "Europe/Berlin"
	snap := plan.NewSnapshot(ds, testCalendar(t), 1)

	_, err := usecase.ResolveActiveSeason(snap, civil.MustParse("2026-02-01"))
	require.ErrorIs(t, err, usecase.ErrInvalidDataset)
}

func TestResolveWeekForDate(t *testing.T) {
	snap := testSnapshot(t)
	winter := snap.Seasons()[0]

	wk, index, err := usecase.ResolveWeekForDate(snap, winter, civil.MustParse("2026-01-28"))
	require.NoError(t, err)
	require.NotNil(t, wk)
	assert.Equal(t, "week-2026-05", wk.ID)
	assert.Equal(t, 0, index)

	wk, index, err = usecase.ResolveWeekForDate(snap, winter, civil.MustParse("2026-02-02"))
	require.NoError(t, err)
	require.NotNil(t, wk)
	assert.Equal(t, "week-2026-06", wk.ID)
	assert.Equal(t, 1, index)
}

func TestResolveWeekForDateGapWeek(t *testing.T) {
	snap := testSnapshot(t)

	// A season that spans three calendar weeks but only schedules the first:
	// dates in the trailing gap are inside the season yet in no week.
	gapSeason := season.Season{
		ID:        "season-gap",
		Name:      "Gap Season",
		StartDate: civil.MustParse("2026-01-26"),
		EndDate:   civil.MustParse("2026-02-15"),
		Timezone:  "America/Los_Angeles",
		WeekIDs:   []string{"week-2026-05"},
	}

	wk, index, err := usecase.ResolveWeekForDate(snap, gapSeason, civil.MustParse("2026-02-10"))
	require.NoError(t, err)
	assert.Nil(t, wk)
	assert.Equal(t, -1, index)
}

func TestResolveWeekForDateDanglingWeek(t *testing.T) {
	snap := testSnapshot(t)

	broken := season.Season{
		ID:        "season-broken",
		Name:      "Broken Season",
		StartDate: civil.MustParse("2026-01-26"),
		EndDate:   civil.MustParse("2026-02-08"),
		Timezone:  "America/Los_Angeles",
		WeekIDs:   []string{"week-missing"},
	}

	_, _, err := usecase.ResolveWeekForDate(snap, broken, civil.MustParse("2026-01-28"))
	require.ErrorIs(t, err, usecase.ErrInvalidDataset)
}

func TestResolveWorkoutOfDay(t *testing.T) {
	snap := testSnapshot(t)

	day, err := usecase.ResolveWorkoutOfDay(snap, civil.MustParse("2026-02-01"))
	require.NoError(t, err)
	require.NotNil(t, day)

	assert.Equal(t, "sunday", day.DayKey)
	assert.Equal(t, "season-2026-winter", day.Season.ID)
	assert.Equal(t, "week-2026-05", day.Week.ID)
	assert.Equal(t, 0, day.WeekIndex)
	assert.Equal(t, "block-winter-base", day.Block.ID)
	assert.Equal(t, "workout-b", day.Workout.ID)
	assert.Equal(t, 1, day.Workout.Version)

	// workout-b publishes MED and LRG only: XL is substituted from LRG and
	// the substitution is visible in the source map.
	assert.Equal(t, workout.TierMED, day.TierSources[workout.TierMED])
	assert.Equal(t, workout.TierLRG, day.TierSources[workout.TierLRG])
	assert.Equal(t, workout.TierLRG, day.TierSources[workout.TierXL])
	assert.Equal(t, day.Tiers[workout.TierLRG], day.Tiers[workout.TierXL])
}

func TestResolveWorkoutOfDaySecondWeek(t *testing.T) {
	snap := testSnapshot(t)

	day, err := usecase.ResolveWorkoutOfDay(snap, civil.MustParse("2026-02-02"))
	require.NoError(t, err)
	require.NotNil(t, day)

	assert.Equal(t, "monday", day.DayKey)
	assert.Equal(t, "week-2026-06", day.Week.ID)
	assert.Equal(t, 1, day.WeekIndex)
	assert.Equal(t, "long-run", day.Workout.ID)
}

func TestResolveWorkoutOfDayNilOutcomes(t *testing.T) {
	snap := testSnapshot(t)

	tests := []struct {
		name string
		date string
	}{
		{name: "rest day", date: "2026-02-03"},
		{name: "no covering season", date: "2026-02-20"},
		{name: "before all seasons", date: "2025-12-25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := usecase.ResolveWorkoutOfDay(snap, civil.MustParse(tt.date))
			require.NoError(t, err)
			assert.Nil(t, day)
		})
	}
}

func TestResolveWorkoutOfDayAcrossDSTTransition(t *testing.T) {
	snap := testSnapshot(t)

	// 2026-03-08 is the US spring-forward Sunday; the civil week windows on
	// either side of it must stay exactly seven days wide.
	day, err := usecase.ResolveWorkoutOfDay(snap, civil.MustParse("2026-03-08"))
	require.NoError(t, err)
	require.NotNil(t, day)
	assert.Equal(t, "week-2026-10", day.Week.ID)
	assert.Equal(t, "sunday", day.DayKey)
	assert.Equal(t, "easy-run", day.Workout.ID)

	day, err = usecase.ResolveWorkoutOfDay(snap, civil.MustParse("2026-03-09"))
	require.NoError(t, err)
	require.NotNil(t, day)
	assert.Equal(t, "week-2026-11", day.Week.ID)
	assert.Equal(t, "monday", day.DayKey)
}

func TestResolveWorkoutOfDayBareRefResolvesLatestNonDraft(t *testing.T) {
	snap := testSnapshot(t)

	// week-2026-11 monday references "tempo-hills" without a pin; v3 is a
	// draft, so the latest resolvable version is the published v2.
	day, err := usecase.ResolveWorkoutOfDay(snap, civil.MustParse("2026-03-09"))
	require.NoError(t, err)
	require.NotNil(t, day)
	assert.Equal(t, "tempo-hills", day.Workout.ID)
	assert.Equal(t, 2, day.Workout.Version)
}

func TestResolveWorkoutOfDayDraftReference(t *testing.T) {
	ds := memory.SeedDataset()
	ds.Weeks[3].Workouts["monday"] = "tempo-hills@v3"
	snap := plan.NewSnapshot(ds, testCalendar(t), 1)

	_, err := usecase.ResolveWorkoutOfDay(snap, civil.MustParse("2026-03-09"))
	require.ErrorIs(t, err, usecase.ErrInvalidDataset)
}

func TestResolveWorkoutOfDayDanglingReference(t *testing.T) {
	ds := memory.SeedDataset()
	ds.Weeks[0].Workouts["monday"] = "missing-workout@v1"
	snap := plan.NewSnapshot(ds, testCalendar(t), 1)

	_, err := usecase.ResolveWorkoutOfDay(snap, civil.MustParse("2026-01-26"))
	require.ErrorIs(t, err, usecase.ErrInvalidDataset)
}

func TestResolveWorkoutOfDayIsIdempotent(t *testing.T) {
	snap := testSnapshot(t)
	date := civil.MustParse("2026-02-01")

	first, err := usecase.ResolveWorkoutOfDay(snap, date)
	require.NoError(t, err)
	second, err := usecase.ResolveWorkoutOfDay(snap, date)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
