package memory

import (
	"context"

	"github.com/trailforge/plancal/internal/domain/block"
	"github.com/trailforge/plancal/internal/domain/civil"
	"github.com/trailforge/plancal/internal/domain/plan"
	"github.com/trailforge/plancal/internal/domain/season"
	"github.com/trailforge/plancal/internal/domain/week"
	"github.com/trailforge/plancal/internal/domain/workout"
)

// SeedSource serves the built-in demo dataset; used in dev mode and tests.
type SeedSource struct{}

func NewSeedSource() *SeedSource { return &SeedSource{} }

func (s *SeedSource) Load(_ context.Context) (plan.Dataset, error) {
	return SeedDataset(), nil
}

func intPtr(v int) *int { return &v }

// SeedDataset builds a small valid dataset: a two-week winter season and a
// two-week spring season whose second week starts the Monday after the US
// spring-forward transition.
func SeedDataset() plan.Dataset {
	return plan.Dataset{
		Seasons: []season.Season{
			{
				ID:        "season-2026-winter",
				Name:      "Winter Base 2026",
				StartDate: civil.MustParse("2026-01-26"),
				EndDate:   civil.MustParse("2026-02-08"),
				Timezone:  "America/Los_Angeles",
				WeekIDs:   []string{"week-2026-05", "week-2026-06"},
			},
			{
				ID:        "season-2026-spring",
				Name:      "Spring Build 2026",
				StartDate: civil.MustParse("2026-03-02"),
				EndDate:   civil.MustParse("2026-03-15"),
				Timezone:  "America/Los_Angeles",
				WeekIDs:   []string{"week-2026-10", "week-2026-11"},
			},
		},
		Blocks: []block.Block{
			{
				ID:      "block-winter-base",
				Name:    "Base Volume",
				Intent:  "Aerobic volume with one quality session per week.",
				WeekIDs: []string{"week-2026-05", "week-2026-06"},
			},
			{
				ID:      "block-spring-build",
				Name:    "Spring Build",
				Intent:  "Progressive intensity into the first race block.",
				WeekIDs: []string{"week-2026-10", "week-2026-11"},
			},
		},
		Weeks: []week.Week{
			{
				ID:        "week-2026-05",
				SeasonID:  "season-2026-winter",
				BlockID:   "block-winter-base",
				StartDate: civil.MustParse("2026-01-26"),
				Workouts: map[string]string{
					"monday":    "easy-run",
					"tuesday":   "workout-b@v1",
					"wednesday": week.RestMarker,
					"thursday":  "easy-run",
					"friday":    week.RestMarker,
					"saturday":  "long-run",
					"sunday":    "workout-b@v1",
				},
			},
			{
				ID:        "week-2026-06",
				SeasonID:  "season-2026-winter",
				BlockID:   "block-winter-base",
				StartDate: civil.MustParse("2026-02-02"),
				Workouts: map[string]string{
					"monday":    "long-run",
					"tuesday":   week.RestMarker,
					"wednesday": "easy-run",
					"thursday":  "workout-b@v1",
					"friday":    week.RestMarker,
					"saturday":  "long-run",
					"sunday":    "easy-run",
				},
			},
			{
				ID:        "week-2026-10",
				SeasonID:  "season-2026-spring",
				BlockID:   "block-spring-build",
				StartDate: civil.MustParse("2026-03-02"),
				Workouts: map[string]string{
					"monday":    "easy-run",
					"tuesday":   "tempo-hills@v2",
					"wednesday": week.RestMarker,
					"thursday":  "easy-run",
					"friday":    week.RestMarker,
					"saturday":  "long-run",
					"sunday":    "easy-run",
				},
			},
			{
				ID:        "week-2026-11",
				SeasonID:  "season-2026-spring",
				BlockID:   "block-spring-build",
				StartDate: civil.MustParse("2026-03-09"),
				Workouts: map[string]string{
					"monday":    "tempo-hills",
					"tuesday":   week.RestMarker,
					"wednesday": "easy-run",
					"thursday":  "easy-run",
					"friday":    week.RestMarker,
					"saturday":  "long-run",
					"sunday":    week.RestMarker,
				},
			},
		},
		Workouts: []workout.Workout{
			{
				ID:      "easy-run",
				Version: 1,
				Status:  workout.StatusPublished,
				Title:   "Easy Aerobic Run",
				Tiers: map[workout.Tier]workout.Variant{
					workout.TierMED: {Intervals: []workout.Interval{
						{Name: "steady", DurationMinutes: 40, Effort: 3, HeartRateZone: intPtr(2)},
					}},
					workout.TierLRG: {Intervals: []workout.Interval{
						{Name: "steady", DurationMinutes: 55, Effort: 3, HeartRateZone: intPtr(2)},
					}},
					workout.TierXL: {Intervals: []workout.Interval{
						{Name: "steady", DurationMinutes: 75, Effort: 3, HeartRateZone: intPtr(2)},
					}},
				},
			},
			{
				ID:      "long-run",
				Version: 1,
				Status:  workout.StatusPublished,
				Title:   "Weekend Long Run",
				Tiers: map[workout.Tier]workout.Variant{
					workout.TierMED: {Intervals: []workout.Interval{
						{Name: "long", DurationMinutes: 90, Effort: 4},
					}},
					workout.TierLRG: {Intervals: []workout.Interval{
						{Name: "long", DurationMinutes: 120, Effort: 4},
					}},
					workout.TierXL: {Intervals: []workout.Interval{
						{Name: "long", DurationMinutes: 150, Effort: 4},
					}},
				},
			},
			{
				// MED and LRG only: XL requests fall back to LRG.
				ID:      "workout-b",
				Version: 1,
				Status:  workout.StatusPublished,
				Title:   "Threshold Intervals B",
				Tiers: map[workout.Tier]workout.Variant{
					workout.TierMED: {Intervals: []workout.Interval{
						{Name: "warmup", DurationMinutes: 15, Effort: 2},
						{Name: "threshold", DurationMinutes: 20, Effort: 7, HeartRateZone: intPtr(4)},
						{Name: "cooldown", DurationMinutes: 10, Effort: 2},
					}},
					workout.TierLRG: {Intervals: []workout.Interval{
						{Name: "warmup", DurationMinutes: 15, Effort: 2},
						{Name: "threshold", DurationMinutes: 30, Effort: 7, HeartRateZone: intPtr(4)},
						{Name: "cooldown", DurationMinutes: 10, Effort: 2},
					}},
				},
			},
			{
				ID:      "tempo-hills",
				Version: 1,
				Status:  workout.StatusArchived,
				Title:   "Tempo Hills (retired progression)",
				Tiers: map[workout.Tier]workout.Variant{
					workout.TierMED: {Intervals: []workout.Interval{
						{Name: "hills", DurationMinutes: 30, Effort: 6},
					}},
				},
			},
			{
				ID:      "tempo-hills",
				Version: 2,
				Status:  workout.StatusPublished,
				Title:   "Tempo Hills",
				Tiers: map[workout.Tier]workout.Variant{
					workout.TierMED: {Intervals: []workout.Interval{
						{Name: "warmup", DurationMinutes: 15, Effort: 2},
						{Name: "hills", DurationMinutes: 35, Effort: 6, PowerZone: intPtr(3)},
						{Name: "cooldown", DurationMinutes: 10, Effort: 2},
					}},
					workout.TierLRG: {Intervals: []workout.Interval{
						{Name: "warmup", DurationMinutes: 15, Effort: 2},
						{Name: "hills", DurationMinutes: 45, Effort: 6, PowerZone: intPtr(3)},
						{Name: "cooldown", DurationMinutes: 10, Effort: 2},
					}},
					workout.TierXL: {Intervals: []workout.Interval{
						{Name: "warmup", DurationMinutes: 20, Effort: 2},
						{Name: "hills", DurationMinutes: 60, Effort: 6, PowerZone: intPtr(3)},
						{Name: "cooldown", DurationMinutes: 10, Effort: 2},
					}},
				},
			},
			{
				// Draft of the next revision; must never resolve.
				ID:      "tempo-hills",
				Version: 3,
				Status:  workout.StatusDraft,
				Title:   "Tempo Hills (draft rework)",
			},
		},
	}
}
