package plan

import (
	"github.com/trailforge/plancal/internal/domain/block"
	"github.com/trailforge/plancal/internal/domain/civil"
	"github.com/trailforge/plancal/internal/domain/season"
	"github.com/trailforge/plancal/internal/domain/week"
	"github.com/trailforge/plancal/internal/domain/workout"
)

// Dataset is one raw snapshot of the four published collections, in loader
// order. The engine never mutates it.
type Dataset struct {
	Seasons  []season.Season
	Blocks   []block.Block
	Weeks    []week.Week
	Workouts []workout.Workout
}

// ResolvedDay is the composed answer to "what does the athlete do on date
// D". Output-only; never persisted.
type ResolvedDay struct {
	Date      civil.Date
	DayKey    string
	Season    season.Season
	Week      week.Week
	WeekIndex int
	Block     block.Summary
	Workout   workout.Workout

	// Tiers always carries all three tiers regardless of which one the
	// caller asked for; TierSources records which tier actually supplied
	// each variant so substitutions are visible.
	Tiers       map[workout.Tier]workout.Variant
	TierSources map[workout.Tier]workout.Tier
}
