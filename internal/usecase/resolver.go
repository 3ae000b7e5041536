package usecase

import (
	"fmt"

	"github.com/trailforge/plancal/internal/domain/civil"
	"github.com/trailforge/plancal/internal/domain/plan"
	"github.com/trailforge/plancal/internal/domain/season"
	"github.com/trailforge/plancal/internal/domain/week"
	"github.com/trailforge/plancal/internal/domain/workout"
)

// ResolveActiveSeason finds the season whose inclusive date range contains
// the query date. When ranges overlap, the season with the latest start date
// wins; exact ties keep the earliest record in input order, so the result is
// deterministic either way. No covering season is a nil result, not an
// error. A candidate declaring a timezone other than the calendar's fixed
// zone is a configuration error.
func ResolveActiveSeason(snap *plan.Snapshot, date civil.Date) (*season.Season, error) {
	tz := snap.Calendar().TimezoneName()

	var best *season.Season
	for _, s := range snap.Seasons() {
		if !s.Contains(date) {
			continue
		}
		if s.Timezone != tz {
			return nil, fmt.Errorf("%w: season=%s declares timezone %q, system zone is %q",
				ErrInvalidDataset, s.ID, s.Timezone, tz)
		}
		if best == nil || s.StartDate.After(best.StartDate) {
			candidate := s
			best = &candidate
		}
	}

	return best, nil
}

// ResolveWeekForDate walks the season's ordered week list and returns the
// first week whose 7-day civil window contains the date, along with its
// zero-based index within the season. A date falling in a gap between weeks
// (a deliberate recovery gap, or before/after all weeks) yields a nil week
// and index -1. A dangling week reference or a week starting off the
// configured week-start weekday is a configuration error.
func ResolveWeekForDate(snap *plan.Snapshot, s season.Season, date civil.Date) (*week.Week, int, error) {
	weekStart := snap.Calendar().WeekStart

	for i, weekID := range s.WeekIDs {
		wk, ok := snap.WeekByID(weekID)
		if !ok {
			return nil, -1, fmt.Errorf("%w: season=%s references missing week %q", ErrInvalidDataset, s.ID, weekID)
		}
		if wk.StartDate.Weekday() != weekStart {
			return nil, -1, fmt.Errorf("%w: week=%s starts on %s, weeks must start on %s",
				ErrInvalidDataset, wk.ID, wk.StartDate.Weekday(), weekStart)
		}
		if wk.Contains(date) {
			found := wk
			return &found, i, nil
		}
	}

	return nil, -1, nil
}

// ResolveWorkoutOfDay composes the full per-date lookup: active season, week
// within season, weekday assignment, reference resolution, and tier
// fallback. A nil result means a legitimate "nothing scheduled" outcome (no
// covering season, a gap week, or an explicit rest day); every internal
// inconsistency is a configuration error instead.
func ResolveWorkoutOfDay(snap *plan.Snapshot, date civil.Date) (*plan.ResolvedDay, error) {
	activeSeason, err := ResolveActiveSeason(snap, date)
	if err != nil {
		return nil, err
	}
	if activeSeason == nil {
		return nil, nil
	}

	wk, index, err := ResolveWeekForDate(snap, *activeSeason, date)
	if err != nil {
		return nil, err
	}
	if wk == nil {
		return nil, nil
	}

	if err := week.ValidateDayMap(wk.Workouts); err != nil {
		return nil, fmt.Errorf("%w: week=%s %v", ErrInvalidDataset, wk.ID, err)
	}

	dayKey := week.DayKeyFor(date.Weekday())
	assignment := wk.Workouts[dayKey]
	if week.IsRest(assignment) {
		return nil, nil
	}

	resolved, err := resolveReference(snap, assignment)
	if err != nil {
		return nil, fmt.Errorf("%w: week=%s day=%s: %v", ErrInvalidDataset, wk.ID, dayKey, err)
	}

	blk, ok := snap.BlockByID(wk.BlockID)
	if !ok {
		return nil, fmt.Errorf("%w: week=%s references missing block %q", ErrInvalidDataset, wk.ID, wk.BlockID)
	}

	// All three tiers resolve every time so the result shape is stable no
	// matter which tier the caller cares about.
	tiers := make(map[workout.Tier]workout.Variant, len(workout.AllTiers))
	sources := make(map[workout.Tier]workout.Tier, len(workout.AllTiers))
	for _, tier := range workout.AllTiers {
		variant, source, err := workout.ResolveTier(resolved, tier)
		if err != nil {
			return nil, fmt.Errorf("%w: week=%s day=%s: %v", ErrInvalidDataset, wk.ID, dayKey, err)
		}
		tiers[tier] = variant
		sources[tier] = source
	}

	return &plan.ResolvedDay{
		Date:        date,
		DayKey:      dayKey,
		Season:      *activeSeason,
		Week:        *wk,
		WeekIndex:   index,
		Block:       blk.Summary(),
		Workout:     resolved,
		Tiers:       tiers,
		TierSources: sources,
	}, nil
}

// resolveReference parses a day-map value and resolves it against the
// workout library. Both parse failures and dangling references are fatal: a
// missing workout is corrupt data, never an implicit rest day.
func resolveReference(snap *plan.Snapshot, raw string) (workout.Workout, error) {
	ref, err := workout.ParseRef(raw)
	if err != nil {
		return workout.Workout{}, err
	}

	resolved, ok := snap.WorkoutByRef(ref)
	if !ok {
		return workout.Workout{}, fmt.Errorf("dangling workout reference %q", ref)
	}
	if resolved.Status == workout.StatusDraft {
		return workout.Workout{}, fmt.Errorf("reference %q resolves to draft workout %s", ref, resolved.Key())
	}

	return resolved, nil
}
