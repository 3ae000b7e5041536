package usecase

import (
	"fmt"

	"github.com/trailforge/plancal/internal/domain/plan"
	"github.com/trailforge/plancal/internal/domain/season"
	"github.com/trailforge/plancal/internal/domain/week"
	"github.com/trailforge/plancal/internal/domain/workout"
)

// ValidateDataset runs the whole-dataset invariant pass: structural,
// referential, ordering, and status rules across seasons, blocks, weeks,
// and workouts. It fails fast on the first violation with an error naming
// the offending entity and rule; there is no partial-success mode. Run it
// whenever a snapshot is loaded so per-query resolution can treat any
// failure as a true defect.
func ValidateDataset(ds plan.Dataset, cal plan.Calendar) error {
	if cal.Location == nil {
		return fmt.Errorf("%w: calendar has no timezone", ErrInvalidDataset)
	}

	if err := validateWorkouts(ds.Workouts); err != nil {
		return err
	}

	// Resolution checks below reuse the snapshot indexes; generation zero
	// marks this as a throwaway view.
	snap := plan.NewSnapshot(ds, cal, 0)

	if err := validateWeeks(ds, snap, cal); err != nil {
		return err
	}
	if err := validateSeasons(ds.Seasons, snap, cal); err != nil {
		return err
	}
	return validateBlocks(ds, snap)
}

func validateWorkouts(workouts []workout.Workout) error {
	seen := make(map[string]struct{}, len(workouts))

	for _, w := range workouts {
		if !workout.ValidID(w.ID) {
			return fmt.Errorf("%w: workout=%q id violates the reference grammar", ErrInvalidDataset, w.ID)
		}
		if w.Version < 1 {
			return fmt.Errorf("%w: workout=%s version must be a positive integer, got %d", ErrInvalidDataset, w.ID, w.Version)
		}
		if !workout.KnownStatus(w.Status) {
			return fmt.Errorf("%w: workout=%s has unknown status %q", ErrInvalidDataset, w.Key(), w.Status)
		}

		key := w.Key()
		if _, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate workout version %s", ErrInvalidDataset, key)
		}
		seen[key] = struct{}{}

		if w.Status == workout.StatusDraft {
			// Drafts are never resolution targets; their payloads are not
			// held to published standards.
			continue
		}

		if len(w.Tiers) == 0 {
			return fmt.Errorf("%w: workout=%s has no tier variants", ErrInvalidDataset, key)
		}
		for tier, variant := range w.Tiers {
			if !workout.KnownTier(tier) {
				return fmt.Errorf("%w: workout=%s has unknown tier %q", ErrInvalidDataset, key, tier)
			}
			if len(variant.Intervals) == 0 {
				return fmt.Errorf("%w: workout=%s tier=%s has no intervals", ErrInvalidDataset, key, tier)
			}
			for i, interval := range variant.Intervals {
				if interval.Effort < workout.EffortMin || interval.Effort > workout.EffortMax {
					return fmt.Errorf("%w: workout=%s tier=%s interval=%d effort %d outside %d-%d",
						ErrInvalidDataset, key, tier, i, interval.Effort, workout.EffortMin, workout.EffortMax)
				}
			}
		}
	}

	return nil
}

func validateWeeks(ds plan.Dataset, snap *plan.Snapshot, cal plan.Calendar) error {
	seasonsByID := make(map[string]season.Season, len(ds.Seasons))
	for _, s := range ds.Seasons {
		seasonsByID[s.ID] = s
	}

	seen := make(map[string]struct{}, len(ds.Weeks))
	for _, wk := range ds.Weeks {
		if wk.ID == "" {
			return fmt.Errorf("%w: week with empty id", ErrInvalidDataset)
		}
		if _, dup := seen[wk.ID]; dup {
			return fmt.Errorf("%w: duplicate week id %s", ErrInvalidDataset, wk.ID)
		}
		seen[wk.ID] = struct{}{}

		if wk.StartDate.IsZero() {
			return fmt.Errorf("%w: week=%s has no start date", ErrInvalidDataset, wk.ID)
		}
		if wk.StartDate.Weekday() != cal.WeekStart {
			return fmt.Errorf("%w: week=%s starts on %s, weeks must start on %s",
				ErrInvalidDataset, wk.ID, wk.StartDate.Weekday(), cal.WeekStart)
		}

		owner, ok := seasonsByID[wk.SeasonID]
		if !ok {
			return fmt.Errorf("%w: week=%s references missing season %q", ErrInvalidDataset, wk.ID, wk.SeasonID)
		}
		if !containsID(owner.WeekIDs, wk.ID) {
			return fmt.Errorf("%w: week=%s names season %s, but that season does not list it", ErrInvalidDataset, wk.ID, owner.ID)
		}

		blk, ok := snap.BlockByID(wk.BlockID)
		if !ok {
			return fmt.Errorf("%w: week=%s references missing block %q", ErrInvalidDataset, wk.ID, wk.BlockID)
		}
		if !containsID(blk.WeekIDs, wk.ID) {
			return fmt.Errorf("%w: week=%s names block %s, but that block does not list it", ErrInvalidDataset, wk.ID, blk.ID)
		}

		if err := week.ValidateDayMap(wk.Workouts); err != nil {
			return fmt.Errorf("%w: week=%s %v", ErrInvalidDataset, wk.ID, err)
		}
		for _, dayKey := range week.DayKeys {
			assignment := wk.Workouts[dayKey]
			if week.IsRest(assignment) {
				continue
			}
			if _, err := resolveReference(snap, assignment); err != nil {
				return fmt.Errorf("%w: week=%s day=%s: %v", ErrInvalidDataset, wk.ID, dayKey, err)
			}
		}
	}

	return nil
}

func validateSeasons(seasons []season.Season, snap *plan.Snapshot, cal plan.Calendar) error {
	tz := cal.TimezoneName()

	seen := make(map[string]struct{}, len(seasons))
	for _, s := range seasons {
		if s.ID == "" || s.Name == "" {
			return fmt.Errorf("%w: season=%q must have an id and a name", ErrInvalidDataset, s.ID)
		}
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("%w: duplicate season id %s", ErrInvalidDataset, s.ID)
		}
		seen[s.ID] = struct{}{}

		if s.Timezone != tz {
			return fmt.Errorf("%w: season=%s declares timezone %q, system zone is %q", ErrInvalidDataset, s.ID, s.Timezone, tz)
		}
		if !s.StartDate.Before(s.EndDate) {
			return fmt.Errorf("%w: season=%s start date %s is not before end date %s",
				ErrInvalidDataset, s.ID, s.StartDate, s.EndDate)
		}
		if len(s.WeekIDs) == 0 {
			return fmt.Errorf("%w: season=%s has no weeks", ErrInvalidDataset, s.ID)
		}

		var prev *week.Week
		for _, weekID := range s.WeekIDs {
			wk, ok := snap.WeekByID(weekID)
			if !ok {
				return fmt.Errorf("%w: season=%s references missing week %q", ErrInvalidDataset, s.ID, weekID)
			}
			if prev != nil && !prev.StartDate.Before(wk.StartDate) {
				return fmt.Errorf("%w: season=%s weeks %s and %s are not strictly chronological",
					ErrInvalidDataset, s.ID, prev.ID, wk.ID)
			}
			if wk.StartDate.Before(s.StartDate) || wk.EndDate().After(s.EndDate) {
				return fmt.Errorf("%w: season=%s week=%s window %s..%s escapes season range %s..%s",
					ErrInvalidDataset, s.ID, wk.ID, wk.StartDate, wk.EndDate(), s.StartDate, s.EndDate)
			}
			current := wk
			prev = &current
		}
	}

	return nil
}

func validateBlocks(ds plan.Dataset, snap *plan.Snapshot) error {
	seasonsByID := make(map[string]season.Season, len(ds.Seasons))
	for _, s := range ds.Seasons {
		seasonsByID[s.ID] = s
	}

	seen := make(map[string]struct{}, len(ds.Blocks))
	for _, b := range ds.Blocks {
		if b.ID == "" {
			return fmt.Errorf("%w: block with empty id", ErrInvalidDataset)
		}
		if _, dup := seen[b.ID]; dup {
			return fmt.Errorf("%w: duplicate block id %s", ErrInvalidDataset, b.ID)
		}
		seen[b.ID] = struct{}{}

		if len(b.WeekIDs) == 0 {
			return fmt.Errorf("%w: block=%s has no weeks", ErrInvalidDataset, b.ID)
		}

		var prev *week.Week
		ownerSeasonID := ""
		for _, weekID := range b.WeekIDs {
			wk, ok := snap.WeekByID(weekID)
			if !ok {
				return fmt.Errorf("%w: block=%s references missing week %q", ErrInvalidDataset, b.ID, weekID)
			}
			if prev != nil && !prev.StartDate.Before(wk.StartDate) {
				return fmt.Errorf("%w: block=%s weeks %s and %s are not strictly chronological",
					ErrInvalidDataset, b.ID, prev.ID, wk.ID)
			}
			if ownerSeasonID == "" {
				ownerSeasonID = wk.SeasonID
			} else if wk.SeasonID != ownerSeasonID {
				return fmt.Errorf("%w: block=%s spans seasons %s and %s", ErrInvalidDataset, b.ID, ownerSeasonID, wk.SeasonID)
			}
			if wk.BlockID != b.ID {
				return fmt.Errorf("%w: block=%s lists week %s, but that week names block %q",
					ErrInvalidDataset, b.ID, wk.ID, wk.BlockID)
			}
			current := wk
			prev = &current
		}

		owner, ok := seasonsByID[ownerSeasonID]
		if !ok {
			return fmt.Errorf("%w: block=%s belongs to missing season %q", ErrInvalidDataset, b.ID, ownerSeasonID)
		}
		for _, weekID := range b.WeekIDs {
			if !containsID(owner.WeekIDs, weekID) {
				return fmt.Errorf("%w: block=%s week %s is not listed by season %s", ErrInvalidDataset, b.ID, weekID, owner.ID)
			}
		}
	}

	return nil
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
