// Package postgres reads published plan datasets out of the authoring
// database. It is a read-only snapshot source: resolution never writes.
package postgres

import (
	"context"
	"fmt"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"

	"github.com/trailforge/plancal/internal/domain/block"
	"github.com/trailforge/plancal/internal/domain/civil"
	"github.com/trailforge/plancal/internal/domain/plan"
	"github.com/trailforge/plancal/internal/domain/season"
	"github.com/trailforge/plancal/internal/domain/week"
	"github.com/trailforge/plancal/internal/domain/workout"
)

// Row order is fixed so two loads of the same data produce identical
// datasets; season/block week ordering itself lives in the week_ids arrays.
const (
	selectSeasons = `SELECT * FROM plan_seasons ORDER BY start_date, public_id`
	selectBlocks  = `SELECT * FROM plan_blocks ORDER BY public_id`
	selectWeeks   = `SELECT * FROM plan_weeks ORDER BY start_date, public_id`
	selectWorkout = `SELECT * FROM plan_workouts ORDER BY public_id, version`
)

type DatasetRepository struct {
	db *sqlx.DB
}

func NewDatasetRepository(db *sqlx.DB) *DatasetRepository {
	return &DatasetRepository{db: db}
}

// Load reads all four collections in one snapshot pass.
func (r *DatasetRepository) Load(ctx context.Context) (plan.Dataset, error) {
	seasons, err := r.loadSeasons(ctx)
	if err != nil {
		return plan.Dataset{}, err
	}
	blocks, err := r.loadBlocks(ctx)
	if err != nil {
		return plan.Dataset{}, err
	}
	weeks, err := r.loadWeeks(ctx)
	if err != nil {
		return plan.Dataset{}, err
	}
	workouts, err := r.loadWorkouts(ctx)
	if err != nil {
		return plan.Dataset{}, err
	}

	return plan.Dataset{Seasons: seasons, Blocks: blocks, Weeks: weeks, Workouts: workouts}, nil
}

func (r *DatasetRepository) loadSeasons(ctx context.Context) ([]season.Season, error) {
	var rows []seasonRow
	if err := r.db.SelectContext(ctx, &rows, selectSeasons); err != nil {
		return nil, fmt.Errorf("select plan seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		var weekIDs []string
		if err := sonic.Unmarshal(row.WeekIDs, &weekIDs); err != nil {
			return nil, fmt.Errorf("decode week ids for season %s: %w", row.PublicID, err)
		}
		out = append(out, season.Season{
			ID:        row.PublicID,
			Name:      row.Name,
			StartDate: dateOf(row.StartDate),
			EndDate:   dateOf(row.EndDate),
			Timezone:  row.Timezone,
			WeekIDs:   weekIDs,
		})
	}
	return out, nil
}

func (r *DatasetRepository) loadBlocks(ctx context.Context) ([]block.Block, error) {
	var rows []blockRow
	if err := r.db.SelectContext(ctx, &rows, selectBlocks); err != nil {
		return nil, fmt.Errorf("select plan blocks: %w", err)
	}

	out := make([]block.Block, 0, len(rows))
	for _, row := range rows {
		var weekIDs []string
		if err := sonic.Unmarshal(row.WeekIDs, &weekIDs); err != nil {
			return nil, fmt.Errorf("decode week ids for block %s: %w", row.PublicID, err)
		}
		out = append(out, block.Block{
			ID:      row.PublicID,
			Name:    row.Name,
			Intent:  row.Intent,
			WeekIDs: weekIDs,
		})
	}
	return out, nil
}

func (r *DatasetRepository) loadWeeks(ctx context.Context) ([]week.Week, error) {
	var rows []weekRow
	if err := r.db.SelectContext(ctx, &rows, selectWeeks); err != nil {
		return nil, fmt.Errorf("select plan weeks: %w", err)
	}

	out := make([]week.Week, 0, len(rows))
	for _, row := range rows {
		var workouts map[string]string
		if err := sonic.Unmarshal(row.Workouts, &workouts); err != nil {
			return nil, fmt.Errorf("decode day map for week %s: %w", row.PublicID, err)
		}
		out = append(out, week.Week{
			ID:        row.PublicID,
			SeasonID:  row.SeasonID,
			BlockID:   row.BlockID,
			StartDate: dateOf(row.StartDate),
			Workouts:  workouts,
		})
	}
	return out, nil
}

func (r *DatasetRepository) loadWorkouts(ctx context.Context) ([]workout.Workout, error) {
	var rows []workoutRow
	if err := r.db.SelectContext(ctx, &rows, selectWorkout); err != nil {
		return nil, fmt.Errorf("select plan workouts: %w", err)
	}

	out := make([]workout.Workout, 0, len(rows))
	for _, row := range rows {
		var tiers map[workout.Tier]workout.Variant
		if len(row.Tiers) > 0 {
			if err := sonic.Unmarshal(row.Tiers, &tiers); err != nil {
				return nil, fmt.Errorf("decode tiers for workout %s@v%d: %w", row.PublicID, row.Version, err)
			}
		}
		out = append(out, workout.Workout{
			ID:      row.PublicID,
			Version: row.Version,
			Status:  workout.Status(row.Status),
			Title:   row.Title,
			Tiers:   tiers,
		})
	}
	return out, nil
}

// dateOf converts a DATE column value to a civil date. The driver returns
// DATE values at UTC midnight.
func dateOf(t time.Time) civil.Date {
	year, month, day := t.UTC().Date()
	return civil.Date{Year: year, Month: month, Day: day}
}
