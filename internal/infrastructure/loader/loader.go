// Package loader reads dataset snapshots from a directory of JSON
// documents. All shape validation and civil-date parsing happens here, at
// the boundary, so the resolution engine only ever sees strongly-typed
// records.
package loader

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"

	"github.com/trailforge/plancal/internal/domain/block"
	"github.com/trailforge/plancal/internal/domain/civil"
	"github.com/trailforge/plancal/internal/domain/plan"
	"github.com/trailforge/plancal/internal/domain/season"
	"github.com/trailforge/plancal/internal/domain/week"
	"github.com/trailforge/plancal/internal/domain/workout"
	"github.com/trailforge/plancal/internal/platform/logging"
)

const (
	seasonsFile  = "seasons.json"
	blocksFile   = "blocks.json"
	weeksFile    = "weeks.json"
	workoutsFile = "workouts.json"

	defaultDecodeWorkers = 8
)

// FileSource loads the four collections from dir. Workout documents are the
// bulky part of a snapshot, so they decode on a worker pool.
type FileSource struct {
	dir      string
	workers  int
	logger   *logging.Logger
	validate *validator.Validate
}

func NewFileSource(dir string, workers int, logger *logging.Logger) *FileSource {
	if workers < 1 {
		workers = defaultDecodeWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &FileSource{
		dir:      dir,
		workers:  workers,
		logger:   logger,
		validate: validator.New(),
	}
}

func (f *FileSource) Load(ctx context.Context) (plan.Dataset, error) {
	seasons, err := f.loadSeasons()
	if err != nil {
		return plan.Dataset{}, err
	}
	blocks, err := f.loadBlocks()
	if err != nil {
		return plan.Dataset{}, err
	}
	weeks, err := f.loadWeeks()
	if err != nil {
		return plan.Dataset{}, err
	}
	workouts, err := f.loadWorkouts(ctx)
	if err != nil {
		return plan.Dataset{}, err
	}

	f.logger.InfoContext(ctx, "dataset snapshot loaded from files",
		"dir", f.dir,
		"seasons", len(seasons),
		"blocks", len(blocks),
		"weeks", len(weeks),
		"workouts", len(workouts),
	)

	return plan.Dataset{Seasons: seasons, Blocks: blocks, Weeks: weeks, Workouts: workouts}, nil
}

func (f *FileSource) readCollection(name string, out any) error {
	path := filepath.Join(f.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		return crerr.Wrapf(err, "read snapshot collection %s", path)
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return crerr.Wrapf(err, "decode snapshot collection %s", path)
	}
	return nil
}

type seasonDoc struct {
	SeasonID  string   `json:"seasonId" validate:"required"`
	Name      string   `json:"name" validate:"required"`
	StartDate string   `json:"startDate" validate:"required"`
	EndDate   string   `json:"endDate" validate:"required"`
	Timezone  string   `json:"timezone" validate:"required"`
	WeekIDs   []string `json:"weekIds" validate:"required,min=1,dive,required"`
}

func (f *FileSource) loadSeasons() ([]season.Season, error) {
	var docs []seasonDoc
	if err := f.readCollection(seasonsFile, &docs); err != nil {
		return nil, err
	}

	out := make([]season.Season, 0, len(docs))
	for _, doc := range docs {
		if err := f.validate.Struct(doc); err != nil {
			return nil, crerr.Wrapf(err, "season %q has an invalid shape", doc.SeasonID)
		}
		start, err := civil.Parse(doc.StartDate)
		if err != nil {
			return nil, crerr.Wrapf(err, "season %q start date", doc.SeasonID)
		}
		end, err := civil.Parse(doc.EndDate)
		if err != nil {
			return nil, crerr.Wrapf(err, "season %q end date", doc.SeasonID)
		}
		out = append(out, season.Season{
			ID:        doc.SeasonID,
			Name:      doc.Name,
			StartDate: start,
			EndDate:   end,
			Timezone:  doc.Timezone,
			WeekIDs:   doc.WeekIDs,
		})
	}
	return out, nil
}

type blockDoc struct {
	BlockID string   `json:"blockId" validate:"required"`
	Name    string   `json:"name" validate:"required"`
	Intent  string   `json:"intent"`
	WeekIDs []string `json:"weekIds" validate:"required,min=1,dive,required"`
}

func (f *FileSource) loadBlocks() ([]block.Block, error) {
	var docs []blockDoc
	if err := f.readCollection(blocksFile, &docs); err != nil {
		return nil, err
	}

	out := make([]block.Block, 0, len(docs))
	for _, doc := range docs {
		if err := f.validate.Struct(doc); err != nil {
			return nil, crerr.Wrapf(err, "block %q has an invalid shape", doc.BlockID)
		}
		out = append(out, block.Block{
			ID:      doc.BlockID,
			Name:    doc.Name,
			Intent:  doc.Intent,
			WeekIDs: doc.WeekIDs,
		})
	}
	return out, nil
}

type weekDoc struct {
	WeekID    string            `json:"weekId" validate:"required"`
	SeasonID  string            `json:"seasonId" validate:"required"`
	BlockID   string            `json:"blockId" validate:"required"`
	StartDate string            `json:"startDate" validate:"required"`
	Workouts  map[string]string `json:"workouts" validate:"required,len=7"`
}

func (f *FileSource) loadWeeks() ([]week.Week, error) {
	var docs []weekDoc
	if err := f.readCollection(weeksFile, &docs); err != nil {
		return nil, err
	}

	out := make([]week.Week, 0, len(docs))
	for _, doc := range docs {
		if err := f.validate.Struct(doc); err != nil {
			return nil, crerr.Wrapf(err, "week %q has an invalid shape", doc.WeekID)
		}
		start, err := civil.Parse(doc.StartDate)
		if err != nil {
			return nil, crerr.Wrapf(err, "week %q start date", doc.WeekID)
		}
		out = append(out, week.Week{
			ID:        doc.WeekID,
			SeasonID:  doc.SeasonID,
			BlockID:   doc.BlockID,
			StartDate: start,
			Workouts:  doc.Workouts,
		})
	}
	return out, nil
}

type intervalDoc struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes" validate:"omitempty,min=1"`
	Effort          int    `json:"effort" validate:"required,min=1,max=10"`
	HeartRateZone   *int   `json:"heartRateZone" validate:"omitempty,min=1,max=5"`
	PowerZone       *int   `json:"powerZone" validate:"omitempty,min=1,max=7"`
}

type tierDoc struct {
	Intervals []intervalDoc `json:"intervals" validate:"required,min=1,dive"`
}

type workoutDoc struct {
	WorkoutID string             `json:"workoutId" validate:"required"`
	Version   int                `json:"version" validate:"required,min=1"`
	Status    string             `json:"status" validate:"required,oneof=draft published archived"`
	Title     string             `json:"title"`
	Tiers     map[string]tierDoc `json:"tiers"`
}

// loadWorkouts decodes the workout array element-by-element on an ants
// pool; the library is by far the largest collection in real snapshots.
func (f *FileSource) loadWorkouts(ctx context.Context) ([]workout.Workout, error) {
	var raws []json.RawMessage
	if err := f.readCollection(workoutsFile, &raws); err != nil {
		return nil, err
	}

	pool, err := ants.NewPool(f.workers)
	if err != nil {
		return nil, crerr.Wrap(err, "create decode worker pool")
	}
	defer pool.Release()

	out := make([]workout.Workout, len(raws))
	errs := make([]error, len(raws))

	var wg sync.WaitGroup
	for i := range raws {
		i := i
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			out[i], errs[i] = f.decodeWorkout(raws[i])
		})
		if submitErr != nil {
			wg.Done()
			errs[i] = crerr.Wrap(submitErr, "submit decode task")
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (f *FileSource) decodeWorkout(raw []byte) (workout.Workout, error) {
	var doc workoutDoc
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return workout.Workout{}, crerr.Wrap(err, "decode workout document")
	}
	if err := f.validate.Struct(doc); err != nil {
		return workout.Workout{}, crerr.Wrapf(err, "workout %q has an invalid shape", doc.WorkoutID)
	}

	tiers := make(map[workout.Tier]workout.Variant, len(doc.Tiers))
	for name, td := range doc.Tiers {
		tier, err := workout.ParseTier(name)
		if err != nil {
			return workout.Workout{}, crerr.Wrapf(err, "workout %q", doc.WorkoutID)
		}
		intervals := make([]workout.Interval, 0, len(td.Intervals))
		for _, iv := range td.Intervals {
			intervals = append(intervals, workout.Interval{
				Name:            iv.Name,
				DurationMinutes: iv.DurationMinutes,
				Effort:          iv.Effort,
				HeartRateZone:   iv.HeartRateZone,
				PowerZone:       iv.PowerZone,
			})
		}
		tiers[tier] = workout.Variant{Intervals: intervals}
	}

	return workout.Workout{
		ID:      doc.WorkoutID,
		Version: doc.Version,
		Status:  workout.Status(doc.Status),
		Title:   doc.Title,
		Tiers:   tiers,
	}, nil
}
