package usecase

import (
	"context"
	"fmt"

	"github.com/trailforge/plancal/internal/domain/civil"
	"github.com/trailforge/plancal/internal/domain/plan"
	"github.com/trailforge/plancal/internal/domain/season"
	"github.com/trailforge/plancal/internal/domain/week"
	"github.com/trailforge/plancal/internal/platform/cache"
	"github.com/trailforge/plancal/internal/platform/logging"
)

// SnapshotProvider hands out the current immutable dataset snapshot.
type SnapshotProvider interface {
	Current(ctx context.Context) (*plan.Snapshot, error)
}

type CalendarService struct {
	snapshots SnapshotProvider
	cache     *cache.Store
	logger    *logging.Logger
}

// cachedDay wraps a resolution result for the cache so that a legitimate
// nil day is distinguishable from a cache miss.
type cachedDay struct {
	day *plan.ResolvedDay
}

func NewCalendarService(snapshots SnapshotProvider, store *cache.Store, logger *logging.Logger) *CalendarService {
	if logger == nil {
		logger = logging.Default()
	}
	return &CalendarService{
		snapshots: snapshots,
		cache:     store,
		logger:    logger,
	}
}

// ActiveSeason resolves the season covering the date, or nil when the date
// falls outside every season.
func (s *CalendarService) ActiveSeason(ctx context.Context, date civil.Date) (*season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CalendarService.ActiveSeason")
	defer span.End()

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}

	return ResolveActiveSeason(snap, date)
}

// WeekForDate resolves the week window containing the date within its
// active season, with the week's zero-based index in the season.
func (s *CalendarService) WeekForDate(ctx context.Context, date civil.Date) (*week.Week, int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CalendarService.WeekForDate")
	defer span.End()

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, -1, err
	}

	activeSeason, err := ResolveActiveSeason(snap, date)
	if err != nil {
		return nil, -1, err
	}
	if activeSeason == nil {
		return nil, -1, nil
	}

	return ResolveWeekForDate(snap, *activeSeason, date)
}

// WorkoutOfDay answers the full per-date query. Results are cached per
// snapshot generation; a swap starts a fresh key space, so no stale plan
// ever leaks across generations.
func (s *CalendarService) WorkoutOfDay(ctx context.Context, date civil.Date) (*plan.ResolvedDay, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CalendarService.WorkoutOfDay")
	defer span.End()

	snap, err := s.snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache == nil {
		return ResolveWorkoutOfDay(snap, date)
	}

	key := fmt.Sprintf("gen:%d:day:%s", snap.Generation(), date)
	value, err := s.cache.GetOrLoad(ctx, key, func(context.Context) (any, error) {
		day, resolveErr := ResolveWorkoutOfDay(snap, date)
		if resolveErr != nil {
			return nil, resolveErr
		}
		return cachedDay{day: day}, nil
	})
	if err != nil {
		return nil, err
	}

	entry, ok := value.(cachedDay)
	if !ok {
		s.logger.WarnContext(ctx, "unexpected cache entry type, resolving directly", "key", key)
		return ResolveWorkoutOfDay(snap, date)
	}

	return entry.day, nil
}
