package usecase

import (
	"context"
	"fmt"

	"github.com/trailforge/plancal/internal/domain/plan"
	"github.com/trailforge/plancal/internal/platform/cache"
	"github.com/trailforge/plancal/internal/platform/logging"
)

// SnapshotSource loads a raw dataset from wherever published plans live
// (seed, snapshot directory, postgres).
type SnapshotSource interface {
	Load(ctx context.Context) (plan.Dataset, error)
}

// SnapshotStore owns the current snapshot and swaps in new generations.
type SnapshotStore interface {
	SnapshotProvider
	Swap(ds plan.Dataset) *plan.Snapshot
}

// SnapshotService loads, validates, and publishes dataset snapshots. It is
// the single writer in the system; everything downstream of a published
// snapshot is read-only.
type SnapshotService struct {
	source         SnapshotSource
	store          SnapshotStore
	cache          *cache.Store
	calendar       plan.Calendar
	validateOnLoad bool
	logger         *logging.Logger
}

func NewSnapshotService(
	source SnapshotSource,
	store SnapshotStore,
	cacheStore *cache.Store,
	calendar plan.Calendar,
	validateOnLoad bool,
	logger *logging.Logger,
) *SnapshotService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SnapshotService{
		source:         source,
		store:          store,
		cache:          cacheStore,
		calendar:       calendar,
		validateOnLoad: validateOnLoad,
		logger:         logger,
	}
}

// Reload pulls a fresh dataset from the source, optionally runs the
// invariant pass, and swaps it in as the new generation. The resolution
// cache is cleared so no entry from a previous generation survives the swap.
func (s *SnapshotService) Reload(ctx context.Context) (*plan.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.Reload")
	defer span.End()

	ds, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset snapshot: %w", err)
	}

	if s.validateOnLoad {
		if err := ValidateDataset(ds, s.calendar); err != nil {
			return nil, err
		}
	}

	snap := s.store.Swap(ds)
	if s.cache != nil {
		s.cache.DeletePrefix(ctx, "gen:")
	}

	s.logger.InfoContext(ctx, "dataset snapshot published",
		"generation", snap.Generation(),
		"seasons", len(ds.Seasons),
		"blocks", len(ds.Blocks),
		"weeks", len(ds.Weeks),
		"workouts", len(ds.Workouts),
	)

	return snap, nil
}

// Validate runs the invariant pass against the currently published
// snapshot without swapping anything.
func (s *SnapshotService) Validate(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.Validate")
	defer span.End()

	snap, err := s.store.Current(ctx)
	if err != nil {
		return err
	}

	return ValidateDataset(snap.Dataset(), snap.Calendar())
}
