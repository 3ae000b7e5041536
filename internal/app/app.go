package app

import (
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/trailforge/plancal/internal/config"
	"github.com/trailforge/plancal/internal/domain/plan"
	"github.com/trailforge/plancal/internal/infrastructure/loader"
	"github.com/trailforge/plancal/internal/infrastructure/repository/memory"
	"github.com/trailforge/plancal/internal/infrastructure/repository/postgres"
	"github.com/trailforge/plancal/internal/interfaces/httpapi"
	"github.com/trailforge/plancal/internal/platform/cache"
	"github.com/trailforge/plancal/internal/platform/logging"
	"github.com/trailforge/plancal/internal/usecase"
)

// App bundles the wired service graph so the binary can run the initial
// snapshot load before serving traffic.
type App struct {
	Server          *http.Server
	SnapshotService *usecase.SnapshotService
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	calendar, err := plan.NewCalendar(cfg.Timezone, cfg.WeekStart)
	if err != nil {
		return nil, fmt.Errorf("build calendar: %w", err)
	}

	source, err := newSnapshotSource(cfg, logger)
	if err != nil {
		return nil, err
	}

	var cacheStore *cache.Store
	if cfg.CacheEnabled {
		cacheStore = cache.NewStore(cfg.CacheTTL)
	}

	store := memory.NewSnapshotStore(calendar)
	calendarSvc := usecase.NewCalendarService(store, cacheStore, logger)
	snapshotSvc := usecase.NewSnapshotService(source, store, cacheStore, calendar, cfg.ValidateOnLoad, logger)

	handler := httpapi.NewHandler(calendarSvc, snapshotSvc, calendar, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalAPIToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:          server,
		SnapshotService: snapshotSvc,
	}, nil
}

func newSnapshotSource(cfg config.Config, logger *logging.Logger) (usecase.SnapshotSource, error) {
	switch cfg.DatasetSource {
	case config.DatasetSourceSeed:
		return memory.NewSeedSource(), nil
	case config.DatasetSourceFile:
		return loader.NewFileSource(cfg.SnapshotDir, cfg.SnapshotDecodeWorkers, logger), nil
	case config.DatasetSourcePostgres:
		db, err := otelsqlx.Connect("postgres", cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return postgres.NewDatasetRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported dataset source %q", cfg.DatasetSource)
	}
}
