package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trailforge/plancal/internal/domain/civil"
	"github.com/trailforge/plancal/internal/domain/plan"
	"github.com/trailforge/plancal/internal/domain/season"
	"github.com/trailforge/plancal/internal/domain/workout"
	"github.com/trailforge/plancal/internal/platform/logging"
	"github.com/trailforge/plancal/internal/usecase"
)

const (
	reasonNoPlan  = "no_plan"
	reasonRestDay = "rest_day"
)

type Handler struct {
	calendarService *usecase.CalendarService
	snapshotService *usecase.SnapshotService
	calendar        plan.Calendar
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	calendarService *usecase.CalendarService,
	snapshotService *usecase.SnapshotService,
	calendar plan.Calendar,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		calendarService: calendarService,
		snapshotService: snapshotService,
		calendar:        calendar,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetCalendarDay resolves the workout of the day. Without a date query
// parameter it resolves "today" in the plan timezone. An empty data payload
// with a reason covers dates outside any season, gap weeks, and rest days.
func (h *Handler) GetCalendarDay(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCalendarDay")
	defer span.End()

	query := dayQueryRequest{
		Date: strings.TrimSpace(r.URL.Query().Get("date")),
		Tier: strings.TrimSpace(r.URL.Query().Get("tier")),
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	date, err := h.resolveDateParam(ctx, query.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var tier workout.Tier
	if query.Tier != "" {
		tier, err = workout.ParseTier(query.Tier)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	day, err := h.calendarService.WorkoutOfDay(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve day failed", "date", date.String(), "error", err)
		writeError(ctx, w, err)
		return
	}
	if day == nil {
		writeSuccess(ctx, w, http.StatusOK, emptyDayDTO(ctx, date, h.dayReason(ctx, date)))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resolvedDayToDTO(ctx, day, tier))
}

// GetActiveSeason resolves the season covering the date, defaulting to
// today in the plan timezone.
func (h *Handler) GetActiveSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetActiveSeason")
	defer span.End()

	query := dayQueryRequest{Date: strings.TrimSpace(r.URL.Query().Get("date"))}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	date, err := h.resolveDateParam(ctx, query.Date)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	active, err := h.calendarService.ActiveSeason(ctx, date)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve active season failed", "date", date.String(), "error", err)
		writeError(ctx, w, err)
		return
	}
	if active == nil {
		writeSuccess(ctx, w, http.StatusOK, activeSeasonDTO{
			Date:   date.String(),
			Reason: reasonNoPlan,
		})
		return
	}

	dto := seasonToDTO(ctx, *active)
	writeSuccess(ctx, w, http.StatusOK, activeSeasonDTO{
		Date:   date.String(),
		Season: &dto,
	})
}

// ReloadSnapshot pulls a fresh dataset from the configured source and swaps
// it in as the new generation.
func (h *Handler) ReloadSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReloadSnapshot")
	defer span.End()

	snap, err := h.snapshotService.Reload(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "snapshot reload failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	ds := snap.Dataset()
	writeSuccess(ctx, w, http.StatusOK, snapshotReloadDTO{
		Generation: snap.Generation(),
		Seasons:    len(ds.Seasons),
		Blocks:     len(ds.Blocks),
		Weeks:      len(ds.Weeks),
		Workouts:   len(ds.Workouts),
	})
}

// ValidateSnapshot runs the invariant pass against the currently published
// snapshot without swapping anything.
func (h *Handler) ValidateSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateSnapshot")
	defer span.End()

	if err := h.snapshotService.Validate(ctx); err != nil {
		h.logger.WarnContext(ctx, "snapshot validation failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]bool{"valid": true})
}

func (h *Handler) resolveDateParam(ctx context.Context, raw string) (civil.Date, error) {
	if raw == "" {
		today, err := h.calendar.DateOf(time.Now())
		if err != nil {
			return civil.Date{}, fmt.Errorf("%w: resolve today: %v", usecase.ErrInvalidInput, err)
		}
		return today, nil
	}
	date, err := civil.Parse(raw)
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: query parameter date: %v", usecase.ErrInvalidInput, err)
	}
	return date, nil
}

// dayReason distinguishes a rest day from a date with no plan at all. A rest
// day still has an active season and a containing week.
func (h *Handler) dayReason(ctx context.Context, date civil.Date) string {
	wk, _, err := h.calendarService.WeekForDate(ctx, date)
	if err != nil || wk == nil {
		return reasonNoPlan
	}
	return reasonRestDay
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type dayQueryRequest struct {
	Date string `validate:"omitempty,datetime=2006-01-02"`
	Tier string `validate:"omitempty,oneof=MED LRG XL"`
}

type activeSeasonDTO struct {
	Date   string     `json:"date"`
	Season *seasonDTO `json:"season,omitempty"`
	Reason string     `json:"reason,omitempty"`
}

type seasonDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Timezone  string `json:"timezone"`
	Weeks     int    `json:"weeks"`
}

type dayDTO struct {
	Date        string                   `json:"date"`
	DayKey      string                   `json:"dayKey,omitempty"`
	Reason      string                   `json:"reason,omitempty"`
	Season      *seasonDTO               `json:"season,omitempty"`
	Week        *weekDTO                 `json:"week,omitempty"`
	Block       *blockDTO                `json:"block,omitempty"`
	Workout     *workoutDTO              `json:"workout,omitempty"`
	Tiers       map[string]tierResultDTO `json:"tiers,omitempty"`
	Requested   string                   `json:"requestedTier,omitempty"`
	RequestedAt *tierResultDTO           `json:"requestedVariant,omitempty"`
}

type weekDTO struct {
	ID        string `json:"id"`
	Index     int    `json:"index"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type blockDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Intent string `json:"intent"`
}

type workoutDTO struct {
	ID      string `json:"id"`
	Version int    `json:"version"`
	Status  string `json:"status"`
	Title   string `json:"title"`
}

type tierResultDTO struct {
	SourceTier string        `json:"sourceTier"`
	Intervals  []intervalDTO `json:"intervals"`
}

type intervalDTO struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	Effort          int    `json:"effort"`
	HeartRateZone   *int   `json:"heartRateZone,omitempty"`
	PowerZone       *int   `json:"powerZone,omitempty"`
}

type snapshotReloadDTO struct {
	Generation uint64 `json:"generation"`
	Seasons    int    `json:"seasons"`
	Blocks     int    `json:"blocks"`
	Weeks      int    `json:"weeks"`
	Workouts   int    `json:"workouts"`
}

func emptyDayDTO(ctx context.Context, date civil.Date, reason string) dayDTO {
	return dayDTO{
		Date:   date.String(),
		Reason: reason,
	}
}

func seasonToDTO(ctx context.Context, v season.Season) seasonDTO {
	return seasonDTO{
		ID:        v.ID,
		Name:      v.Name,
		StartDate: v.StartDate.String(),
		EndDate:   v.EndDate.String(),
		Timezone:  v.Timezone,
		Weeks:     len(v.WeekIDs),
	}
}

func resolvedDayToDTO(ctx context.Context, day *plan.ResolvedDay, requested workout.Tier) dayDTO {
	seasonOut := seasonToDTO(ctx, day.Season)

	tiers := make(map[string]tierResultDTO, len(day.Tiers))
	for tier, variant := range day.Tiers {
		tiers[string(tier)] = tierResultDTO{
			SourceTier: string(day.TierSources[tier]),
			Intervals:  intervalsToDTO(ctx, variant.Intervals),
		}
	}

	out := dayDTO{
		Date:   day.Date.String(),
		DayKey: day.DayKey,
		Season: &seasonOut,
		Week: &weekDTO{
			ID:        day.Week.ID,
			Index:     day.WeekIndex,
			StartDate: day.Week.StartDate.String(),
			EndDate:   day.Week.EndDate().String(),
		},
		Block: &blockDTO{
			ID:     day.Block.ID,
			Name:   day.Block.Name,
			Intent: day.Block.Intent,
		},
		Workout: &workoutDTO{
			ID:      day.Workout.ID,
			Version: day.Workout.Version,
			Status:  string(day.Workout.Status),
			Title:   day.Workout.Title,
		},
		Tiers: tiers,
	}

	if requested != "" {
		out.Requested = string(requested)
		if result, ok := tiers[string(requested)]; ok {
			out.RequestedAt = &result
		}
	}

	return out
}

func intervalsToDTO(ctx context.Context, intervals []workout.Interval) []intervalDTO {
	items := make([]intervalDTO, 0, len(intervals))
	for _, interval := range intervals {
		items = append(items, intervalDTO{
			Name:            interval.Name,
			DurationMinutes: interval.DurationMinutes,
			Effort:          interval.Effort,
			HeartRateZone:   interval.HeartRateZone,
			PowerZone:       interval.PowerZone,
		})
	}
	return items
}
