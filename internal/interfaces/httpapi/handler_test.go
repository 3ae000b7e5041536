package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/trailforge/plancal/internal/domain/plan"
	"github.com/trailforge/plancal/internal/infrastructure/repository/memory"
	"github.com/trailforge/plancal/internal/platform/cache"
	"github.com/trailforge/plancal/internal/platform/logging"
	"github.com/trailforge/plancal/internal/usecase"
)

const testInternalToken = "internal-test-token"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cal, err := plan.NewCalendar("America/Los_Angeles", "monday")
	if err != nil {
		t.Fatalf("build calendar: %v", err)
	}

	store := memory.NewSnapshotStore(cal)
	store.Swap(memory.SeedDataset())

	logger := logging.NewNop()
	cacheStore := cache.NewStore(time.Minute)
	calendarSvc := usecase.NewCalendarService(store, cacheStore, logger)
	snapshotSvc := usecase.NewSnapshotService(memory.NewSeedSource(), store, cacheStore, cal, true, logger)

	handler := NewHandler(calendarSvc, snapshotSvc, cal, logger)
	return NewRouter(handler, logger, []string{"*"}, testInternalToken)
}

func doRequest(t *testing.T, router http.Handler, method, target, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("X-Internal-Token", token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return rec, body
}

func dataObject(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object in response, got %v", body)
	}
	return data
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)
	rec, body := doRequest(t, router, http.MethodGet, "/healthz", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data := dataObject(t, body)
	if data["status"] != "ok" {
		t.Fatalf("expected status ok, got %v", data["status"])
	}
}

func TestGetCalendarDay_ScheduledWorkout(t *testing.T) {
	router := newTestRouter(t)
	rec, body := doRequest(t, router, http.MethodGet, "/v1/calendar/day?date=2026-02-01&tier=XL", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data := dataObject(t, body)

	if data["date"] != "2026-02-01" {
		t.Fatalf("expected date 2026-02-01, got %v", data["date"])
	}
	if data["dayKey"] != "sunday" {
		t.Fatalf("expected dayKey sunday, got %v", data["dayKey"])
	}

	wo, ok := data["workout"].(map[string]any)
	if !ok {
		t.Fatalf("expected workout object, got %v", data["workout"])
	}
	if wo["id"] != "workout-b" {
		t.Fatalf("expected workout-b, got %v", wo["id"])
	}

	tiers, ok := data["tiers"].(map[string]any)
	if !ok {
		t.Fatalf("expected tiers map, got %v", data["tiers"])
	}
	xl, ok := tiers["XL"].(map[string]any)
	if !ok {
		t.Fatalf("expected XL tier result, got %v", tiers["XL"])
	}
	// workout-b has no XL variant; the LRG substitution must be reported.
	if xl["sourceTier"] != "LRG" {
		t.Fatalf("expected XL sourced from LRG, got %v", xl["sourceTier"])
	}

	if data["requestedTier"] != "XL" {
		t.Fatalf("expected requestedTier XL, got %v", data["requestedTier"])
	}
	if _, ok := data["requestedVariant"]; !ok {
		t.Fatalf("expected requestedVariant in response")
	}
}

func TestGetCalendarDay_RestDay(t *testing.T) {
	router := newTestRouter(t)
	rec, body := doRequest(t, router, http.MethodGet, "/v1/calendar/day?date=2026-02-03", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data := dataObject(t, body)
	if data["reason"] != "rest_day" {
		t.Fatalf("expected reason rest_day, got %v", data["reason"])
	}
	if _, ok := data["workout"]; ok {
		t.Fatalf("did not expect a workout on a rest day")
	}
}

func TestGetCalendarDay_NoPlan(t *testing.T) {
	router := newTestRouter(t)
	rec, body := doRequest(t, router, http.MethodGet, "/v1/calendar/day?date=2026-02-20", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data := dataObject(t, body)
	if data["reason"] != "no_plan" {
		t.Fatalf("expected reason no_plan, got %v", data["reason"])
	}
}

func TestGetCalendarDay_InvalidParams(t *testing.T) {
	router := newTestRouter(t)

	for _, target := range []string{
		"/v1/calendar/day?date=02/01/2026",
		"/v1/calendar/day?date=2026-2-1",
		"/v1/calendar/day?date=2026-02-01&tier=HUGE",
	} {
		rec, _ := doRequest(t, router, http.MethodGet, target, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400 for %s, got %d", target, rec.Code)
		}
	}
}

func TestGetActiveSeason(t *testing.T) {
	router := newTestRouter(t)
	rec, body := doRequest(t, router, http.MethodGet, "/v1/seasons/active?date=2026-03-05", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data := dataObject(t, body)
	season, ok := data["season"].(map[string]any)
	if !ok {
		t.Fatalf("expected season object, got %v", data["season"])
	}
	if season["id"] != "season-2026-spring" {
		t.Fatalf("expected season-2026-spring, got %v", season["id"])
	}
}

func TestGetActiveSeason_NoCoveringSeason(t *testing.T) {
	router := newTestRouter(t)
	rec, body := doRequest(t, router, http.MethodGet, "/v1/seasons/active?date=2026-02-20", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data := dataObject(t, body)
	if data["reason"] != "no_plan" {
		t.Fatalf("expected reason no_plan, got %v", data["reason"])
	}
	if _, ok := data["season"]; ok {
		t.Fatalf("did not expect season object")
	}
}

func TestReloadSnapshot_RequiresToken(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doRequest(t, router, http.MethodPost, "/v1/internal/snapshot/reload", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}

	rec, body := doRequest(t, router, http.MethodPost, "/v1/internal/snapshot/reload", testInternalToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data := dataObject(t, body)
	if data["generation"] == nil {
		t.Fatalf("expected generation in reload response")
	}
}

func TestValidateSnapshot(t *testing.T) {
	router := newTestRouter(t)

	rec, body := doRequest(t, router, http.MethodPost, "/v1/internal/snapshot/validate", testInternalToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data := dataObject(t, body)
	if data["valid"] != true {
		t.Fatalf("expected valid=true, got %v", data["valid"])
	}
}
