package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerCalendarRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/calendar/day", handler.GetCalendarDay)
	mux.HandleFunc("GET /v1/seasons/active", handler.GetActiveSeason)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalAPIToken string) {
	mux.Handle("POST /v1/internal/snapshot/reload", RequireInternalToken(internalAPIToken, http.HandlerFunc(handler.ReloadSnapshot)))
	mux.Handle("POST /v1/internal/snapshot/validate", RequireInternalToken(internalAPIToken, http.HandlerFunc(handler.ValidateSnapshot)))
}
