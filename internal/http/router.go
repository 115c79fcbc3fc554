package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"traefik-monitor/internal/shared/loggers"
	"traefik-monitor/internal/shared/metrics"
	"traefik-monitor/internal/stores"
)

// NewRouter creates the operational HTTP router. The endpoints are read-only:
// they observe the monitor, they never steer it.
func NewRouter(snapshots *stores.SnapshotStore, httpLogger loggers.Logger) http.Handler {
	router := chi.NewRouter()
	setupMiddleware(router, httpLogger)

	router.Get("/healthz", handleHealthz)
	router.Get("/stats", handleStats(snapshots))
	router.Get("/metrics", metrics.PromHTTP.Handler().ServeHTTP)

	return router
}
