package http

import (
	"encoding/json"
	"net/http"

	"traefik-monitor/internal/models"
	"traefik-monitor/internal/shared/loggers"
	"traefik-monitor/internal/stores"
)

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleStats serves the latest aggregate snapshot as JSON. Before the first
// tick has published anything it serves an empty snapshot rather than an
// error: "no data yet" is a normal state for this monitor.
func handleStats(snapshots *stores.SnapshotStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := snapshots.Latest()
		if snap == nil {
			snap = &models.StatsSnapshot{}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(snap); err != nil {
			loggers.Ctx(r.Context()).Error().Err(err).Msg("failed to encode stats response")
		}
	}
}
