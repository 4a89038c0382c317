package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// StatsRealtime is the polling read path. It never errors on an unknown
// campaign; pollers see zeros until the first donation.
func (a *App) StatsRealtime(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")
	stats, err := a.Gateway.RealTimeStats(r.Context(), campaignID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, stats)
}
