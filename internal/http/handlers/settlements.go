package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gateway/internal/domain"
)

// SettlementsList returns archived settled epochs for a campaign, newest
// first. When no archive store is configured the list is empty.
func (a *App) SettlementsList(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")
	if a.Archive == nil {
		a.json(w, http.StatusOK, map[string]any{"items": []domain.Head{}})
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	items, err := a.Archive.ListSettlements(r.Context(), campaignID, limit)
	if err != nil {
		a.Logger.Error().Err(err).Str("campaign_id", campaignID).Msg("list settlements failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load settlements")
		return
	}
	if items == nil {
		items = []domain.Head{}
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
