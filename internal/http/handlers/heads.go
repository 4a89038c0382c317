package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// HeadInitialize opens (or reuses) the campaign's aggregation head.
func (a *App) HeadInitialize(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")
	head, err := a.Gateway.InitializeHead(r.Context(), campaignID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, head)
}

// HeadStatus returns the campaign's current head, settled ones included.
func (a *App) HeadStatus(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")
	head, err := a.Gateway.GetHeadStatus(r.Context(), campaignID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, head)
}

// HeadClose stops the head from accepting donations. Idempotent.
func (a *App) HeadClose(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")
	head, err := a.Gateway.CloseHead(r.Context(), campaignID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, head)
}

// HeadSettle collapses the head into its terminal settled state and returns
// the minted settlement reference.
func (a *App) HeadSettle(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")
	ref, err := a.Gateway.SettleHead(r.Context(), campaignID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"settlement_ref": ref})
}
