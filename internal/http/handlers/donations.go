package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"gateway/internal/hydra"
	"gateway/internal/middleware"
)

type donationRequest struct {
	DonorAddress string `json:"donor_address"`
	DonorName    string `json:"donor_name"`
	Amount       int64  `json:"amount"`
}

// DonationsCreate records one donation against the campaign's current head.
// Callers may supply an Idempotency-Key header; a retried key returns the
// originally recorded donation instead of double counting.
func (a *App) DonationsCreate(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")

	var req donationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Amount <= 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "amount must be positive")
		return
	}

	donation, err := a.Gateway.ProcessDonation(r.Context(), hydra.DonationRequest{
		CampaignID:     campaignID,
		DonorAddress:   strings.TrimSpace(req.DonorAddress),
		DonorName:      displayName(req.DonorName),
		DonorCountry:   middleware.CountryFromContext(r.Context()),
		Amount:         req.Amount,
		IdempotencyKey: strings.TrimSpace(r.Header.Get("Idempotency-Key")),
	})
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, donation)
}

// DonationsList returns the current epoch's donations in insertion order.
func (a *App) DonationsList(w http.ResponseWriter, r *http.Request) {
	campaignID := chi.URLParam(r, "id")
	items, err := a.Gateway.ListDonations(r.Context(), campaignID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// displayName normalizes a free-form supporter name for the live feed.
func displayName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Anonymous"
	}
	return cases.Title(language.Und).String(name)
}
