package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"gateway/internal/domain"
	"gateway/internal/hydra"
)

// App is the handler container wiring the gateway core and the settlement
// archive into the HTTP surface.
type App struct {
	Gateway *hydra.Gateway
	Archive domain.SettlementArchive
	Logger  zerolog.Logger
}

// NewApp creates the handler container. archive may be nil when no database
// is configured.
func NewApp(gw *hydra.Gateway, archive domain.SettlementArchive, logger zerolog.Logger) *App {
	return &App{Gateway: gw, Archive: archive, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, msg string) {
	a.json(w, code, map[string]any{"error": map[string]string{"code": slug, "message": msg}})
}

// domainError maps gateway error taxonomy onto distinct response codes.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrHeadNotFound):
		a.error(w, http.StatusNotFound, "not_found", "no head for campaign")
	case errors.Is(err, domain.ErrHeadNotOpen):
		a.error(w, http.StatusConflict, "head_not_open", "donations are paused for this campaign")
	case errors.Is(err, domain.ErrHeadClosed):
		a.error(w, http.StatusConflict, "head_closed", "head is closed and awaiting settlement")
	case errors.Is(err, domain.ErrAlreadySettled):
		a.error(w, http.StatusConflict, "already_settled", "head already settled")
	default:
		a.Logger.Error().Err(err).Msg("unhandled gateway error")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
