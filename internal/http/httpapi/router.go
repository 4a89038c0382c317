package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"gateway/internal/http/handlers"
	"gateway/internal/middleware"
)

// RouterOptions carries the middleware knobs the router needs from config.
type RouterOptions struct {
	RateLimitPerMin int
	AllowedOrigins  []string
	CountryLookup   middleware.CountryLookup
}

// NewRouter wires the gateway operations onto the HTTP surface. Each core
// operation maps to exactly one route.
func NewRouter(app *handlers.App, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(opts.AllowedOrigins),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/campaigns/{id}", func(r chi.Router) {
		r.Post("/head", app.HeadInitialize)
		r.Get("/head", app.HeadStatus)
		r.With(middleware.Geo(opts.CountryLookup)).Post("/donations", app.DonationsCreate)
		r.Get("/donations", app.DonationsList)
		r.Get("/stats", app.StatsRealtime)
		r.Post("/close", app.HeadClose)
		r.Post("/settle", app.HeadSettle)
		r.Get("/settlements", app.SettlementsList)
	})

	return r
}
