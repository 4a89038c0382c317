package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"gateway/internal/adapter/repo"
	"gateway/internal/domain"
	"gateway/internal/http/handlers"
	"gateway/internal/http/httpapi"
	"gateway/internal/hydra"
	"gateway/internal/infra"
	"gateway/internal/infra/geoip"
	"gateway/internal/middleware"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()

	// Settlement archive is optional: without DATABASE_URL settled epochs
	// live only in process memory.
	var archive domain.SettlementArchive
	if cfg.DatabaseURL != "" {
		dbpool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect database")
		}
		defer dbpool.Close()
		archive = repo.NewSettlementArchive(infra.NewSQLRunner(dbpool, logger))
		logger.Info().Msg("settlement archive enabled")
	}

	gw := hydra.NewGateway(archive, logger)

	var countryLookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip resolver disabled")
	} else if resolver != nil {
		defer func() {
			if c, ok := resolver.(*geoip.Resolver); ok {
				_ = c.Close()
			}
		}()
		countryLookup = resolver.CountryCode
	}

	app := handlers.NewApp(gw, archive, logger)
	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		RateLimitPerMin: cfg.RateLimitPerMin,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		CountryLookup:   countryLookup,
	})

	if cfg.SettleSweepInterval > 0 {
		sweeper, err := hydra.NewSweeper(gw, logger, cfg.SettleSweepInterval, cfg.SettleClosedGrace)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to build settlement sweeper")
		}
		sweeper.Start()
		defer func() {
			if err := sweeper.Stop(); err != nil {
				logger.Error().Err(err).Msg("failed to stop settlement sweeper")
			}
		}()
	}

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("gateway listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
