package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"trip_concierge/internal/adapters/booking"
	server "trip_concierge/internal/adapters/http_server"
	"trip_concierge/internal/adapters/llm"
	"trip_concierge/internal/adapters/observability"
	redisad "trip_concierge/internal/adapters/redis"
	"trip_concierge/internal/app"
	"trip_concierge/internal/shared"
	"trip_concierge/internal/storage/memory"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve(cfg.MetricsAddr)
	app.SetExtractionObserver(observability.ObserveExtraction)

	// deps
	model, err := llm.New(cfg.LLMBase, cfg.LLMModel, cfg.LLMKey, 2)
	if err != nil {
		log.Fatal().Err(err).Msg("llm client init failed")
	}
	providers, err := booking.New(cfg.FlightsBase, cfg.HotelsBase, cfg.RapidAPIKey, 5)
	if err != nil {
		log.Fatal().Err(err).Msg("booking client init failed")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cache.Ping(context.Background()); err != nil {
		log.Warn().Err(err).Msg("redis unreachable, result cache disabled")
	} else {
		log.Info().Msg("redis connection ok")
	}
	sessions := memory.New()
	engine := app.NewEngine(model, providers, providers, sessions, cache, cfg.CacheTTL)

	// idle sessions are marked inactive in the background; advisory only
	go sessions.RunSweeper(cfg.SweepInterval, cfg.SessionIdle, nil)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{E: engine})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
