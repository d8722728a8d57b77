package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/tickerhawk/tickerhawk/Internal/data"
	"github.com/tickerhawk/tickerhawk/Internal/metrics"
	"github.com/tickerhawk/tickerhawk/Internal/screener"
	"github.com/tickerhawk/tickerhawk/Internal/utils/config"
	"github.com/tickerhawk/tickerhawk/Internal/utils/logging"
	"github.com/tickerhawk/tickerhawk/cmd/api/internal"
)

func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../../.env")

	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New("info")
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}
	log := logging.New(cfg.Server.LogLevel)

	asOf := time.Now().UTC().Format("2006-01-02")
	provider, meta, closeData, err := data.BuildProviders(cfg, asOf, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build data providers")
	}
	defer closeData()

	engine := screener.New()
	engine.Indexes = data.StaticIndexes(cfg.Indexes)
	engine.Workers = cfg.Screen.Workers

	jwtManager := internal.NewJWTManager()
	apiServer := &internal.API{
		Engine:     engine,
		Provider:   provider,
		Meta:       meta,
		Universe:   cfg.Screen.Universe,
		JWTManager: jwtManager,
		Log:        log,
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(internal.CorsMiddleware)

	r.Get("/health", apiServer.HandleHealth)
	r.Handle("/metrics", metrics.Handler())
	r.Post("/api/auth/token", apiServer.HandleToken)

	r.Group(func(r chi.Router) {
		r.Use(internal.JWTAuthMiddleware(jwtManager))
		r.Post("/api/screen", apiServer.HandleScreen)
	})

	log.Info().Str("addr", cfg.Server.Addr).Str("mode", cfg.Data.Mode).Msg("screener api listening")
	if err := http.ListenAndServe(cfg.Server.Addr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
