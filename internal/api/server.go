// Package api wires the read-only HTTP surface.
//
// @title Gridiron Labs API
// @version 1.0.0
// @description Read-only NFL players, teams, coaches and games served from processed Parquet tables.
// @BasePath /
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/zackmeach/gridironlabs/internal/api/docs"
	"github.com/zackmeach/gridironlabs/internal/api/handler"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(deps handler.Deps) *chi.Mux {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(LoggingMiddleware(logger))
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS", "POST", "PUT"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled && cfg.RateLimitRequests > 0 && cfg.RateLimitWindow > 0 {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	h := handler.New(deps)

	// --- Routes ---

	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/data", h.HealthCheckData)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(httpSwagger.URL("/docs/doc.json")))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Entities
		r.Get("/players", h.ListPlayers)
		r.Get("/teams", h.ListTeams)
		r.Get("/coaches", h.ListCoaches)
		r.Get("/search", h.Search)
		r.Get("/compare", h.Compare)

		// League
		r.Get("/games", h.ListGames)
		r.Get("/schedule", h.GetSchedule)
		r.Get("/standings", h.GetStandings)
		r.Get("/leaders", h.GetLeaders)
		r.Get("/matchups", h.GetMatchups)
		r.Get("/overview", h.GetOverview)
		r.Get("/league/teams", h.GetLeagueTeams)

		// Maintenance
		r.Post("/reload", h.Reload)

		// Settings
		r.Get("/settings/tables/{page}/{table}/{version}", h.GetTableState)
		r.Put("/settings/tables/{page}/{table}/{version}", h.PutTableState)

		// Entity summaries; static routes above take precedence
		r.Get("/{entityType}/{entityID}", h.GetEntity)
	})

	return r
}
