// Package handler provides HTTP handlers for all API endpoints.
// Handlers call the service layer and render JSON through the response
// cache; the repository is never written.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/zackmeach/gridironlabs/internal/api/respond"
	"github.com/zackmeach/gridironlabs/internal/cache"
	"github.com/zackmeach/gridironlabs/internal/config"
	"github.com/zackmeach/gridironlabs/internal/matchup"
	"github.com/zackmeach/gridironlabs/internal/repository"
	"github.com/zackmeach/gridironlabs/internal/service"
	"github.com/zackmeach/gridironlabs/internal/settings"
)

// DataSource is the repository surface the handlers use.
type DataSource interface {
	repository.SummaryRepository
	ValidateSchema() error
	SchemaVersion() string
}

// Deps are the handler dependencies. Settings and Rotator may be nil.
type Deps struct {
	Repo     DataSource
	Summary  *service.SummaryService
	Search   *service.SearchService
	League   *service.LeagueService
	Settings *settings.Store
	Rotator  *matchup.Rotator
	Cache    *cache.Cache
	Config   *config.Config
	Logger   *slog.Logger
	Reload   func()
	Now      func() time.Time
}

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	repo     DataSource
	summary  *service.SummaryService
	search   *service.SearchService
	league   *service.LeagueService
	settings *settings.Store
	rotator  *matchup.Rotator
	cache    *cache.Cache
	cfg      *config.Config
	logger   *slog.Logger
	reload   func()
	now      func() time.Time
}

// New creates a Handler with shared dependencies.
func New(d Deps) *Handler {
	h := &Handler{
		repo:     d.Repo,
		summary:  d.Summary,
		search:   d.Search,
		league:   d.League,
		settings: d.Settings,
		rotator:  d.Rotator,
		cache:    d.Cache,
		cfg:      d.Config,
		logger:   d.Logger,
		reload:   d.Reload,
		now:      d.Now,
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.now == nil {
		h.now = time.Now
	}
	if h.cache == nil {
		h.cache = cache.New(false)
	}
	return h
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, status and data location.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"name":           "Gridiron Labs API",
		"version":        "1.0.0",
		"status":         "running",
		"docs":           "/docs",
		"environment":    h.cfg.Environment,
		"schema_version": h.repo.SchemaVersion(),
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckData validates every processed table.
// @Summary Data health check
// @Description Loads and validates all four Parquet tables against the schema registry.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/data [get]
func (h *Handler) HealthCheckData(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.ValidateSchema(); err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]any{
			"status":    "unhealthy",
			"data":      "invalid",
			"error":     err.Error(),
			"timestamp": h.now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"data":      "valid",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics (active keys, expired keys).
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

// Reload drops cached data so the next request re-reads the tables.
// @Summary Reload data
// @Description Clears the repository cache, search index and response cache.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/reload [post]
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	if h.reload != nil {
		h.reload()
	} else {
		h.cache.Clear()
	}
	h.logger.Info("Data reload requested via API")
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"status":    "reloaded",
		"timestamp": h.now().UTC().Format(time.RFC3339),
	})
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// serveCached renders build's result through the response cache keyed by
// the request URI, honoring If-None-Match.
func (h *Handler) serveCached(w http.ResponseWriter, r *http.Request, ttl time.Duration, build func() (any, error)) {
	key := r.URL.RequestURI()

	if data, etag, ok := h.cache.Get(key); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, ttl, true)
		return
	}

	v, err := build()
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	etag := h.cache.Set(key, data, ttl)
	if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
		respond.WriteNotModified(w, etag)
		return
	}
	respond.WriteJSON(w, data, etag, ttl, false)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := respond.StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", "path", r.URL.Path, "error", err)
	}
	respond.WriteAppError(w, err)
}
