package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zackmeach/gridironlabs/internal/api"
	"github.com/zackmeach/gridironlabs/internal/api/handler"
	"github.com/zackmeach/gridironlabs/internal/cache"
	"github.com/zackmeach/gridironlabs/internal/config"
	"github.com/zackmeach/gridironlabs/internal/maintenance"
	"github.com/zackmeach/gridironlabs/internal/matchup"
	"github.com/zackmeach/gridironlabs/internal/settings"
)

func serveCmd() *cobra.Command {
	var (
		host string
		port int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the read-only HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(true, func(a *app) error {
				if host != "" {
					a.cfg.APIHost = host
				}
				if port > 0 {
					a.cfg.APIPort = port
				}
				return runServe(a)
			})
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "Listen host (overrides GRIDIRONLABS_API_HOST)")
	cmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides GRIDIRONLABS_API_PORT)")
	return cmd
}

func runServe(a *app) error {
	cfg, logger := a.cfg, a.logger

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cfg.Paths.EnsureDirectories(); err != nil {
		return err
	}

	// Bootstrap: a broken dataset is reported, not fatal
	if err := a.repo.ValidateSchema(); err != nil {
		logger.Warn("Processed data failed validation", "banner", banner(err))
	}

	// Settings store (optional)
	store, err := settings.Open(cfg.SettingsPath)
	if err != nil {
		logger.Warn("Settings store unavailable", "path", cfg.SettingsPath, "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	go appCache.RunEviction(ctx, 5*time.Minute)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Matchup rotator
	rotator := matchup.NewRotator(nil)
	rebuildMatchups := func() {
		items, err := a.league.UpcomingMatchups(time.Now())
		if err != nil {
			logger.Warn("Failed to compute upcoming matchups", "error", err)
			return
		}
		rotator.Set(items)
	}
	rebuildMatchups()
	go rotator.Run(ctx, cfg.MatchupInterval)

	reload := func() {
		a.repo.ClearCache()
		a.search.Reset()
		appCache.Clear()
		rebuildMatchups()
		logger.Info("Data reloaded")
	}

	// Maintenance tickers
	go maintenance.Start(ctx, maintenanceConfig(cfg), maintenance.Tasks{
		Watcher:         maintenance.NewWatcher(cfg.Paths.DataProcessed, config.Tables),
		Reload:          reload,
		RebuildMatchups: rebuildMatchups,
	}, logger)

	router := api.NewRouter(handler.Deps{
		Repo:     a.repo,
		Summary:  a.summary,
		Search:   a.search,
		League:   a.league,
		Settings: store,
		Rotator:  rotator,
		Cache:    appCache,
		Config:   cfg,
		Logger:   logger,
		Reload:   reload,
	})

	// Create HTTP server
	addr := cfg.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting Gridiron Labs API",
			"addr", addr,
			"environment", cfg.Environment,
			"data", cfg.Paths.DataProcessed,
			"docs", fmt.Sprintf("http://%s/docs/", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for interrupt or listener failure
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
	return nil
}

// maintenanceConfig enables file polling only with live refresh on.
func maintenanceConfig(cfg *config.Config) maintenance.Config {
	mc := maintenance.DefaultConfig()
	mc.RefreshInterval = 0
	if cfg.EnableLiveRefresh {
		mc.RefreshInterval = cfg.RefreshInterval
	}
	return mc
}
