package main

import (
	"io"
	"log/slog"

	"github.com/zackmeach/gridironlabs/internal/config"
	"github.com/zackmeach/gridironlabs/internal/logging"
	"github.com/zackmeach/gridironlabs/internal/repository"
	"github.com/zackmeach/gridironlabs/internal/service"
)

// app bundles the loaded config and the read-side services every
// subcommand shares.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	closer  io.Closer
	repo    *repository.ParquetSummaryRepository
	summary *service.SummaryService
	search  *service.SearchService
	league  *service.LeagueService
}

// loadApp reads configuration, sets up logging and builds the services.
// When fileLog is false only stdout logging is configured.
func loadApp(fileLog bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logDir := ""
	if fileLog {
		logDir = cfg.Paths.Logs
	}
	logger, closer, err := logging.Setup(cfg.LogLevel, logDir)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	repo := repository.New(cfg.Paths.DataProcessed,
		repository.WithSchemaVersion(cfg.SchemaVersion),
		repository.WithLogger(logger),
	)
	return &app{
		cfg:     cfg,
		logger:  logger,
		closer:  closer,
		repo:    repo,
		summary: service.NewSummaryService(repo, logger),
		search:  service.NewSearchService(repo),
		league:  service.NewLeagueService(repo, logger),
	}, nil
}

func (a *app) Close() error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// withApp runs fn with a loaded app and closes it afterwards.
func withApp(fileLog bool, fn func(a *app) error) error {
	a, err := loadApp(fileLog)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}
