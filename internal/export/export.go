// Package export copies the processed tables into Postgres so other tools
// can query them. Rows are upserted by id; stats and ratings land in JSONB.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/zackmeach/gridironlabs/internal/config"
	"github.com/zackmeach/gridironlabs/internal/model"
	"github.com/zackmeach/gridironlabs/internal/repository"
)

// Execer is the subset of pgxpool.Pool the exporter needs.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Exporter writes repository contents to Postgres.
type Exporter struct {
	db     Execer
	repo   repository.SummaryRepository
	logger *slog.Logger
}

// New creates an Exporter. A nil logger falls back to slog.Default().
func New(db Execer, repo repository.SummaryRepository, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{db: db, repo: repo, logger: logger}
}

// EnsureSchema creates the export tables if absent.
func (e *Exporter) EnsureSchema(ctx context.Context) error {
	for _, table := range []string{config.PlayersTable, config.TeamsTable, config.CoachesTable} {
		if _, err := e.db.Exec(ctx, entityTableDDL(table)); err != nil {
			return fmt.Errorf("create table %s: %w", table, err)
		}
	}
	if _, err := e.db.Exec(ctx, gamesTableDDL); err != nil {
		return fmt.Errorf("create table %s: %w", config.GamesTable, err)
	}
	return nil
}

// Sync ensures the schema then upserts every row of the four tables.
// Table load failures and row failures are recorded in the Result; only
// a schema failure aborts the run.
func (e *Exporter) Sync(ctx context.Context) (Result, error) {
	start := time.Now()
	if err := e.EnsureSchema(ctx); err != nil {
		return Result{}, err
	}

	var result Result
	entityTables := []struct {
		table string
		load  func() ([]model.EntitySummary, error)
		count *int
	}{
		{config.PlayersTable, e.repo.Players, &result.PlayersUpserted},
		{config.TeamsTable, e.repo.Teams, &result.TeamsUpserted},
		{config.CoachesTable, e.repo.Coaches, &result.CoachesUpserted},
	}
	for _, et := range entityTables {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		rows, err := et.load()
		if err != nil {
			result.AddErrorf("load %s: %v", et.table, err)
			continue
		}
		for _, row := range rows {
			if err := e.UpsertEntity(ctx, et.table, row); err != nil {
				result.AddErrorf("%s %s: %v", et.table, row.ID, err)
				continue
			}
			*et.count++
		}
	}

	games, err := e.repo.Games()
	if err != nil {
		result.AddErrorf("load %s: %v", config.GamesTable, err)
	} else {
		for _, g := range games {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			if err := e.UpsertGame(ctx, g); err != nil {
				result.AddErrorf("%s %s: %v", config.GamesTable, g.ID, err)
				continue
			}
			result.GamesUpserted++
		}
	}

	e.logger.Info("Postgres sync complete",
		"summary", result.Summary(),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return result, nil
}

// UpsertEntity writes one player, team or coach row.
func (e *Exporter) UpsertEntity(ctx context.Context, table string, s model.EntitySummary) error {
	ratings, err := jsonOrNil(s.Ratings)
	if err != nil {
		return fmt.Errorf("encode ratings: %w", err)
	}
	stats, err := json.Marshal(nonNilStats(s.Stats))
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	_, err = e.db.Exec(ctx, entityUpsertSQL(table),
		s.ID, s.Name, string(s.EntityType), s.Era, s.Team, s.Position,
		ratings, stats, s.SchemaVersion, s.Source, s.UpdatedAt,
		s.LogoURL, s.LogoPath,
	)
	return err
}

// UpsertGame writes one game row.
func (e *Exporter) UpsertGame(ctx context.Context, g model.GameSummary) error {
	_, err := e.db.Exec(ctx, gameUpsertSQL,
		g.ID, g.Season, g.Week, g.HomeTeam, g.AwayTeam, g.Location,
		g.StartTime, string(g.Status), g.IsPostseason, g.PlayoffRound,
		g.HomeScore, g.AwayScore,
	)
	return err
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

// jsonOrNil maps a nil breakdown to SQL NULL.
func jsonOrNil(r *model.RatingBreakdown) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	return json.Marshal(r)
}

func nonNilStats(m map[string]float64) map[string]float64 {
	if m == nil {
		return map[string]float64{}
	}
	return m
}
