// Package repository loads the processed Parquet tables into typed,
// read-only summaries and keeps them cached per repository instance.
package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/zackmeach/gridironlabs/internal/apperr"
	"github.com/zackmeach/gridironlabs/internal/config"
	"github.com/zackmeach/gridironlabs/internal/model"
	"github.com/zackmeach/gridironlabs/internal/parquetio"
	"github.com/zackmeach/gridironlabs/internal/schema"
)

// SummaryRepository supplies summaries to services and transports.
type SummaryRepository interface {
	Players() ([]model.EntitySummary, error)
	Teams() ([]model.EntitySummary, error)
	Coaches() ([]model.EntitySummary, error)
	Games() ([]model.GameSummary, error)
	PlayerByID(id string) (model.EntitySummary, error)
	TeamByID(id string) (model.EntitySummary, error)
	CoachByID(id string) (model.EntitySummary, error)
}

// Built-in required columns when the registry has no entry for a table.
var (
	minimumEntityColumns = []string{"id", "name"}
	minimumGameColumns   = []string{"id", "season", "week", "home_team", "away_team", "start_time", "status"}
)

// ParquetSummaryRepository reads <root>/<table>.parquet on first access and
// serves cached copies until ClearCache. Safe for concurrent use.
type ParquetSummaryRepository struct {
	root          string
	schemaVersion string
	registry      schema.Registry
	logger        *slog.Logger

	mu       sync.Mutex
	entities map[string][]model.EntitySummary
	byID     map[string]map[string]int
	games    []model.GameSummary
	gamesOK  bool
}

var _ SummaryRepository = (*ParquetSummaryRepository)(nil)

// Option configures a ParquetSummaryRepository.
type Option func(*ParquetSummaryRepository)

// WithSchemaVersion selects the schema version used for validation.
func WithSchemaVersion(version string) Option {
	return func(r *ParquetSummaryRepository) { r.schemaVersion = schema.NormalizeVersion(version) }
}

// WithRegistry replaces the default schema registry.
func WithRegistry(reg schema.Registry) Option {
	return func(r *ParquetSummaryRepository) { r.registry = reg }
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(r *ParquetSummaryRepository) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a repository over the processed data directory root.
func New(root string, opts ...Option) *ParquetSummaryRepository {
	r := &ParquetSummaryRepository{
		root:          root,
		schemaVersion: schema.DefaultVersion,
		registry:      schema.Default,
		logger:        slog.Default(),
		entities:      make(map[string][]model.EntitySummary),
		byID:          make(map[string]map[string]int),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Root is the directory the tables are read from.
func (r *ParquetSummaryRepository) Root() string { return r.root }

// SchemaVersion is the version tables are validated against.
func (r *ParquetSummaryRepository) SchemaVersion() string { return r.schemaVersion }

// --------------------------------------------------------------------------
// Entity tables
// --------------------------------------------------------------------------

// Players returns every player row in file order.
func (r *ParquetSummaryRepository) Players() ([]model.EntitySummary, error) {
	return r.entityList(config.PlayersTable)
}

// Teams returns every team row in file order.
func (r *ParquetSummaryRepository) Teams() ([]model.EntitySummary, error) {
	return r.entityList(config.TeamsTable)
}

// Coaches returns every coach row in file order.
func (r *ParquetSummaryRepository) Coaches() ([]model.EntitySummary, error) {
	return r.entityList(config.CoachesTable)
}

// PlayerByID looks up a player by id.
func (r *ParquetSummaryRepository) PlayerByID(id string) (model.EntitySummary, error) {
	return r.entityByID(config.PlayersTable, "Player", id)
}

// TeamByID looks up a team by id.
func (r *ParquetSummaryRepository) TeamByID(id string) (model.EntitySummary, error) {
	return r.entityByID(config.TeamsTable, "Team", id)
}

// CoachByID looks up a coach by id.
func (r *ParquetSummaryRepository) CoachByID(id string) (model.EntitySummary, error) {
	return r.entityByID(config.CoachesTable, "Coach", id)
}

func (r *ParquetSummaryRepository) entityList(table string) ([]model.EntitySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadEntitiesLocked(table)
	if err != nil {
		return nil, err
	}
	return slices.Clone(records), nil
}

func (r *ParquetSummaryRepository) entityByID(table, label, id string) (model.EntitySummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.loadEntitiesLocked(table)
	if err != nil {
		return model.EntitySummary{}, err
	}
	idx, ok := r.byID[table][id]
	if !ok {
		return model.EntitySummary{}, apperr.NotFound("%s %s not found", label, id)
	}
	return records[idx], nil
}

func (r *ParquetSummaryRepository) loadEntitiesLocked(table string) ([]model.EntitySummary, error) {
	if records, ok := r.entities[table]; ok {
		return records, nil
	}

	t, err := r.readTable(table, minimumEntityColumns)
	if err != nil {
		return nil, err
	}

	defaultType := singular(table)

	records := make([]model.EntitySummary, 0, len(t.Rows))
	index := make(map[string]int, len(t.Rows))
	for _, row := range t.Rows {
		e := model.EntitySummary{
			ID:            rawString(row["id"]),
			Name:          rawString(row["name"]),
			EntityType:    model.EntityType(textOr(row["entity_type"], defaultType)),
			Era:           normalizeText(row["era"]),
			Team:          normalizeText(row["team"]),
			Position:      normalizeText(row["position"]),
			Ratings:       parseRatings(row["ratings"]),
			Stats:         parseStats(row["stats"]),
			SchemaVersion: textOr(row["schema_version"], r.schemaVersion),
			Source:        normalizeText(row["source"]),
			UpdatedAt:     normalizeDate(row["updated_at"]),
			LogoURL:       normalizeText(row["logo_url"]),
			LogoPath:      normalizeText(row["logo_path"]),
		}
		index[e.ID] = len(records)
		records = append(records, e)
	}

	r.entities[table] = records
	r.byID[table] = index
	return records, nil
}

// --------------------------------------------------------------------------
// Games
// --------------------------------------------------------------------------

// Games returns every game row in file order.
func (r *ParquetSummaryRepository) Games() ([]model.GameSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.gamesOK {
		games, err := r.loadGamesLocked()
		if err != nil {
			return nil, err
		}
		r.games = games
		r.gamesOK = true
	}
	return slices.Clone(r.games), nil
}

func (r *ParquetSummaryRepository) loadGamesLocked() ([]model.GameSummary, error) {
	t, err := r.readTable(config.GamesTable, minimumGameColumns)
	if err != nil {
		return nil, err
	}

	games := make([]model.GameSummary, 0, len(t.Rows))
	for _, row := range t.Rows {
		id := rawString(row["id"])

		start := normalizeDatetime(row["start_time"])
		if start == nil {
			return nil, apperr.DataValidation("Invalid start_time for game %s", id)
		}
		season := asInt(row["season"])
		week := asInt(row["week"])
		if season == nil || week == nil {
			return nil, apperr.DataValidation("Invalid season/week for game %s", id)
		}

		g := model.GameSummary{
			ID:           id,
			Season:       *season,
			Week:         *week,
			HomeTeam:     rawString(row["home_team"]),
			AwayTeam:     rawString(row["away_team"]),
			Location:     textOr(row["location"], ""),
			StartTime:    *start,
			Status:       model.GameStatus(textOr(row["status"], string(model.StatusScheduled))),
			IsPostseason: asBool(row["is_postseason"]),
			PlayoffRound: normalizeText(row["playoff_round"]),
		}
		if g.IsFinal() {
			g.HomeScore = asInt(row["home_score"])
			g.AwayScore = asInt(row["away_score"])
		}
		games = append(games, g)
	}
	return games, nil
}

// --------------------------------------------------------------------------
// Loading and validation
// --------------------------------------------------------------------------

func (r *ParquetSummaryRepository) path(table string) string {
	return filepath.Join(r.root, table+".parquet")
}

func (r *ParquetSummaryRepository) requiredColumns(table string, minimum []string) []string {
	if v, ok := r.registry.Resolve(table, r.schemaVersion); ok {
		return v.Fields
	}
	return minimum
}

func (r *ParquetSummaryRepository) readTable(table string, minimum []string) (*parquetio.Table, error) {
	path := r.path(table)
	start := time.Now()

	t, err := parquetio.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apperr.NotFound("Parquet table %s not found at %s", table, path)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrDataValidation, err, "Failed to read Parquet table %s", table)
	}

	if missing := schema.MissingColumns(r.requiredColumns(table, minimum), t.Columns); len(missing) > 0 {
		return nil, apperr.DataValidation("Table %s is missing required columns: %s", table, strings.Join(missing, ", "))
	}

	r.logger.Debug("loaded parquet table",
		"table", table,
		"rows", len(t.Rows),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return t, nil
}

// ClearCache drops every cached table so the next access re-reads disk.
func (r *ParquetSummaryRepository) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.entities)
	clear(r.byID)
	r.games = nil
	r.gamesOK = false
}

// ValidateSchema loads all four tables and reports every failure.
func (r *ParquetSummaryRepository) ValidateSchema() error {
	var errs []error
	for _, load := range []func() error{
		func() error { _, err := r.Players(); return err },
		func() error { _, err := r.Teams(); return err },
		func() error { _, err := r.Coaches(); return err },
		func() error { _, err := r.Games(); return err },
	} {
		if err := load(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Exists reports whether the file for table is present under root.
func (r *ParquetSummaryRepository) Exists(table string) bool {
	_, err := os.Stat(r.path(table))
	return err == nil
}

// singular maps a table name to its entity type ("coaches" -> "coach").
func singular(table string) string {
	if strings.HasSuffix(table, "ches") {
		return strings.TrimSuffix(table, "es")
	}
	return strings.TrimSuffix(table, "s")
}

func rawString(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
