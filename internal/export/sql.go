package export

import "github.com/zackmeach/gridironlabs/internal/config"

func entityTableDDL(table string) string {
	return `CREATE TABLE IF NOT EXISTS ` + table + ` (
		id             TEXT PRIMARY KEY,
		name           TEXT NOT NULL,
		entity_type    TEXT NOT NULL,
		era            TEXT,
		team           TEXT,
		position       TEXT,
		ratings        JSONB,
		stats          JSONB NOT NULL DEFAULT '{}'::jsonb,
		schema_version TEXT,
		source         TEXT,
		updated_at     DATE,
		logo_url       TEXT,
		logo_path      TEXT,
		synced_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`
}

func entityUpsertSQL(table string) string {
	return `
		INSERT INTO ` + table + ` (
			id, name, entity_type, era, team, position,
			ratings, stats, schema_version, source, updated_at,
			logo_url, logo_path
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			entity_type = EXCLUDED.entity_type,
			era = EXCLUDED.era,
			team = EXCLUDED.team,
			position = EXCLUDED.position,
			ratings = EXCLUDED.ratings,
			stats = EXCLUDED.stats,
			schema_version = EXCLUDED.schema_version,
			source = EXCLUDED.source,
			updated_at = EXCLUDED.updated_at,
			logo_url = EXCLUDED.logo_url,
			logo_path = EXCLUDED.logo_path,
			synced_at = NOW()`
}

var gamesTableDDL = `CREATE TABLE IF NOT EXISTS ` + config.GamesTable + ` (
	id            TEXT PRIMARY KEY,
	season        INTEGER NOT NULL,
	week          INTEGER NOT NULL,
	home_team     TEXT NOT NULL,
	away_team     TEXT NOT NULL,
	location      TEXT NOT NULL DEFAULT '',
	start_time    TIMESTAMPTZ NOT NULL,
	status        TEXT NOT NULL,
	is_postseason BOOLEAN NOT NULL DEFAULT FALSE,
	playoff_round TEXT,
	home_score    INTEGER,
	away_score    INTEGER,
	synced_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

var gameUpsertSQL = `
	INSERT INTO ` + config.GamesTable + ` (
		id, season, week, home_team, away_team, location,
		start_time, status, is_postseason, playoff_round,
		home_score, away_score
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	ON CONFLICT (id) DO UPDATE SET
		season = EXCLUDED.season,
		week = EXCLUDED.week,
		home_team = EXCLUDED.home_team,
		away_team = EXCLUDED.away_team,
		location = EXCLUDED.location,
		start_time = EXCLUDED.start_time,
		status = EXCLUDED.status,
		is_postseason = EXCLUDED.is_postseason,
		playoff_round = EXCLUDED.playoff_round,
		home_score = EXCLUDED.home_score,
		away_score = EXCLUDED.away_score,
		synced_at = NOW()`
