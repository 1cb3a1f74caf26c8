// Package model defines the normalized records every layer exchanges.
// Records are produced by the repository at load time and never mutated;
// a reload replaces them wholesale.
package model

import (
	"fmt"
	"strings"
	"time"
)

// EntityType discriminates the three entity tables.
type EntityType string

const (
	EntityPlayer EntityType = "player"
	EntityTeam   EntityType = "team"
	EntityCoach  EntityType = "coach"
)

// ParseEntityType accepts singular or plural forms ("players", "coach").
func ParseEntityType(s string) (EntityType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "player", "players":
		return EntityPlayer, true
	case "team", "teams":
		return EntityTeam, true
	case "coach", "coaches":
		return EntityCoach, true
	}
	return "", false
}

// RatingBreakdown holds the five rating axes; nil means not rated.
type RatingBreakdown struct {
	Overall     *float64 `json:"overall,omitempty"`
	Athleticism *float64 `json:"athleticism,omitempty"`
	Technical   *float64 `json:"technical,omitempty"`
	Intangibles *float64 `json:"intangibles,omitempty"`
	Potential   *float64 `json:"potential,omitempty"`
}

// EntitySummary is the read-only view of a player, team or coach row.
type EntitySummary struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	EntityType    EntityType         `json:"entity_type"`
	Era           *string            `json:"era,omitempty"`
	Team          *string            `json:"team,omitempty"`
	Position      *string            `json:"position,omitempty"`
	Ratings       *RatingBreakdown   `json:"ratings,omitempty"`
	Stats         map[string]float64 `json:"stats,omitempty"`
	SchemaVersion string             `json:"schema_version,omitempty"`
	Source        *string            `json:"source,omitempty"`
	UpdatedAt     *time.Time         `json:"updated_at,omitempty"`
	LogoURL       *string            `json:"logo_url,omitempty"`
	LogoPath      *string            `json:"logo_path,omitempty"`
}

// Stat returns the named stat and whether it is present.
func (e EntitySummary) Stat(key string) (float64, bool) {
	v, ok := e.Stats[key]
	return v, ok
}

// GameStatus is the lifecycle state of a game. Unknown strings from the
// source are preserved as-is.
type GameStatus string

const (
	StatusScheduled GameStatus = "scheduled"
	StatusFinal     GameStatus = "final"
)

// GameSummary is the normalized schedule/result row. HomeScore and
// AwayScore are nil unless Status is final; PlayoffRound is set only for
// postseason games.
type GameSummary struct {
	ID           string     `json:"id"`
	Season       int        `json:"season"`
	Week         int        `json:"week"` // <= 0 encodes preseason
	HomeTeam     string     `json:"home_team"`
	AwayTeam     string     `json:"away_team"`
	Location     string     `json:"location"`
	StartTime    time.Time  `json:"start_time"`
	Status       GameStatus `json:"status"`
	IsPostseason bool       `json:"is_postseason"`
	HomeScore    *int       `json:"home_score,omitempty"`
	AwayScore    *int       `json:"away_score,omitempty"`
	PlayoffRound *string    `json:"playoff_round,omitempty"`
}

// IsFinal reports whether the game has a final result.
func (g GameSummary) IsFinal() bool {
	return g.Status == StatusFinal
}

// IsPreseason reports whether the week encodes a preseason game.
func (g GameSummary) IsPreseason() bool {
	return !g.IsPostseason && g.Week <= 0
}

// SearchResult is a lightweight search hit used for navigation.
type SearchResult struct {
	ID         string            `json:"id"`
	Label      string            `json:"label"`
	EntityType EntityType        `json:"entity_type"`
	Score      *float64          `json:"score"`
	Context    map[string]string `json:"context,omitempty"`
}

// ComparisonView captures a set of summaries to show side by side.
type ComparisonView struct {
	Entities               []EntitySummary `json:"entities"`
	MetricKeys             []string        `json:"metric_keys"`
	AdvancedMetricsEnabled bool            `json:"advanced_metrics_enabled"`
}

// EntityRef points at one entity, optionally pinned to a season.
type EntityRef struct {
	EntityType EntityType `json:"entity_type"`
	ID         string     `json:"id"`
	Season     *int       `json:"season,omitempty"`
}

// Route is a semantic navigation target: a page plus an optional entity.
type Route struct {
	Page   string     `json:"page"`
	Entity *EntityRef `json:"entity,omitempty"`
}

// String renders the canonical route form: "home", "player:p-1",
// "player:p-1@2025".
func (r Route) String() string {
	if r.Entity == nil {
		return r.Page
	}
	s := r.Page + ":" + r.Entity.ID
	if r.Entity.Season != nil {
		s += fmt.Sprintf("@%d", *r.Entity.Season)
	}
	return s
}
