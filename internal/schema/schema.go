// Package schema describes the required column set of each processed
// table per schema version. It is a validation gate only; normalization
// lives in the repository.
package schema

import (
	"slices"
	"sort"
	"strings"
)

// DefaultVersion is used when no version is configured, and as the
// fallback when a table has no entry for the requested version.
const DefaultVersion = "v0"

// Version is the required column set for one table at one version.
type Version struct {
	Name     string
	Version  string
	Fields   []string
	Checksum string
}

// Key is the registry key for the version ("players:v0").
func (v Version) Key() string {
	return Key(v.Name, v.Version)
}

// Registry maps "<table>:<version>" to the version definition.
type Registry map[string]Version

// Key builds a registry key.
func Key(table, version string) string {
	return table + ":" + NormalizeVersion(version)
}

// NormalizeVersion trims the version and maps blank to DefaultVersion.
func NormalizeVersion(version string) string {
	if v := strings.TrimSpace(version); v != "" {
		return v
	}
	return DefaultVersion
}

// Default is the built-in registry for the processed NFL tables.
var Default = Registry{
	"players:v0": {
		Name:    "players",
		Version: "v0",
		Fields:  []string{"id", "name", "position", "team", "era", "ratings", "stats"},
	},
	"teams:v0": {
		Name:    "teams",
		Version: "v0",
		Fields:  []string{"id", "name", "era", "ratings", "stats"},
	},
	"coaches:v0": {
		Name:    "coaches",
		Version: "v0",
		Fields:  []string{"id", "name", "team", "era", "ratings", "stats"},
	},
	"games:v0": {
		Name:    "games",
		Version: "v0",
		Fields: []string{
			"id", "season", "week", "home_team", "away_team", "location",
			"start_time", "status", "is_postseason", "playoff_round",
			"home_score", "away_score",
		},
	},
}

// Resolve looks up table at version, falling back to DefaultVersion.
func (r Registry) Resolve(table, version string) (Version, bool) {
	if v, ok := r[Key(table, version)]; ok {
		return v, true
	}
	v, ok := r[Key(table, DefaultVersion)]
	return v, ok
}

// Missing returns the sorted required fields absent from columns.
func (v Version) Missing(columns []string) []string {
	return MissingColumns(v.Fields, columns)
}

// MissingColumns returns the sorted entries of required absent from columns.
func MissingColumns(required, columns []string) []string {
	var missing []string
	for _, f := range required {
		if !slices.Contains(columns, f) && !slices.Contains(missing, f) {
			missing = append(missing, f)
		}
	}
	sort.Strings(missing)
	return missing
}
