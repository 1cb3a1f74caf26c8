package service

import (
	"strings"

	"github.com/zackmeach/gridironlabs/internal/model"
)

// EntityFilter narrows an entity list. Empty fields match everything.
type EntityFilter struct {
	Team     string
	Position string
	Era      string
}

// FilterEntities keeps rows matching every non-empty filter field. Team
// and position compare case-insensitively; era compares exactly.
func FilterEntities(all []model.EntitySummary, f EntityFilter) []model.EntitySummary {
	team := strings.TrimSpace(f.Team)
	position := strings.TrimSpace(f.Position)
	era := strings.TrimSpace(f.Era)
	if team == "" && position == "" && era == "" {
		return all
	}
	out := make([]model.EntitySummary, 0, len(all))
	for _, e := range all {
		if team != "" && !strings.EqualFold(deref(e.Team), team) {
			continue
		}
		if position != "" && !strings.EqualFold(deref(e.Position), position) {
			continue
		}
		if era != "" && deref(e.Era) != era {
			continue
		}
		out = append(out, e)
	}
	return out
}

// GameFilter narrows the games list. Nil fields match everything.
type GameFilter struct {
	Season *int
	Week   *int
	Team   string
}

// FilterGames keeps games matching f; Team matches either side.
func FilterGames(games []model.GameSummary, f GameFilter) []model.GameSummary {
	team := strings.TrimSpace(f.Team)
	out := make([]model.GameSummary, 0, len(games))
	for _, g := range games {
		if f.Season != nil && g.Season != *f.Season {
			continue
		}
		if f.Week != nil && g.Week != *f.Week {
			continue
		}
		if team != "" && !strings.EqualFold(g.HomeTeam, team) && !strings.EqualFold(g.AwayTeam, team) {
			continue
		}
		out = append(out, g)
	}
	return out
}
