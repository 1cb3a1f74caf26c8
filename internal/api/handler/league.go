package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/zackmeach/gridironlabs/internal/api/respond"
	"github.com/zackmeach/gridironlabs/internal/cache"
	"github.com/zackmeach/gridironlabs/internal/nfl"
	"github.com/zackmeach/gridironlabs/internal/service"
)

// ListGames lists games.
// @Summary List games
// @Description Returns games in file order, optionally filtered by season, week or team.
// @Tags league
// @Produce json
// @Param season query int false "Season"
// @Param week query int false "Week"
// @Param team query string false "Team abbreviation (home or away)"
// @Success 200 {array} model.GameSummary
// @Failure 400 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /api/v1/games [get]
func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var f service.GameFilter
	for _, p := range []struct {
		name string
		dst  **int
	}{{"season", &f.Season}, {"week", &f.Week}} {
		raw := strings.TrimSpace(q.Get(p.name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAMETER", p.name+" must be an integer")
			return
		}
		*p.dst = &n
	}
	f.Team = q.Get("team")

	h.serveCached(w, r, cache.TTLLeague, func() (any, error) {
		games, err := h.repo.Games()
		if err != nil {
			return nil, err
		}
		return service.FilterGames(games, f), nil
	})
}

// GetSchedule returns the latest season grouped by week.
// @Summary Season schedule
// @Tags league
// @Produce json
// @Success 200 {object} service.Schedule
// @Router /api/v1/schedule [get]
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, cache.TTLLeague, func() (any, error) {
		return h.league.Schedule()
	})
}

// GetStandings returns division standings.
// @Summary Standings
// @Description W-L-T per team from final regular-season games, by division.
// @Tags league
// @Produce json
// @Param season query int false "Season (latest when omitted)"
// @Success 200 {object} service.Standings
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/standings [get]
func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	season, ok := queryInt(w, r.URL.Query().Get("season"), "season", 0)
	if !ok {
		return
	}
	h.serveCached(w, r, cache.TTLLeague, func() (any, error) {
		return h.league.Standings(season)
	})
}

// GetLeaders returns stat leaders for the latest season.
// @Summary League leaders
// @Tags league
// @Produce json
// @Param limit query int false "Entries per stat" default(2)
// @Success 200 {object} service.Leaderboard
// @Router /api/v1/leaders [get]
func (h *Handler) GetLeaders(w http.ResponseWriter, r *http.Request) {
	limit, ok := queryInt(w, r.URL.Query().Get("limit"), "limit", service.DefaultLeaderLimit)
	if !ok {
		return
	}
	h.serveCached(w, r, cache.TTLLeague, func() (any, error) {
		return h.league.Leaders(limit)
	})
}

// GetMatchups reports the rotating upcoming-matchup strings.
// @Summary Upcoming matchups
// @Description Current rotator item plus every matchup of the upcoming week.
// @Tags league
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/matchups [get]
func (h *Handler) GetMatchups(w http.ResponseWriter, r *http.Request) {
	var (
		items   []string
		current string
	)
	if h.rotator != nil {
		items = h.rotator.Items()
		current, _ = h.rotator.Current()
	} else {
		var err error
		items, err = h.league.UpcomingMatchups(h.now())
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		if len(items) > 0 {
			current = items[0]
		}
	}
	if items == nil {
		items = []string{}
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]any{
		"current": current,
		"items":   items,
	})
}

// GetOverview returns entity counts and the season span.
// @Summary Data overview
// @Tags league
// @Produce json
// @Success 200 {object} service.Overview
// @Router /api/v1/overview [get]
func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	h.serveCached(w, r, cache.TTLEntities, func() (any, error) {
		return h.league.Overview()
	})
}

// GetLeagueTeams returns the static alignment.
// @Summary League alignment
// @Description The 32 NFL teams with conference and division, sorted by name.
// @Tags league
// @Produce json
// @Param conference query string false "AFC or NFC"
// @Param division query string false "Division, e.g. AFC East"
// @Success 200 {array} nfl.TeamInfo
// @Router /api/v1/league/teams [get]
func (h *Handler) GetLeagueTeams(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	teams := nfl.Filter(q.Get("conference"), q.Get("division"))
	if teams == nil {
		teams = []nfl.TeamInfo{}
	}
	respond.WriteJSONObject(w, http.StatusOK, teams)
}
