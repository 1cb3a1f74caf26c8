package service

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/zackmeach/gridironlabs/internal/model"
	"github.com/zackmeach/gridironlabs/internal/nfl"
	"github.com/zackmeach/gridironlabs/internal/repository"
)

// LeagueService builds the league-wide views: leaders, schedule,
// matchups, standings and the dataset overview.
type LeagueService struct {
	repo   repository.SummaryRepository
	logger *slog.Logger
}

// NewLeagueService creates a LeagueService. A nil logger uses slog.Default.
func NewLeagueService(repo repository.SummaryRepository, logger *slog.Logger) *LeagueService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeagueService{repo: repo, logger: logger}
}

// Leaders returns grouped leaderboards with up to limit entries per stat.
func (s *LeagueService) Leaders(limit int) (Leaderboard, error) {
	players, err := s.repo.Players()
	if err != nil {
		return Leaderboard{}, err
	}
	return BuildLeaderboard(players, limit), nil
}

// Schedule returns the latest season grouped by week.
func (s *LeagueService) Schedule() (Schedule, error) {
	games, err := s.repo.Games()
	if err != nil {
		return Schedule{}, err
	}
	return BuildSchedule(games), nil
}

// UpcomingMatchups formats the games of the next relevant week.
func (s *LeagueService) UpcomingMatchups(now time.Time) ([]string, error) {
	games, err := s.repo.Games()
	if err != nil {
		return nil, err
	}
	teams, err := s.repo.Teams()
	if err != nil {
		// Team names are cosmetic here; abbreviations still render.
		s.logger.Warn("matchups: team names unavailable", "error", err)
		teams = nil
	}
	return BuildMatchups(games, teams, now), nil
}

// Standings computes records for season; season <= 0 means the latest.
func (s *LeagueService) Standings(season int) (Standings, error) {
	games, err := s.repo.Games()
	if err != nil {
		return Standings{}, err
	}
	return BuildStandings(games, season), nil
}

// Overview counts the loaded entities and reports the season span.
func (s *LeagueService) Overview() (Overview, error) {
	players, err := s.repo.Players()
	if err != nil {
		return Overview{}, err
	}
	teams, err := s.repo.Teams()
	if err != nil {
		return Overview{}, err
	}
	coaches, err := s.repo.Coaches()
	if err != nil {
		return Overview{}, err
	}
	return Overview{
		Players:    len(players),
		Teams:      len(teams),
		Coaches:    len(coaches),
		SeasonSpan: SeasonSpan(players, teams),
	}, nil
}

// --------------------------------------------------------------------------
// Overview
// --------------------------------------------------------------------------

// NoSeasons is the span reported when no entity carries an era.
const NoSeasons = "No seasons detected"

// Overview summarizes the loaded dataset.
type Overview struct {
	Players    int    `json:"players"`
	Teams      int    `json:"teams"`
	Coaches    int    `json:"coaches"`
	SeasonSpan string `json:"seasons_span"`
}

// SeasonSpan renders "<min>-<max>" over the eras present in the lists.
func SeasonSpan(lists ...[]model.EntitySummary) string {
	var lo, hi string
	for _, list := range lists {
		for _, e := range list {
			if e.Era == nil {
				continue
			}
			era := *e.Era
			if lo == "" || era < lo {
				lo = era
			}
			if hi == "" || era > hi {
				hi = era
			}
		}
	}
	if lo == "" {
		return NoSeasons
	}
	return lo + "-" + hi
}

// --------------------------------------------------------------------------
// Leaders
// --------------------------------------------------------------------------

// DefaultLeaderLimit is the number of entries per stat card.
const DefaultLeaderLimit = 2

// LeaderEntry is one ranked player for a stat.
type LeaderEntry struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Team  string  `json:"team,omitempty"`
	Value float64 `json:"value"`
}

// LeaderStat is the ranking for a single stat key.
type LeaderStat struct {
	Label   string        `json:"label"`
	Key     string        `json:"key"`
	Entries []LeaderEntry `json:"entries"`
}

// LeaderGroup collects the stats of one category such as Passing.
type LeaderGroup struct {
	Title string       `json:"title"`
	Stats []LeaderStat `json:"stats"`
}

// Leaderboard is the full leaders payload.
type Leaderboard struct {
	Season      *int          `json:"season,omitempty"`
	SeasonLabel string        `json:"season_label,omitempty"`
	Groups      []LeaderGroup `json:"groups"`
}

type leaderStatDef struct {
	label, key string
}

var leaderCategories = []struct {
	title string
	stats []leaderStatDef
}{
	{"Passing", []leaderStatDef{
		{"Yards", "passing_yards"},
		{"Touchdowns", "passing_tds"},
		{"Turnovers", "interceptions"},
	}},
	{"Rushing", []leaderStatDef{
		{"Yards", "rushing_yards"},
		{"Touchdowns", "rushing_tds"},
	}},
	{"Receiving", []leaderStatDef{
		{"Yards", "receiving_yards"},
		{"Touchdowns", "receiving_tds"},
	}},
	{"Defense", []leaderStatDef{
		{"Tackles", "tackles"},
		{"Sacks", "sacks"},
		{"Forced Fumbles", "forced_fumbles"},
		{"Interceptions", "def_interceptions"},
	}},
	{"Kicking & Punting", []leaderStatDef{
		{"FGs Made", "field_goals_made"},
		{"Punts", "punts"},
	}},
}

// BuildLeaderboard ranks players of the latest numeric era. When no era
// parses, or the latest season is empty, every player is ranked.
func BuildLeaderboard(players []model.EntitySummary, limit int) Leaderboard {
	if limit <= 0 {
		limit = DefaultLeaderLimit
	}

	population := players
	latest, ok := latestNumericEra(players)
	if ok {
		var filtered []model.EntitySummary
		for _, p := range players {
			if n, ok := eraInt(p.Era); ok && n == latest {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) > 0 {
			population = filtered
		}
	}

	board := Leaderboard{Groups: []LeaderGroup{}}
	if ok {
		board.Season = &latest
		board.SeasonLabel = fmt.Sprintf("Season %d", latest)
	}
	for _, cat := range leaderCategories {
		var stats []LeaderStat
		for _, def := range cat.stats {
			entries := topPlayers(population, def.key, limit)
			if len(entries) > 0 {
				stats = append(stats, LeaderStat{Label: def.label, Key: def.key, Entries: entries})
			}
		}
		if len(stats) > 0 {
			board.Groups = append(board.Groups, LeaderGroup{Title: cat.title, Stats: stats})
		}
	}
	return board
}

// topPlayers ranks by descending value; ties keep input order.
func topPlayers(players []model.EntitySummary, key string, limit int) []LeaderEntry {
	var ranked []LeaderEntry
	for _, p := range players {
		v, ok := p.Stat(key)
		if !ok {
			continue
		}
		ranked = append(ranked, LeaderEntry{ID: p.ID, Name: p.Name, Team: deref(p.Team), Value: v})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func eraInt(era *string) (int, bool) {
	if era == nil {
		return 0, false
	}
	n, err := strconv.Atoi(*era)
	return n, err == nil
}

func latestNumericEra(players []model.EntitySummary) (int, bool) {
	var latest int
	var found bool
	for _, p := range players {
		if n, ok := eraInt(p.Era); ok && (!found || n > latest) {
			latest, found = n, true
		}
	}
	return latest, found
}

// --------------------------------------------------------------------------
// Schedule
// --------------------------------------------------------------------------

// Week group kinds.
const (
	KindPreseason  = "preseason"
	KindRegular    = "regular"
	KindPostseason = "postseason"
)

var playoffOrder = map[string]int{
	"wild card":  1,
	"wildcard":   1,
	"divisional": 2,
	"conference": 3,
	"super bowl": 4,
	"superbowl":  4,
}

var playoffLabels = map[string]string{
	"wild card":  "Wildcard Round",
	"wildcard":   "Wildcard Round",
	"divisional": "Divisional Round",
	"conference": "Conference Round",
	"super bowl": "Super Bowl",
	"superbowl":  "Super Bowl",
}

// WeekGroup is one navigable schedule group.
type WeekGroup struct {
	Kind  string              `json:"kind"`
	Order int                 `json:"order"`
	Label string              `json:"label"`
	Games []model.GameSummary `json:"games"`
}

// Schedule is a season's games grouped preseason, regular, postseason.
type Schedule struct {
	Season int         `json:"season"`
	Groups []WeekGroup `json:"groups"`
}

type weekKey struct {
	kind  string
	order int
	label string
}

func playoffKey(round *string) string {
	raw := strings.TrimSpace(deref(round))
	return strings.TrimSpace(strings.ReplaceAll(strings.ToLower(raw), "-", " "))
}

// WeekLabel names the schedule group a game belongs to.
func WeekLabel(g model.GameSummary) string {
	return groupKeyFor(g).label
}

func groupKeyFor(g model.GameSummary) weekKey {
	if g.IsPostseason {
		raw := strings.TrimSpace(deref(g.PlayoffRound))
		key := playoffKey(g.PlayoffRound)

		label := fmt.Sprintf("Playoffs (Week %d)", g.Week)
		if raw != "" {
			if l, ok := playoffLabels[key]; ok {
				label = l
			} else if strings.HasSuffix(raw, "Round") {
				label = raw
			} else {
				label = raw + " Round"
			}
		}
		order, ok := playoffOrder[key]
		if !ok {
			order = 100 + g.Week
		}
		return weekKey{kind: KindPostseason, order: 1000 + order, label: label}
	}
	if g.Week <= 0 {
		wk := -g.Week
		if wk == 0 {
			wk = 1
		}
		return weekKey{kind: KindPreseason, order: wk, label: fmt.Sprintf("Preseason Week %d", wk)}
	}
	return weekKey{kind: KindRegular, order: 100 + g.Week, label: fmt.Sprintf("Week %d", g.Week)}
}

// BuildSchedule groups the latest season's games. Games within a group are
// sorted by start time.
func BuildSchedule(games []model.GameSummary) Schedule {
	if len(games) == 0 {
		return Schedule{Groups: []WeekGroup{}}
	}
	season := latestSeason(games)

	groups := make(map[weekKey][]model.GameSummary)
	for _, g := range games {
		if g.Season != season {
			continue
		}
		k := groupKeyFor(g)
		groups[k] = append(groups[k], g)
	}

	keys := make([]weekKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].order != keys[j].order {
			return keys[i].order < keys[j].order
		}
		return keys[i].label < keys[j].label
	})

	out := Schedule{Season: season, Groups: make([]WeekGroup, 0, len(keys))}
	for _, k := range keys {
		gs := groups[k]
		sort.SliceStable(gs, func(i, j int) bool { return gs[i].StartTime.Before(gs[j].StartTime) })
		out.Groups = append(out.Groups, WeekGroup{Kind: k.kind, Order: k.order, Label: k.label, Games: gs})
	}
	return out
}

func latestSeason(games []model.GameSummary) int {
	season := games[0].Season
	for _, g := range games[1:] {
		if g.Season > season {
			season = g.Season
		}
	}
	return season
}

// --------------------------------------------------------------------------
// Matchups
// --------------------------------------------------------------------------

// BuildMatchups formats every game of the target week of the latest
// season. The target is the earliest week with a game starting at or after
// now, else the earliest week with an unfinished game, else the last week.
func BuildMatchups(games []model.GameSummary, teams []model.EntitySummary, now time.Time) []string {
	if len(games) == 0 {
		return []string{}
	}
	season := latestSeason(games)

	var seasonGames []model.GameSummary
	for _, g := range games {
		if g.Season == season {
			seasonGames = append(seasonGames, g)
		}
	}

	target, haveFuture, haveUnfinished := 0, false, false
	unfinishedWeek, lastWeek := 0, seasonGames[0].Week
	for _, g := range seasonGames {
		future := !g.StartTime.Before(now)
		if future && (!haveFuture || g.Week < target) {
			target, haveFuture = g.Week, true
		}
		if (!g.IsFinal() || future) && (!haveUnfinished || g.Week < unfinishedWeek) {
			unfinishedWeek, haveUnfinished = g.Week, true
		}
		if g.Week > lastWeek {
			lastWeek = g.Week
		}
	}
	switch {
	case haveFuture:
	case haveUnfinished:
		target = unfinishedWeek
	default:
		target = lastWeek
	}

	var week []model.GameSummary
	for _, g := range seasonGames {
		if g.Week == target {
			week = append(week, g)
		}
	}
	sort.SliceStable(week, func(i, j int) bool { return week[i].StartTime.Before(week[j].StartTime) })

	names := make(map[string]string)
	for _, t := range teams {
		if t.Team != nil {
			names[*t.Team] = t.Name
		}
	}
	out := make([]string, 0, len(week))
	for _, g := range week {
		out = append(out, FormatMatchup(g, names))
	}
	return out
}

// FormatMatchup renders "Week 3 Sun Sep 21st Buffalo Bills @ Kansas City
// Chiefs". Names come from names, then the static alignment, then the
// abbreviation itself.
func FormatMatchup(g model.GameSummary, names map[string]string) string {
	teamName := func(abbr string) string {
		if n, ok := names[abbr]; ok {
			return n
		}
		return nfl.NameFor(abbr)
	}
	day := g.StartTime.Day()
	return fmt.Sprintf("Week %d %s %s %s @ %s",
		g.Week, g.StartTime.Format("Mon Jan"), Ordinal(day), teamName(g.AwayTeam), teamName(g.HomeTeam))
}

// Ordinal renders 1st, 2nd, 3rd, 4th, 11th, 21st.
func Ordinal(n int) string {
	suffix := "th"
	if m := n % 100; m < 10 || m > 20 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

// --------------------------------------------------------------------------
// Standings
// --------------------------------------------------------------------------

// StandingsRow is one team's record.
type StandingsRow struct {
	Place     int     `json:"place"`
	Abbr      string  `json:"abbr"`
	Name      string  `json:"name"`
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	Ties      int     `json:"ties"`
	Pct       float64 `json:"pct"`
	GamesBack float64 `json:"games_back"`
}

// Record renders W-L or W-L-T when there are ties.
func (r StandingsRow) Record() string {
	if r.Ties > 0 {
		return fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.Ties)
	}
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

// DivisionStandings is one division table.
type DivisionStandings struct {
	Conference string         `json:"conference"`
	Division   string         `json:"division"`
	Teams      []StandingsRow `json:"teams"`
}

// Standings is every division for one season.
type Standings struct {
	Season    int                 `json:"season"`
	Divisions []DivisionStandings `json:"divisions"`
}

// BuildStandings tallies final regular-season games. season <= 0 selects
// the latest season present. Teams outside the static alignment are
// ignored.
func BuildStandings(games []model.GameSummary, season int) Standings {
	if season <= 0 && len(games) > 0 {
		season = latestSeason(games)
	}

	records := make(map[string]*StandingsRow, len(nfl.Teams))
	for _, t := range nfl.Teams {
		records[t.Abbr] = &StandingsRow{Abbr: t.Abbr, Name: t.Name}
	}

	for _, g := range games {
		if g.Season != season || g.IsPostseason || g.Week <= 0 || !g.IsFinal() {
			continue
		}
		if g.HomeScore == nil || g.AwayScore == nil {
			continue
		}
		home, away := records[g.HomeTeam], records[g.AwayTeam]
		hs, as := *g.HomeScore, *g.AwayScore
		switch {
		case hs > as:
			tally(home, 1, 0, 0)
			tally(away, 0, 1, 0)
		case hs < as:
			tally(home, 0, 1, 0)
			tally(away, 1, 0, 0)
		default:
			tally(home, 0, 0, 1)
			tally(away, 0, 0, 1)
		}
	}

	out := Standings{Season: season}
	for _, conf := range nfl.Conferences() {
		for _, div := range nfl.Divisions(conf) {
			var rows []StandingsRow
			for _, t := range nfl.Filter(conf, div) {
				r := *records[t.Abbr]
				if gp := r.Wins + r.Losses + r.Ties; gp > 0 {
					r.Pct = (float64(r.Wins) + 0.5*float64(r.Ties)) / float64(gp)
				}
				rows = append(rows, r)
			}
			sort.SliceStable(rows, func(i, j int) bool {
				if rows[i].Pct != rows[j].Pct {
					return rows[i].Pct > rows[j].Pct
				}
				if rows[i].Wins != rows[j].Wins {
					return rows[i].Wins > rows[j].Wins
				}
				return rows[i].Abbr < rows[j].Abbr
			})
			for i := range rows {
				rows[i].Place = i + 1
				rows[i].GamesBack = float64((rows[0].Wins-rows[i].Wins)+(rows[i].Losses-rows[0].Losses)) / 2
			}
			out.Divisions = append(out.Divisions, DivisionStandings{Conference: conf, Division: div, Teams: rows})
		}
	}
	return out
}

func tally(r *StandingsRow, w, l, t int) {
	if r == nil {
		return
	}
	r.Wins += w
	r.Losses += l
	r.Ties += t
}
