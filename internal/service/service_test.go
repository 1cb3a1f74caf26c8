package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zackmeach/gridironlabs/internal/apperr"
	"github.com/zackmeach/gridironlabs/internal/model"
)

// fakeRepo is an in-memory SummaryRepository.
type fakeRepo struct {
	players, teams, coaches []model.EntitySummary
	games                   []model.GameSummary
	err                     error
	loads                   int
}

func (f *fakeRepo) list(src []model.EntitySummary) ([]model.EntitySummary, error) {
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	return src, nil
}

func (f *fakeRepo) Players() ([]model.EntitySummary, error) { return f.list(f.players) }
func (f *fakeRepo) Teams() ([]model.EntitySummary, error)   { return f.list(f.teams) }
func (f *fakeRepo) Coaches() ([]model.EntitySummary, error) { return f.list(f.coaches) }

func (f *fakeRepo) Games() ([]model.GameSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.games, nil
}

func (f *fakeRepo) find(src []model.EntitySummary, id string) (model.EntitySummary, error) {
	for _, e := range src {
		if e.ID == id {
			return e, nil
		}
	}
	return model.EntitySummary{}, apperr.NotFound("%s not found", id)
}

func (f *fakeRepo) PlayerByID(id string) (model.EntitySummary, error) { return f.find(f.players, id) }
func (f *fakeRepo) TeamByID(id string) (model.EntitySummary, error)   { return f.find(f.teams, id) }
func (f *fakeRepo) CoachByID(id string) (model.EntitySummary, error)  { return f.find(f.coaches, id) }

func ptr[T any](v T) *T { return &v }

func player(id, name, team, pos, era string, stats map[string]float64) model.EntitySummary {
	return model.EntitySummary{
		ID: id, Name: name, EntityType: model.EntityPlayer,
		Team: ptr(team), Position: ptr(pos), Era: ptr(era), Stats: stats,
	}
}

func sampleRepo() *fakeRepo {
	return &fakeRepo{
		players: []model.EntitySummary{
			player("p-1", "Josh Allen", "BUF", "QB", "2025", map[string]float64{"passing_yards": 4300, "passing_tds": 29, "interceptions": 6}),
			player("p-2", "Patrick Mahomes", "KC", "QB", "2025", map[string]float64{"passing_yards": 4100, "passing_tds": 31, "rushing_yards": 300}),
			player("p-3", "Old Timer", "KC", "QB", "2019", map[string]float64{"passing_yards": 5500}),
			player("p-4", "Allen Robinson", "DET", "WR", "2025", map[string]float64{"receiving_yards": 800}),
		},
		teams: []model.EntitySummary{
			{ID: "t-buf", Name: "Buffalo Bills", EntityType: model.EntityTeam, Team: ptr("BUF"), Era: ptr("2025")},
			{ID: "t-kc", Name: "Kansas City Chiefs", EntityType: model.EntityTeam, Team: ptr("KC"), Era: ptr("2025")},
		},
		coaches: []model.EntitySummary{
			{ID: "c-1", Name: "Coach Allendale", EntityType: model.EntityCoach},
		},
	}
}

// --------------------------------------------------------------------------
// SummaryService
// --------------------------------------------------------------------------

func TestSummaryServicePropagatesNotFound(t *testing.T) {
	svc := NewSummaryService(sampleRepo(), nil)

	p, err := svc.Entity(model.EntityPlayer, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Josh Allen", p.Name)

	_, err = svc.Team("t-nope")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	_, err = svc.Entity(model.EntityCoach, "c-1")
	assert.NoError(t, err)
}

func TestCompareSkipsUnknownAndUnionsMetrics(t *testing.T) {
	svc := NewSummaryService(sampleRepo(), nil)

	view := svc.Compare([]string{"p-1", "ghost", "p-2"}, true)
	require.Len(t, view.Entities, 2)
	assert.Equal(t, "p-1", view.Entities[0].ID)
	assert.Equal(t, "p-2", view.Entities[1].ID)
	assert.True(t, view.AdvancedMetricsEnabled)
	assert.Equal(t, []string{"interceptions", "passing_tds", "passing_yards", "rushing_yards"}, view.MetricKeys)

	empty := svc.Compare(nil, false)
	assert.Empty(t, empty.Entities)
	assert.Empty(t, empty.MetricKeys)
}

// --------------------------------------------------------------------------
// SearchService
// --------------------------------------------------------------------------

func TestSearchOrderAndLimit(t *testing.T) {
	repo := sampleRepo()
	svc := NewSearchService(repo)

	results, err := svc.Search("ALLEN", 0)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "p-1", results[0].ID)
	assert.Equal(t, "p-4", results[1].ID)
	assert.Equal(t, "c-1", results[2].ID, "coaches come after players and teams")
	assert.Equal(t, model.EntityCoach, results[2].EntityType)
	assert.Nil(t, results[0].Score)
	assert.Equal(t, map[string]string{"team": "BUF", "position": "QB"}, results[0].Context)
	assert.Equal(t, map[string]string{"team": "", "position": ""}, results[2].Context)

	limited, err := svc.Search("allen", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "p-1", limited[0].ID)
}

func TestSearchEmptyQueryAndLazyIndex(t *testing.T) {
	repo := sampleRepo()
	svc := NewSearchService(repo)

	results, err := svc.Search("", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Zero(t, repo.loads, "empty query never builds the index")

	_, err = svc.Search("bills", 5)
	require.NoError(t, err)
	loads := repo.loads
	_, err = svc.Search("chiefs", 5)
	require.NoError(t, err)
	assert.Equal(t, loads, repo.loads, "index is reused")

	svc.Reset()
	_, err = svc.Search("chiefs", 5)
	require.NoError(t, err)
	assert.Greater(t, repo.loads, loads)
}

func TestSearchPropagatesRepositoryErrors(t *testing.T) {
	repo := sampleRepo()
	repo.err = apperr.NotFound("players missing")

	_, err := NewSearchService(repo).Search("x", 5)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.Error(t, NewSearchService(repo).BuildIndex())
}

// --------------------------------------------------------------------------
// League views
// --------------------------------------------------------------------------

func TestLeadersUseLatestSeason(t *testing.T) {
	svc := NewLeagueService(sampleRepo(), nil)

	board, err := svc.Leaders(0)
	require.NoError(t, err)
	require.NotNil(t, board.Season)
	assert.Equal(t, 2025, *board.Season)
	assert.Equal(t, "Season 2025", board.SeasonLabel)

	require.NotEmpty(t, board.Groups)
	passing := board.Groups[0]
	assert.Equal(t, "Passing", passing.Title)
	yards := passing.Stats[0]
	assert.Equal(t, "passing_yards", yards.Key)
	require.Len(t, yards.Entries, 2)
	assert.Equal(t, "Josh Allen", yards.Entries[0].Name, "2019 season is excluded")
	assert.Equal(t, 4300.0, yards.Entries[0].Value)

	titles := make([]string, 0, len(board.Groups))
	for _, g := range board.Groups {
		titles = append(titles, g.Title)
	}
	assert.Equal(t, []string{"Passing", "Rushing", "Receiving"}, titles, "groups without data are omitted")
}

func TestLeaderboardWithoutNumericEras(t *testing.T) {
	players := []model.EntitySummary{
		{ID: "a", Name: "A", Stats: map[string]float64{"sacks": 3}},
		{ID: "b", Name: "B", Stats: map[string]float64{"sacks": 3}},
		{ID: "c", Name: "C", Stats: map[string]float64{"sacks": 9}},
	}
	board := BuildLeaderboard(players, 3)
	assert.Nil(t, board.Season)
	require.Len(t, board.Groups, 1)
	entries := board.Groups[0].Stats[0].Entries
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{entries[0].ID, entries[1].ID, entries[2].ID}, "ties keep insertion order")
}

func TestLeaderboardRanksTurnoversHighestFirst(t *testing.T) {
	players := []model.EntitySummary{
		{ID: "low", Name: "Low", Stats: map[string]float64{"interceptions": 4}},
		{ID: "high", Name: "High", Stats: map[string]float64{"interceptions": 15}},
	}
	board := BuildLeaderboard(players, 0)
	require.Len(t, board.Groups, 1)
	turnovers := board.Groups[0].Stats[0]
	assert.Equal(t, "Turnovers", turnovers.Label)
	require.Len(t, turnovers.Entries, 2)
	assert.Equal(t, "high", turnovers.Entries[0].ID)
}

func at(month time.Month, day, hour int) time.Time {
	return time.Date(2025, month, day, hour, 0, 0, 0, time.UTC)
}

func game(id string, week int, home, away string, start time.Time) model.GameSummary {
	return model.GameSummary{ID: id, Season: 2025, Week: week, HomeTeam: home, AwayTeam: away, StartTime: start, Status: model.StatusScheduled}
}

func final(g model.GameSummary, home, away int) model.GameSummary {
	g.Status = model.StatusFinal
	g.HomeScore = &home
	g.AwayScore = &away
	return g
}

func TestBuildScheduleGroupsAndOrders(t *testing.T) {
	sb := game("g-sb", 22, "KC", "PHI", at(time.February, 9, 23))
	sb.IsPostseason, sb.PlayoffRound = true, ptr("Super Bowl")
	wc := game("g-wc", 19, "BUF", "DEN", at(time.January, 12, 18))
	wc.IsPostseason, wc.PlayoffRound = true, ptr("Wild-Card")

	games := []model.GameSummary{
		sb,
		game("g-2b", 2, "NYJ", "BUF", at(time.September, 14, 20)),
		game("g-2a", 2, "KC", "CIN", at(time.September, 14, 17)),
		game("g-pre", -1, "DAL", "LAR", at(time.August, 9, 20)),
		wc,
		game("g-1", 1, "BUF", "BAL", at(time.September, 7, 20)),
		{ID: "g-old", Season: 2024, Week: 1, StartTime: at(time.September, 8, 17)},
	}

	sched := BuildSchedule(games)
	assert.Equal(t, 2025, sched.Season)

	labels := make([]string, 0, len(sched.Groups))
	for _, g := range sched.Groups {
		labels = append(labels, g.Label)
	}
	assert.Equal(t, []string{"Preseason Week 1", "Week 1", "Week 2", "Wildcard Round", "Super Bowl"}, labels)

	week2 := sched.Groups[2]
	assert.Equal(t, KindRegular, week2.Kind)
	require.Len(t, week2.Games, 2)
	assert.Equal(t, "g-2a", week2.Games[0].ID, "games sort by start time")

	assert.Equal(t, "Playoffs (Week 20)", WeekLabel(model.GameSummary{IsPostseason: true, Week: 20}))
	assert.Equal(t, "Semifinal Round", WeekLabel(model.GameSummary{IsPostseason: true, PlayoffRound: ptr("Semifinal")}))
	assert.Empty(t, BuildSchedule(nil).Groups)
}

func TestBuildMatchupsPicksNextWeek(t *testing.T) {
	games := []model.GameSummary{
		final(game("g-1", 1, "BUF", "BAL", at(time.September, 7, 20)), 41, 40),
		game("g-3b", 3, "KC", "BUF", at(time.September, 21, 20)),
		game("g-3a", 3, "MIA", "NYJ", at(time.September, 21, 17)),
		game("g-4", 4, "NE", "MIA", at(time.September, 28, 17)),
	}
	teams := []model.EntitySummary{{Team: ptr("BUF"), Name: "Buffalo Bills (custom)"}}

	got := BuildMatchups(games, teams, at(time.September, 15, 0))
	assert.Equal(t, []string{
		"Week 3 Sun Sep 21st New York Jets @ Miami Dolphins",
		"Week 3 Sun Sep 21st Buffalo Bills (custom) @ Kansas City Chiefs",
	}, got)

	after := BuildMatchups(games, nil, at(time.December, 1, 0))
	require.Len(t, after, 2, "no future games falls back to the earliest unfinished week")
	assert.Contains(t, after[0], "Week 3")

	done := []model.GameSummary{
		final(game("g-1", 1, "BUF", "BAL", at(time.September, 7, 20)), 1, 0),
		final(game("g-2", 2, "BUF", "NE", at(time.September, 14, 20)), 1, 0),
	}
	last := BuildMatchups(done, nil, at(time.December, 1, 0))
	require.Len(t, last, 1)
	assert.Equal(t, "Week 2 Sun Sep 14th New England Patriots @ Buffalo Bills", last[0])

	assert.Empty(t, BuildMatchups(nil, nil, time.Now()))
}

func TestOrdinal(t *testing.T) {
	for n, want := range map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 22: "22nd", 111: "111th"} {
		assert.Equal(t, want, Ordinal(n))
	}
}

func TestBuildStandings(t *testing.T) {
	games := []model.GameSummary{
		final(game("g-1", 1, "BUF", "MIA", at(time.September, 7, 17)), 30, 10),
		final(game("g-2", 2, "NE", "BUF", at(time.September, 14, 17)), 20, 20),
		final(game("g-3", 2, "MIA", "NYJ", at(time.September, 14, 17)), 24, 3),
		game("g-4", 3, "BUF", "NYJ", at(time.September, 21, 17)),
		final(game("g-pre", 0, "BUF", "NYJ", at(time.August, 21, 17)), 0, 50),
	}

	st := BuildStandings(games, 0)
	assert.Equal(t, 2025, st.Season)
	require.Len(t, st.Divisions, 8)

	east := st.Divisions[0]
	assert.Equal(t, "AFC East", east.Division)
	require.Len(t, east.Teams, 4)

	buf := east.Teams[0]
	assert.Equal(t, "BUF", buf.Abbr)
	assert.Equal(t, 1, buf.Place)
	assert.Equal(t, "1-0-1", buf.Record())
	assert.InDelta(t, 0.75, buf.Pct, 1e-9)

	mia := east.Teams[1]
	assert.Equal(t, "MIA", mia.Abbr)
	assert.Equal(t, "1-1", mia.Record())
	assert.InDelta(t, 0.5, mia.GamesBack, 1e-9)

	assert.Equal(t, "NE", east.Teams[2].Abbr)
	assert.Equal(t, "NYJ", east.Teams[3].Abbr, "preseason losses do not count")
	assert.Equal(t, "0-1", east.Teams[3].Record())
}

func TestOverview(t *testing.T) {
	svc := NewLeagueService(sampleRepo(), nil)
	ov, err := svc.Overview()
	require.NoError(t, err)
	assert.Equal(t, Overview{Players: 4, Teams: 2, Coaches: 1, SeasonSpan: "2019-2025"}, ov)

	assert.Equal(t, NoSeasons, SeasonSpan(nil))
}
