package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zackmeach/gridironlabs/internal/api/handler"
	"github.com/zackmeach/gridironlabs/internal/apperr"
	"github.com/zackmeach/gridironlabs/internal/cache"
	"github.com/zackmeach/gridironlabs/internal/config"
	"github.com/zackmeach/gridironlabs/internal/matchup"
	"github.com/zackmeach/gridironlabs/internal/model"
	"github.com/zackmeach/gridironlabs/internal/service"
	"github.com/zackmeach/gridironlabs/internal/settings"
)

type memRepo struct {
	players, teams, coaches []model.EntitySummary
	games                   []model.GameSummary
	invalid                 error
	playerLoads             int
}

func (m *memRepo) Players() ([]model.EntitySummary, error) {
	m.playerLoads++
	return m.players, nil
}

func (m *memRepo) Teams() ([]model.EntitySummary, error)   { return m.teams, nil }
func (m *memRepo) Coaches() ([]model.EntitySummary, error) { return m.coaches, nil }
func (m *memRepo) Games() ([]model.GameSummary, error)     { return m.games, nil }
func (m *memRepo) ValidateSchema() error                   { return m.invalid }
func (m *memRepo) SchemaVersion() string                   { return "v0" }

func (m *memRepo) byID(src []model.EntitySummary, label, id string) (model.EntitySummary, error) {
	for _, e := range src {
		if e.ID == id {
			return e, nil
		}
	}
	return model.EntitySummary{}, apperr.NotFound("%s %s not found", label, id)
}

func (m *memRepo) PlayerByID(id string) (model.EntitySummary, error) {
	return m.byID(m.players, "Player", id)
}
func (m *memRepo) TeamByID(id string) (model.EntitySummary, error) {
	return m.byID(m.teams, "Team", id)
}
func (m *memRepo) CoachByID(id string) (model.EntitySummary, error) {
	return m.byID(m.coaches, "Coach", id)
}

func str(s string) *string { return &s }
func num(n int) *int       { return &n }

func sampleRepo() *memRepo {
	return &memRepo{
		players: []model.EntitySummary{
			{ID: "p-1", Name: "Patrick Mahomes", EntityType: model.EntityPlayer, Team: str("KC"), Position: str("QB"), Era: str("2025"), Stats: map[string]float64{"passing_yards": 4100}},
			{ID: "p-2", Name: "Josh Allen", EntityType: model.EntityPlayer, Team: str("BUF"), Position: str("QB"), Era: str("2025"), Stats: map[string]float64{"passing_yards": 3900}},
			{ID: "p-3", Name: "Travis Kelce", EntityType: model.EntityPlayer, Team: str("KC"), Position: str("TE"), Era: str("2025"), Stats: map[string]float64{"receiving_yards": 900}},
		},
		teams: []model.EntitySummary{
			{ID: "KC", Name: "Kansas City Chiefs", EntityType: model.EntityTeam},
			{ID: "BUF", Name: "Buffalo Bills", EntityType: model.EntityTeam},
		},
		coaches: []model.EntitySummary{{ID: "c-1", Name: "Andy Reid", EntityType: model.EntityCoach, Team: str("KC")}},
		games: []model.GameSummary{
			{ID: "g-1", Season: 2025, Week: 1, HomeTeam: "KC", AwayTeam: "BUF", StartTime: time.Date(2025, 9, 7, 20, 0, 0, 0, time.UTC), Status: model.StatusFinal, HomeScore: num(27), AwayScore: num(20)},
			{ID: "g-2", Season: 2025, Week: 2, HomeTeam: "BUF", AwayTeam: "KC", StartTime: time.Date(2025, 9, 14, 20, 0, 0, 0, time.UTC), Status: model.StatusScheduled},
		},
	}
}

type testServer struct {
	handler http.Handler
	repo    *memRepo
	cache   *cache.Cache
}

func newTestServer(t *testing.T, store *settings.Store) *testServer {
	t.Helper()
	repo := sampleRepo()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := cache.New(true)
	search := service.NewSearchService(repo)
	deps := handler.Deps{
		Repo:     repo,
		Summary:  service.NewSummaryService(repo, logger),
		Search:   search,
		League:   service.NewLeagueService(repo, logger),
		Settings: store,
		Rotator:  matchup.NewRotator([]string{"Week 2 Sun Sep 14th Chiefs @ Bills"}),
		Cache:    c,
		Config:   &config.Config{Environment: "test", CORSAllowOrigins: []string{"http://localhost:5173"}},
		Logger:   logger,
		Reload: func() {
			search.Reset()
			c.Clear()
		},
		Now: func() time.Time { return time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC) },
	}
	return &testServer{handler: NewRouter(deps), repo: repo, cache: c}
}

func (s *testServer) do(t *testing.T, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Process-Time"))

	rec = s.do(t, http.MethodGet, "/health/data", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	s.repo.invalid = apperr.DataValidation("Table games is missing required columns: week")
	rec = s.do(t, http.MethodGet, "/health/data", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing required columns")
}

func TestListPlayersFiltersAndPaginates(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/players?team=kc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[handler.EntityPage](t, rec)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, "p-1", page.Items[0].ID)
	assert.Equal(t, "p-3", page.Items[1].ID)

	rec = s.do(t, http.MethodGet, "/api/v1/players?limit=1&offset=1", "")
	page = decode[handler.EntityPage](t, rec)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "p-2", page.Items[0].ID)

	rec = s.do(t, http.MethodGet, "/api/v1/players?limit=9223372036854775807&offset=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page = decode[handler.EntityPage](t, rec)
	assert.Len(t, page.Items, 2)

	rec = s.do(t, http.MethodGet, "/api/v1/players?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResponseCacheAndETag(t *testing.T) {
	s := newTestServer(t, nil)

	first := s.do(t, http.MethodGet, "/api/v1/players", "")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	second := s.do(t, http.MethodGet, "/api/v1/players", "")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, 1, s.repo.playerLoads)

	notModified := s.do(t, http.MethodGet, "/api/v1/players", "", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, notModified.Code)

	reload := s.do(t, http.MethodPost, "/api/v1/reload", "")
	assert.Equal(t, http.StatusOK, reload.Code)
	third := s.do(t, http.MethodGet, "/api/v1/players", "")
	assert.Equal(t, "MISS", third.Header().Get("X-Cache"))
	assert.Equal(t, 2, s.repo.playerLoads)
}

func TestGetEntity(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/player/p-1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Patrick Mahomes", decode[model.EntitySummary](t, rec).Name)

	rec = s.do(t, http.MethodGet, "/api/v1/coaches/c-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/player/p-404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[map[string]map[string]string](t, rec)
	assert.Equal(t, "NOT_FOUND", body["error"]["code"])
	assert.Equal(t, "Player p-404 not found", body["error"]["message"])

	rec = s.do(t, http.MethodGet, "/api/v1/referee/r-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchAndCompare(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/search?q=KANSAS", "")
	require.Equal(t, http.StatusOK, rec.Code)
	results := decode[[]model.SearchResult](t, rec)
	require.Len(t, results, 1)
	assert.Equal(t, "KC", results[0].ID)

	rec = s.do(t, http.MethodGet, "/api/v1/search?q=h%20a", "")
	require.Equal(t, http.StatusOK, rec.Code)
	results = decode[[]model.SearchResult](t, rec)
	require.Len(t, results, 1, "whitespace is part of the query")
	assert.Equal(t, "p-2", results[0].ID)

	rec = s.do(t, http.MethodGet, "/api/v1/search?q=%20", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]model.SearchResult](t, rec), 6, "a lone space matches every multi-word name")

	rec = s.do(t, http.MethodGet, "/api/v1/compare?ids=p-1,p-404,p-3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[model.ComparisonView](t, rec)
	assert.Len(t, view.Entities, 2)
	assert.Equal(t, []string{"passing_yards", "receiving_yards"}, view.MetricKeys)

	rec = s.do(t, http.MethodGet, "/api/v1/compare", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeagueEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/v1/games?team=kc&week=2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	games := decode[[]model.GameSummary](t, rec)
	require.Len(t, games, 1)
	assert.Equal(t, "g-2", games[0].ID)

	rec = s.do(t, http.MethodGet, "/api/v1/games?season=soon", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/standings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	standings := decode[service.Standings](t, rec)
	assert.Equal(t, 2025, standings.Season)

	rec = s.do(t, http.MethodGet, "/api/v1/matchups", "")
	require.Equal(t, http.StatusOK, rec.Code)
	m := decode[map[string]any](t, rec)
	assert.Equal(t, "Week 2 Sun Sep 14th Chiefs @ Bills", m["current"])

	rec = s.do(t, http.MethodGet, "/api/v1/overview", "")
	require.Equal(t, http.StatusOK, rec.Code)
	overview := decode[service.Overview](t, rec)
	assert.Equal(t, 3, overview.Players)
	assert.Equal(t, "2025-2025", overview.SeasonSpan)

	rec = s.do(t, http.MethodGet, "/api/v1/league/teams?conference=afc&division=AFC%20West", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]string](t, rec), 4)
}

func TestTableSettingsRoutes(t *testing.T) {
	store, err := settings.Open(filepath.Join(t.TempDir(), "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	s := newTestServer(t, store)

	target := "/api/v1/settings/tables/players/roster/v1"
	rec := s.do(t, http.MethodPut, target,
		`{"widths":[120,80,300],"column_count":3,"stretch_last":true,"sort_column":1,"sort_order":"desc"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, target, "")
	require.Equal(t, http.StatusOK, rec.Code)
	state := decode[settings.TableState](t, rec)
	assert.Equal(t, []*int{num(120), num(80)}, state.Widths)
	require.NotNil(t, state.SortColumn)
	assert.Equal(t, 1, *state.SortColumn)
	assert.Equal(t, settings.Descending, *state.SortOrder)

	rec = s.do(t, http.MethodPut, target, `{"sort_column":1,"sort_order":"sideways"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSettingsUnavailableWithoutStore(t *testing.T) {
	s := newTestServer(t, nil)
	rec := s.do(t, http.MethodGet, "/api/v1/settings/tables/home/leaders/v1", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_DEPENDENCY")
}

func TestRateLimit(t *testing.T) {
	mw := RateLimitMiddleware(2, time.Minute)
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	// burst is half the window quota
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests, http.StatusTooManyRequests}, codes)
}
