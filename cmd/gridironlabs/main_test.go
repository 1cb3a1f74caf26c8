package main

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zackmeach/gridironlabs/internal/apperr"
	"github.com/zackmeach/gridironlabs/internal/config"
	"github.com/zackmeach/gridironlabs/internal/repository"
	"github.com/zackmeach/gridironlabs/internal/service"
	"github.com/zackmeach/gridironlabs/internal/settings"
)

type ratingsRow struct {
	Overall *float64 `parquet:"overall"`
}

type entityRow struct {
	ID       string             `parquet:"id"`
	Name     string             `parquet:"name"`
	Position *string            `parquet:"position"`
	Team     *string            `parquet:"team"`
	Era      *string            `parquet:"era"`
	Ratings  *ratingsRow        `parquet:"ratings"`
	Stats    map[string]float64 `parquet:"stats"`
}

func str(s string) *string { return &s }

// testApp builds an app over players, teams and coaches tables; games is
// left missing on purpose.
func testApp(t *testing.T) *app {
	t.Helper()
	dir := t.TempDir()
	write := func(table string, rows []entityRow) {
		require.NoError(t, parquet.WriteFile(filepath.Join(dir, table+".parquet"), rows))
	}
	write(config.PlayersTable, []entityRow{
		{ID: "p-1", Name: "Patrick Mahomes", Position: str("QB"), Team: str("KC"), Era: str("2025"), Stats: map[string]float64{"passing_yards": 4100}},
		{ID: "p-2", Name: "Josh Allen", Position: str("QB"), Team: str("BUF"), Era: str("2025"), Stats: map[string]float64{"passing_yards": 3900}},
	})
	write(config.TeamsTable, []entityRow{{ID: "KC", Name: "Kansas City Chiefs", Era: str("2025")}})
	write(config.CoachesTable, []entityRow{{ID: "c-1", Name: "Andy Reid", Team: str("KC"), Era: str("2025")}})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := repository.New(dir, repository.WithLogger(logger))
	return &app{
		cfg:     &config.Config{Paths: config.NewPaths(t.TempDir())},
		logger:  logger,
		repo:    repo,
		summary: service.NewSummaryService(repo, logger),
		search:  service.NewSearchService(repo),
		league:  service.NewLeagueService(repo, logger),
	}
}

func TestBannerAndExitCode(t *testing.T) {
	err := apperr.NotFound("Player %s not found", "p-9")
	assert.Equal(t, "ERROR [NOT_FOUND]: Player p-9 not found", banner(err))
	assert.Equal(t, 3, exitCode(err))

	wrapped := errors.Join(apperr.DataValidation("bad games"))
	assert.Equal(t, 4, exitCode(wrapped))
	assert.Equal(t, 5, exitCode(apperr.MissingDependency("no db")))

	plain := errors.New("boom")
	assert.Equal(t, "ERROR: boom", banner(plain))
	assert.Equal(t, 1, exitCode(plain))
}

func TestParseSortAndInts(t *testing.T) {
	col, order, err := parseSort("2:desc")
	require.NoError(t, err)
	assert.Equal(t, 2, col)
	assert.Equal(t, settings.Descending, order)

	col, order, err = parseSort("0")
	require.NoError(t, err)
	assert.Equal(t, 0, col)
	assert.Equal(t, settings.Ascending, order)

	_, _, err = parseSort("x:asc")
	assert.Error(t, err)
	_, _, err = parseSort("1:up")
	assert.Error(t, err)

	ws, err := parseInts("120, 80,,64")
	require.NoError(t, err)
	assert.Equal(t, []int{120, 80, 64}, ws)
	_, err = parseInts("120,wide")
	assert.Error(t, err)

	w := 300
	assert.Equal(t, "120,-,300", joinWidths([]*int{&ws[0], nil, &w}))
	assert.Equal(t, "-", joinWidths(nil))
}

func TestBrowseSession(t *testing.T) {
	a := testApp(t)
	var out bytes.Buffer
	b := newBrowser(a, &out)

	script := strings.Join([]string{
		"open player p-1",
		"open team KC",
		"back",
		"go seasons",
		"forward",
		"search allen",
		"go nowhere",
		"where",
		"quit",
		"go teams",
	}, "\n")
	require.NoError(t, b.Run(strings.NewReader(script), false))

	text := out.String()
	assert.Contains(t, text, "== home ==")
	assert.Contains(t, text, "Players  2")
	assert.Contains(t, text, "== player-summary ==")
	assert.Contains(t, text, "Patrick Mahomes")
	assert.Contains(t, text, "== team-summary ==")
	assert.Contains(t, text, "ERROR [NOT_FOUND]: Parquet table games not found")
	assert.Contains(t, text, "Already at the newest page")
	assert.Contains(t, text, "p-2")
	assert.Contains(t, text, `Unknown section "nowhere"`)
	assert.Contains(t, text, "seasons\n")
	assert.NotContains(t, text, "Kansas City Chiefs  -", "commands after quit are ignored")

	assert.Equal(t, "seasons", b.history.Current())
	assert.False(t, b.history.CanForward())
}

func TestOutputJSON(t *testing.T) {
	jsonOutput = true
	t.Cleanup(func() { jsonOutput = false })

	var out bytes.Buffer
	require.NoError(t, output(&out, map[string]int{"players": 2}, nil))
	assert.JSONEq(t, `{"players":2}`, out.String())
}
