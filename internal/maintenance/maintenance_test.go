package maintenance

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherDetectsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "players.parquet")
	require.NoError(t, os.WriteFile(path, []byte("one"), 0o644))

	w := NewWatcher(dir, []string{"players", "games"})
	assert.Empty(t, w.Changed())

	require.NoError(t, os.WriteFile(path, []byte("three"), 0o644))
	assert.Equal(t, []string{"players"}, w.Changed())
	assert.Empty(t, w.Changed(), "state is recorded after each call")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "games.parquet"), []byte("x"), 0o644))
	assert.Equal(t, []string{"games"}, w.Changed())
}

func TestWatcherDetectsSameSizeRewrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "teams.parquet")
	require.NoError(t, os.WriteFile(path, []byte("aaaa"), 0o644))
	old := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, os.Chtimes(path, old, old))

	w := NewWatcher(dir, []string{"teams"})
	require.NoError(t, os.WriteFile(path, []byte("bbbb"), 0o644))
	later := old.Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))
	assert.Equal(t, []string{"teams"}, w.Changed())
}

func TestFileStampEqualIgnoresLocation(t *testing.T) {
	instant := time.Date(2025, time.September, 7, 13, 0, 0, 0, time.UTC)
	a := fileStamp{modTime: instant, size: 10, exists: true}
	b := fileStamp{modTime: instant.In(time.FixedZone("EDT", -4*3600)), size: 10, exists: true}
	assert.True(t, a.equal(b))
	assert.False(t, a.equal(fileStamp{modTime: instant, size: 11, exists: true}))
	assert.False(t, a.equal(fileStamp{}))
}

func TestStartRunsTasksUntilCancelled(t *testing.T) {
	dir := t.TempDir()
	w := NewWatcher(dir, []string{"teams"})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "teams.parquet"), []byte("t"), 0o644))

	var reloads, rebuilds atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Start(ctx, Config{RefreshInterval: 2 * time.Millisecond, MatchupsInterval: 2 * time.Millisecond}, Tasks{
			Watcher:         w,
			Reload:          func() { reloads.Add(1) },
			RebuildMatchups: func() { rebuilds.Add(1) },
		}, slog.New(slog.NewTextHandler(io.Discard, nil)))
		close(done)
	}()

	assert.Eventually(t, func() bool { return reloads.Load() == 1 && rebuilds.Load() > 0 }, time.Second, time.Millisecond)
	cancel()
	<-done
	assert.Equal(t, int32(1), reloads.Load(), "unchanged files do not reload again")
}
