// Package maintenance runs the periodic background tasks of the serve
// command as Go tickers: polling the processed tables for changes and
// recomputing the upcoming-matchup week.
package maintenance

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Config controls task intervals. Zero duration disables a task.
type Config struct {
	RefreshInterval  time.Duration // Poll Parquet files and reload on change
	MatchupsInterval time.Duration // Recompute which week is "upcoming"
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		RefreshInterval:  30 * time.Second,
		MatchupsInterval: 1 * time.Hour,
	}
}

// Tasks are the callbacks the tickers drive. Nil callbacks are skipped.
type Tasks struct {
	Watcher         *Watcher
	Reload          func()
	RebuildMatchups func()
}

// Start launches all configured tickers. Blocks until ctx is cancelled.
// Intended to be called with `go`.
func Start(ctx context.Context, cfg Config, tasks Tasks, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"refresh", cfg.RefreshInterval,
		"matchups", cfg.MatchupsInterval)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	// Refresh: reload caches when a processed table changes on disk
	if cfg.RefreshInterval > 0 && tasks.Watcher != nil && tasks.Reload != nil {
		t := time.NewTicker(cfg.RefreshInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() {
			if changed := tasks.Watcher.Changed(); len(changed) > 0 {
				logger.Info("Refresh: processed tables changed", "tables", changed)
				tasks.Reload()
			}
		})
	}

	// Matchups: the upcoming week moves as games kick off
	if cfg.MatchupsInterval > 0 && tasks.RebuildMatchups != nil {
		t := time.NewTicker(cfg.MatchupsInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, tasks.RebuildMatchups)
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// File watcher
// --------------------------------------------------------------------------

type fileStamp struct {
	modTime time.Time
	size    int64
	exists  bool
}

func (s fileStamp) equal(o fileStamp) bool {
	return s.exists == o.exists && s.size == o.size && s.modTime.Equal(o.modTime)
}

// Watcher detects changes to <dir>/<table>.parquet by modification time
// and size.
type Watcher struct {
	dir    string
	tables []string

	mu     sync.Mutex
	stamps map[string]fileStamp
}

// NewWatcher snapshots the current state of each table file.
func NewWatcher(dir string, tables []string) *Watcher {
	w := &Watcher{dir: dir, tables: tables, stamps: make(map[string]fileStamp, len(tables))}
	for _, t := range tables {
		w.stamps[t] = w.stamp(t)
	}
	return w
}

func (w *Watcher) stamp(table string) fileStamp {
	info, err := os.Stat(filepath.Join(w.dir, table+".parquet"))
	if err != nil {
		return fileStamp{}
	}
	return fileStamp{modTime: info.ModTime(), size: info.Size(), exists: true}
}

// Changed returns the tables whose file changed since the last call and
// records the new state.
func (w *Watcher) Changed() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	var changed []string
	for _, t := range w.tables {
		s := w.stamp(t)
		if !s.equal(w.stamps[t]) {
			changed = append(changed, t)
			w.stamps[t] = s
		}
	}
	return changed
}
