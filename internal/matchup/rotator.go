// Package matchup cycles the upcoming-matchup strings shown in the
// navigation context area.
package matchup

import (
	"context"
	"slices"
	"sync"
	"time"
)

// DefaultInterval is how long each matchup is shown.
const DefaultInterval = 6 * time.Second

// Rotator holds a list of matchups and the index of the one on display.
type Rotator struct {
	mu    sync.RWMutex
	items []string
	index int
}

// NewRotator creates a rotator over items.
func NewRotator(items []string) *Rotator {
	r := &Rotator{}
	r.Set(items)
	return r
}

// Set replaces the items and resets the index.
func (r *Rotator) Set(items []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = slices.Clone(items)
	r.index = 0
}

// Current is the matchup on display. ok is false when there are none.
func (r *Rotator) Current() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.items) == 0 {
		return "", false
	}
	return r.items[r.index], true
}

// Items returns a copy of every matchup.
func (r *Rotator) Items() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items)
}

// Advance moves to the next matchup, wrapping at the end.
func (r *Rotator) Advance() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return "", false
	}
	r.index = (r.index + 1) % len(r.items)
	return r.items[r.index], true
}

// Run advances every interval until ctx is cancelled. With fewer than two
// items there is nothing to cycle, so ticks are skipped.
func (r *Rotator) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}
	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			r.mu.RLock()
			n := len(r.items)
			r.mu.RUnlock()
			if n > 1 {
				r.Advance()
			}
		case <-ctx.Done():
			return
		}
	}
}
