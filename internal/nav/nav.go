// Package nav implements browser-style back/forward history over section
// keys and the mapping from semantic routes to page keys.
package nav

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/zackmeach/gridironlabs/internal/model"
)

// Sections are the top-level navigation targets, in menu order.
var Sections = []string{"home", "seasons", "teams", "players", "drafts", "history"}

// routePages maps a semantic Route.Page to the page key that renders it.
var routePages = map[string]string{
	"home":     "home",
	"player":   "player-summary",
	"team":     "team-summary",
	"coach":    "coach-summary",
	"search":   "search",
	"settings": "settings",
	"seasons":  "seasons",
	"teams":    "teams",
	"players":  "players",
	"drafts":   "drafts",
	"history":  "history",
}

// PageKey returns the page key for a route page.
func PageKey(page string) (string, bool) {
	k, ok := routePages[page]
	return k, ok
}

// ParseRoute parses the canonical route form: "home", "player:p-1",
// "player:p-1@2025".
func ParseRoute(s string) (model.Route, error) {
	s = strings.TrimSpace(s)
	page, rest, hasEntity := strings.Cut(s, ":")
	if _, ok := routePages[page]; !ok {
		return model.Route{}, fmt.Errorf("unknown page %q", page)
	}
	if !hasEntity {
		return model.Route{Page: page}, nil
	}

	entityType, ok := model.ParseEntityType(page)
	if !ok {
		return model.Route{}, fmt.Errorf("page %q does not take an entity", page)
	}
	id, seasonText, hasSeason := strings.Cut(rest, "@")
	if id == "" {
		return model.Route{}, fmt.Errorf("route %q has no entity id", s)
	}
	ref := &model.EntityRef{EntityType: entityType, ID: id}
	if hasSeason {
		season, err := strconv.Atoi(seasonText)
		if err != nil {
			return model.Route{}, fmt.Errorf("route %q: bad season %q", s, seasonText)
		}
		ref.Season = &season
	}
	return model.Route{Page: page, Entity: ref}, nil
}

// History is an append-only list of visited keys plus a cursor. Visiting
// a new key from the middle of the list discards the forward entries.
type History struct {
	mu      sync.Mutex
	entries []string
	index   int
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{index: -1}
}

// Visit records key unless it is already the current entry.
func (h *History) Visit(key string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index >= 0 && h.entries[h.index] == key {
		return
	}
	h.entries = append(h.entries[:h.index+1], key)
	h.index = len(h.entries) - 1
}

// Back moves one entry back. ok is false at the start of history.
func (h *History) Back() (key string, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index <= 0 {
		return "", false
	}
	h.index--
	return h.entries[h.index], true
}

// Forward moves one entry forward. ok is false at the end of history.
func (h *History) Forward() (key string, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index >= len(h.entries)-1 {
		return "", false
	}
	h.index++
	return h.entries[h.index], true
}

// Current is the entry at the cursor, or "home" when nothing was visited.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index < 0 {
		return "home"
	}
	return h.entries[h.index]
}

// CanBack reports whether Back would move.
func (h *History) CanBack() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index > 0
}

// CanForward reports whether Forward would move.
func (h *History) CanForward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index < len(h.entries)-1
}

// Len is the number of recorded entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
