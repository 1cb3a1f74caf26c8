package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zackmeach/gridironlabs/internal/api/respond"
	"github.com/zackmeach/gridironlabs/internal/cache"
	"github.com/zackmeach/gridironlabs/internal/model"
	"github.com/zackmeach/gridironlabs/internal/service"
)

// EntityPage is a filtered, paginated slice of one entity table.
type EntityPage struct {
	Total  int                   `json:"total"`
	Offset int                   `json:"offset"`
	Limit  int                   `json:"limit"`
	Items  []model.EntitySummary `json:"items"`
}

// ListPlayers lists players.
// @Summary List players
// @Description Returns players in file order, optionally filtered.
// @Tags entities
// @Produce json
// @Param team query string false "Team abbreviation"
// @Param position query string false "Position"
// @Param era query string false "Era or season"
// @Param limit query int false "Page size (0 for all)"
// @Param offset query int false "Page offset"
// @Success 200 {object} EntityPage
// @Failure 404 {object} respond.ErrorResponse
// @Failure 422 {object} respond.ErrorResponse
// @Router /api/v1/players [get]
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	h.listEntities(w, r, model.EntityPlayer)
}

// ListTeams lists teams.
// @Summary List teams
// @Tags entities
// @Produce json
// @Success 200 {object} EntityPage
// @Router /api/v1/teams [get]
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	h.listEntities(w, r, model.EntityTeam)
}

// ListCoaches lists coaches.
// @Summary List coaches
// @Tags entities
// @Produce json
// @Success 200 {object} EntityPage
// @Router /api/v1/coaches [get]
func (h *Handler) ListCoaches(w http.ResponseWriter, r *http.Request) {
	h.listEntities(w, r, model.EntityCoach)
}

func (h *Handler) listEntities(w http.ResponseWriter, r *http.Request, t model.EntityType) {
	q := r.URL.Query()
	limit, ok := queryInt(w, q.Get("limit"), "limit", 0)
	if !ok {
		return
	}
	offset, ok := queryInt(w, q.Get("offset"), "offset", 0)
	if !ok {
		return
	}

	h.serveCached(w, r, cache.TTLEntities, func() (any, error) {
		var (
			all []model.EntitySummary
			err error
		)
		switch t {
		case model.EntityPlayer:
			all, err = h.repo.Players()
		case model.EntityTeam:
			all, err = h.repo.Teams()
		default:
			all, err = h.repo.Coaches()
		}
		if err != nil {
			return nil, err
		}
		filtered := service.FilterEntities(all, service.EntityFilter{
			Team:     q.Get("team"),
			Position: q.Get("position"),
			Era:      q.Get("era"),
		})
		return Paginate(filtered, offset, limit), nil
	})
}

// GetEntity returns one summary.
// @Summary Get entity summary
// @Description Returns the summary for a player, team or coach.
// @Tags entities
// @Produce json
// @Param entityType path string true "Entity type" Enums(player, team, coach)
// @Param entityID path string true "Entity ID"
// @Success 200 {object} model.EntitySummary
// @Failure 400 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/v1/{entityType}/{entityID} [get]
func (h *Handler) GetEntity(w http.ResponseWriter, r *http.Request) {
	t, ok := model.ParseEntityType(chi.URLParam(r, "entityType"))
	if !ok {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_ENTITY_TYPE", "entityType must be player, team or coach")
		return
	}
	id := chi.URLParam(r, "entityID")

	h.serveCached(w, r, cache.TTLEntities, func() (any, error) {
		return h.summary.Entity(t, id)
	})
}

// Search finds entities by name.
// @Summary Search entities
// @Description Case-insensitive substring search over players, then teams, then coaches.
// @Tags entities
// @Produce json
// @Param q query string true "Query"
// @Param limit query int false "Maximum results" default(10)
// @Success 200 {array} model.SearchResult
// @Router /api/v1/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, ok := queryInt(w, q.Get("limit"), "limit", 0)
	if !ok {
		return
	}
	query := q.Get("q")

	h.serveCached(w, r, cache.TTLSearch, func() (any, error) {
		return h.search.Search(query, limit)
	})
}

// Compare builds a side-by-side comparison.
// @Summary Compare entities
// @Description Resolves each id as a player; unknown ids are skipped.
// @Tags entities
// @Produce json
// @Param ids query string true "Comma-separated ids"
// @Param advanced query bool false "Enable advanced metrics"
// @Success 200 {object} model.ComparisonView
// @Failure 400 {object} respond.ErrorResponse
// @Router /api/v1/compare [get]
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ids := splitList(q.Get("ids"))
	if len(ids) == 0 {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_IDS", "ids query parameter is required")
		return
	}
	advanced, _ := strconv.ParseBool(q.Get("advanced"))

	h.serveCached(w, r, cache.TTLEntities, func() (any, error) {
		return h.summary.Compare(ids, advanced), nil
	})
}

// --------------------------------------------------------------------------
// Pagination and query parsing
// --------------------------------------------------------------------------

// Paginate slices items by offset and limit; limit <= 0 means the rest.
func Paginate(items []model.EntitySummary, offset, limit int) EntityPage {
	if items == nil {
		items = []model.EntitySummary{}
	}
	total := len(items)
	offset = min(max(0, offset), total)
	end := total
	if limit > 0 && limit < total-offset {
		end = offset + limit
	}
	return EntityPage{
		Total:  total,
		Offset: offset,
		Limit:  limit,
		Items:  items[offset:end],
	}
}

func queryInt(w http.ResponseWriter, raw, name string, fallback int) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_PARAMETER", name+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
