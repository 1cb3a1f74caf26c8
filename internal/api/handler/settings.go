package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zackmeach/gridironlabs/internal/api/respond"
	"github.com/zackmeach/gridironlabs/internal/apperr"
	"github.com/zackmeach/gridironlabs/internal/settings"
)

// TableStateRequest is the PUT body for table settings. SortOrder accepts
// "asc", "desc", "0" or "1".
type TableStateRequest struct {
	Widths      []int  `json:"widths"`
	ColumnCount int    `json:"column_count"`
	StretchLast bool   `json:"stretch_last"`
	SortColumn  *int   `json:"sort_column"`
	SortOrder   string `json:"sort_order"`
}

// GetTableState returns persisted widths and sort state.
// @Summary Get table state
// @Tags settings
// @Produce json
// @Param page path string true "Page id"
// @Param table path string true "Table id"
// @Param version path string true "Table layout version"
// @Param columns query int false "Column count used to trim widths"
// @Param stretch_last query bool false "Last column stretches (not persisted)"
// @Success 200 {object} settings.TableState
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/settings/tables/{page}/{table}/{version} [get]
func (h *Handler) GetTableState(w http.ResponseWriter, r *http.Request) {
	if !h.requireSettings(w, r) {
		return
	}
	q := r.URL.Query()
	columns, ok := queryInt(w, q.Get("columns"), "columns", 0)
	if !ok {
		return
	}
	stretch, _ := strconv.ParseBool(q.Get("stretch_last"))

	state, err := h.settings.LoadTableState(r.Context(), tableKey(r), settings.PersistCount(columns, stretch))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, state)
}

// PutTableState persists widths and, when given, the sort state.
// @Summary Save table state
// @Tags settings
// @Accept json
// @Produce json
// @Param page path string true "Page id"
// @Param table path string true "Table id"
// @Param version path string true "Table layout version"
// @Param body body TableStateRequest true "State"
// @Success 200 {object} settings.TableState
// @Failure 400 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/settings/tables/{page}/{table}/{version} [put]
func (h *Handler) PutTableState(w http.ResponseWriter, r *http.Request) {
	if !h.requireSettings(w, r) {
		return
	}
	var req TableStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_BODY", "request body must be JSON")
		return
	}

	var order settings.SortOrder
	if req.SortColumn != nil {
		var ok bool
		if order, ok = settings.ParseSortOrder(req.SortOrder); !ok {
			respond.WriteError(w, http.StatusBadRequest, "INVALID_SORT_ORDER", "sort_order must be asc or desc")
			return
		}
	}

	ctx := r.Context()
	key := tableKey(r)
	persist := settings.PersistCount(req.ColumnCount, req.StretchLast)
	if req.Widths != nil {
		if err := h.settings.SaveColumnWidths(ctx, key, req.Widths, persist); err != nil {
			h.writeError(w, r, err)
			return
		}
	}
	if req.SortColumn != nil {
		if err := h.settings.SaveSort(ctx, key, *req.SortColumn, order); err != nil {
			h.writeError(w, r, err)
			return
		}
	}

	state, err := h.settings.LoadTableState(ctx, key, persist)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, state)
}

func (h *Handler) requireSettings(w http.ResponseWriter, r *http.Request) bool {
	if h.settings == nil {
		h.writeError(w, r, apperr.MissingDependency("settings store is not configured"))
		return false
	}
	return true
}

func tableKey(r *http.Request) settings.TableKey {
	return settings.TableKey{
		PageID:  chi.URLParam(r, "page"),
		TableID: chi.URLParam(r, "table"),
		Version: chi.URLParam(r, "version"),
	}
}
