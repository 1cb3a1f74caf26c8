package handler

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zackmeach/gridironlabs/internal/model"
)

func entities(n int) []model.EntitySummary {
	out := make([]model.EntitySummary, n)
	for i := range out {
		out[i] = model.EntitySummary{ID: fmt.Sprintf("p-%d", i+1), EntityType: model.EntityPlayer}
	}
	return out
}

func TestPaginate(t *testing.T) {
	items := entities(5)

	tests := []struct {
		name          string
		offset, limit int
		wantOffset    int
		wantIDs       []string
	}{
		{"all", 0, 0, 0, []string{"p-1", "p-2", "p-3", "p-4", "p-5"}},
		{"window", 1, 2, 1, []string{"p-2", "p-3"}},
		{"limit past end", 3, 10, 3, []string{"p-4", "p-5"}},
		{"offset past end", 9, 2, 5, []string{}},
		{"negative offset", -4, 1, 0, []string{"p-1"}},
		{"max limit", 1, math.MaxInt, 1, []string{"p-2", "p-3", "p-4", "p-5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Paginate(items, tt.offset, tt.limit)
			assert.Equal(t, 5, page.Total)
			assert.Equal(t, tt.wantOffset, page.Offset)
			assert.Equal(t, tt.limit, page.Limit)

			ids := make([]string, 0, len(page.Items))
			for _, e := range page.Items {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestPaginateNil(t *testing.T) {
	page := Paginate(nil, 0, math.MaxInt)
	require.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.Total)
}
