package settings

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "settings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestKeyCleansParts(t *testing.T) {
	s := openStore(t)
	assert.Equal(t, "ui/pages/home/tables/leaders", s.Key("/pages/", " home ", "", "tables", "leaders/"))
	assert.Equal(t, "ui/pages/home/tables/leaders/v1",
		s.TablePrefix(TableKey{PageID: "home", TableID: "leaders"}))
}

func TestValueRoundTripAndOverwrite(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	_, ok, err := s.Value(ctx, "ui/theme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetValue(ctx, "ui/theme", "dark"))
	require.NoError(t, s.SetValue(ctx, "ui/theme", "light"))

	v, ok, err := s.Value(ctx, "ui/theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v)
}

func TestTableStatePersistence(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	key := TableKey{PageID: "players", TableID: "roster", Version: "v2"}

	has, err := s.HasTableState(ctx, key)
	require.NoError(t, err)
	assert.False(t, has)

	// Four columns with a stretched last section persist three widths.
	count := PersistCount(4, true)
	assert.Equal(t, 3, count)
	require.NoError(t, s.SaveColumnWidths(ctx, key, []int{120, 80, 64, 300}, count))
	require.NoError(t, s.SaveSort(ctx, key, 2, Descending))

	raw, ok, err := s.Value(ctx, "ui/pages/players/tables/roster/v2/columns/widths")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "120,80,64", raw)

	state, err := s.LoadTableState(ctx, key, count)
	require.NoError(t, err)
	assert.Equal(t, []*int{ptr(120), ptr(80), ptr(64)}, state.Widths)
	require.NotNil(t, state.SortColumn)
	assert.Equal(t, 2, *state.SortColumn)
	require.NotNil(t, state.SortOrder)
	assert.Equal(t, Descending, *state.SortOrder)

	has, err = s.HasTableState(ctx, key)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestLoadKeepsColumnForUnparsableWidths(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	key := TableKey{PageID: "home", TableID: "leaders", Version: "v1"}

	require.NoError(t, s.SetValue(ctx, s.TablePrefix(key)+"/columns/widths", "100, wide,,90,70"))
	state, err := s.LoadTableState(ctx, key, 3)
	require.NoError(t, err)
	require.Len(t, state.Widths, 3, "trim happens before parsing")

	w, ok := state.Width(0)
	assert.True(t, ok)
	assert.Equal(t, 100, w)
	_, ok = state.Width(1)
	assert.False(t, ok, "column 1 has no usable width")
	w, ok = state.Width(2)
	assert.True(t, ok)
	assert.Equal(t, 90, w)
	assert.Nil(t, state.SortColumn)

	all, err := s.LoadTableState(ctx, key, 0)
	require.NoError(t, err)
	require.Len(t, all.Widths, 4)
	w, ok = all.Width(3)
	assert.True(t, ok)
	assert.Equal(t, 70, w)
	_, ok = all.Width(4)
	assert.False(t, ok)
}

func TestLoadWidthsKeepIndexAfterBadEntry(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	key := TableKey{PageID: "players", TableID: "roster"}

	require.NoError(t, s.SetValue(ctx, s.TablePrefix(key)+"/columns/widths", "100,abc,300"))
	state, err := s.LoadTableState(ctx, key, 3)
	require.NoError(t, err)

	_, ok := state.Width(1)
	assert.False(t, ok)
	w, ok := state.Width(2)
	assert.True(t, ok)
	assert.Equal(t, 300, w)
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	a := TableKey{PageID: "home", TableID: "a"}
	b := TableKey{PageID: "home", TableID: "a_b"}

	require.NoError(t, s.SaveSort(ctx, a, 0, Ascending))
	require.NoError(t, s.SaveSort(ctx, b, 1, Descending))

	items, err := s.List(ctx, s.TablePrefix(a))
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, "0", items["ui/pages/home/tables/a/v1/sort/order"])

	require.NoError(t, s.Delete(ctx, s.TablePrefix(a)))
	items, err = s.List(ctx, s.Key("pages", "home"))
	require.NoError(t, err)
	assert.Len(t, items, 2, "only the sibling table remains")
}

func TestParseSortOrder(t *testing.T) {
	o, ok := ParseSortOrder("DESC")
	assert.True(t, ok)
	assert.Equal(t, Descending, o)
	assert.Equal(t, "desc", o.String())

	_, ok = ParseSortOrder("sideways")
	assert.False(t, ok)
}

func ptr(n int) *int { return &n }
