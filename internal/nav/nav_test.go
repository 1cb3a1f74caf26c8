package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zackmeach/gridironlabs/internal/model"
)

func TestHistoryBackForward(t *testing.T) {
	h := NewHistory()
	assert.Equal(t, "home", h.Current())
	assert.False(t, h.CanBack())

	h.Visit("home")
	h.Visit("teams")
	h.Visit("teams")
	h.Visit("players")
	assert.Equal(t, 3, h.Len(), "repeat of the current key is ignored")

	key, ok := h.Back()
	require.True(t, ok)
	assert.Equal(t, "teams", key)
	assert.True(t, h.CanForward())

	key, ok = h.Back()
	require.True(t, ok)
	assert.Equal(t, "home", key)

	_, ok = h.Back()
	assert.False(t, ok)

	key, ok = h.Forward()
	require.True(t, ok)
	assert.Equal(t, "teams", key)
}

func TestVisitTruncatesForwardHistory(t *testing.T) {
	h := NewHistory()
	for _, k := range []string{"home", "teams", "players"} {
		h.Visit(k)
	}
	_, _ = h.Back()
	_, _ = h.Back()

	h.Visit("drafts")
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "drafts", h.Current())
	assert.False(t, h.CanForward())

	_, ok := h.Forward()
	assert.False(t, ok)
}

func TestParseRoute(t *testing.T) {
	r, err := ParseRoute("player:p-1@2025")
	require.NoError(t, err)
	require.NotNil(t, r.Entity)
	assert.Equal(t, model.EntityPlayer, r.Entity.EntityType)
	assert.Equal(t, "p-1", r.Entity.ID)
	require.NotNil(t, r.Entity.Season)
	assert.Equal(t, 2025, *r.Entity.Season)
	assert.Equal(t, "player:p-1@2025", r.String())

	home, err := ParseRoute("home")
	require.NoError(t, err)
	assert.Nil(t, home.Entity)
	assert.Equal(t, "home", home.String())

	for _, bad := range []string{"nowhere", "home:x", "team:", "coach:c-1@soon"} {
		_, err := ParseRoute(bad)
		assert.Error(t, err, bad)
	}
}

func TestPageKey(t *testing.T) {
	k, ok := PageKey("player")
	assert.True(t, ok)
	assert.Equal(t, "player-summary", k)
	_, ok = PageKey("scores")
	assert.False(t, ok)
}
