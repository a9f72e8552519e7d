package server

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavorites(t *testing.T) {
	env := newTestServer(t)
	host, _ := env.user(t, "Gazda", models.RoleHost)
	_, guestToken := env.user(t, "Turist", models.RoleGuest)
	a := testutil.CreateListing(t, env.db, host.ID, models.StatusLive)
	b := testutil.CreateListing(t, env.db, host.ID, models.StatusLive)
	pending := testutil.CreateListing(t, env.db, host.ID, models.StatusPending)
	path := func(id uint) string { return "/api/favorites/" + strconv.FormatUint(uint64(id), 10) }

	var mine favoritesResponse
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/favorites/me", guestToken, nil, &mine))
	assert.NotNil(t, mine.Items)
	assert.Empty(t, mine.Items)

	assert.Equal(t, http.StatusNoContent, env.call(t, http.MethodPost, path(a.ID), guestToken, nil, nil))
	assert.Equal(t, http.StatusNoContent, env.call(t, http.MethodPost, path(a.ID), guestToken, nil, nil), "saving twice is a no-op")
	assert.Equal(t, http.StatusNoContent, env.call(t, http.MethodPost, path(b.ID), guestToken, nil, nil))
	assert.Equal(t, http.StatusNotFound, env.call(t, http.MethodPost, path(pending.ID), guestToken, nil, nil))
	assert.Equal(t, http.StatusBadRequest, env.call(t, http.MethodPost, "/api/favorites/abc", guestToken, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, env.call(t, http.MethodPost, path(a.ID), "", nil, nil))

	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/favorites/me", guestToken, nil, &mine))
	assert.ElementsMatch(t, []uint{a.ID, b.ID}, mine.Items)

	assert.Equal(t, http.StatusNoContent, env.call(t, http.MethodDelete, path(a.ID), guestToken, nil, nil))
	assert.Equal(t, http.StatusNoContent, env.call(t, http.MethodDelete, path(a.ID), guestToken, nil, nil))
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/api/favorites/me", guestToken, nil, &mine))
	assert.Equal(t, []uint{b.ID}, mine.Items)
}
