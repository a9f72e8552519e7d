package repository

import (
	"context"
	"testing"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostSettingsRepository_EnsureAndSave(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewHostSettingsRepository(db)
	ctx := context.Background()
	host := testutil.CreateUser(t, db, "Gazda", models.RoleHost)

	s, err := repo.Ensure(ctx, host.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultHostSettings(host.ID).Notifications, s.Notifications)
	assert.Equal(t, "Europe/Bucharest", s.Preferences.Timezone)

	s.Notifications.WeeklyReport = true
	s.Preferences.Currency = "EUR"
	require.NoError(t, repo.Save(ctx, s))

	again, err := repo.Ensure(ctx, host.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, again.ID)
	assert.True(t, again.Notifications.WeeklyReport)
	assert.Equal(t, "EUR", again.Preferences.Currency)

	var rows int64
	require.NoError(t, db.Model(&models.HostSettings{}).Where("user_id = ?", host.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}
