package repository

import (
	"context"
	"testing"
	"time"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostProfileRepository_EnsureIsIdempotent(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewHostProfileRepository(db)
	ctx := context.Background()

	host := testutil.CreateUser(t, db, "Gazda", models.RoleHost)
	first, err := repo.Ensure(ctx, &models.HostProfile{
		UserID: host.ID, DisplayName: "Prima", HostingSince: time.Now().UTC(), ResponseTimeBucket: models.ResponseUnknown,
	})
	require.NoError(t, err)

	second, err := repo.Ensure(ctx, &models.HostProfile{
		UserID: host.ID, DisplayName: "A doua", HostingSince: time.Now().UTC(), ResponseTimeBucket: models.ResponseUnknown,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Prima", second.DisplayName)
}

func TestHostProfileRepository_Stats(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewHostProfileRepository(db)
	ctx := context.Background()

	host := testutil.CreateUser(t, db, "Gazda", models.RoleHost)
	testutil.CreateHostProfile(t, db, host.ID)

	avg := 4.88
	require.NoError(t, repo.UpdateStats(ctx, host.ID, models.HostStats{ReviewsCount: 40, RatingAvg: &avg}))
	require.NoError(t, repo.SetSuperHost(ctx, host.ID, true))

	p, err := repo.GetByUserID(ctx, host.ID)
	require.NoError(t, err)
	require.NotNil(t, p.Stats.RatingAvg)
	assert.Equal(t, 4.88, *p.Stats.RatingAvg)
	assert.Equal(t, 40, p.Stats.ReviewsCount)
	assert.True(t, p.IsSuperHost)

	require.NoError(t, repo.UpdateStats(ctx, host.ID, models.HostStats{}))
	p, err = repo.GetByUserID(ctx, host.ID)
	require.NoError(t, err)
	assert.Nil(t, p.Stats.RatingAvg, "zero reviews store NULL, not 0")

	err = repo.UpdateStats(ctx, host.ID+50, models.HostStats{})
	assert.True(t, models.HasCode(err, models.CodeNotFound))
	_, err = repo.GetByUserID(ctx, host.ID+50)
	assert.True(t, models.HasCode(err, models.CodeNotFound))
}

func TestSettingsRepository_DefaultsAndSave(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	require.NoError(t, db.Exec("DELETE FROM admin_settings").Error)

	s, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAdminSettings().Moderation, s.Moderation)
	assert.Equal(t, 20, s.Limits.MaxImagesPerListing)

	adminID := uint(3)
	s.Moderation.AllowAdminPause = true
	s.Branding.MaintenanceMode = true
	s.UpdatedBy = &adminID
	require.NoError(t, repo.Save(ctx, s))

	again, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.True(t, again.Moderation.AllowAdminPause)
	assert.True(t, again.Branding.MaintenanceMode)
	require.NotNil(t, again.UpdatedBy)
	assert.Equal(t, adminID, *again.UpdatedBy)
}
