package database

import (
	"context"
	"testing"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestPersistentModels_CoversDomainTables(t *testing.T) {
	var (
		hasListing, hasReview, hasActivity bool
		hasMessage, hasFavorite, hasHostSettings bool
	)
	for _, model := range PersistentModels() {
		switch model.(type) {
		case *models.Listing:
			hasListing = true
		case *models.Review:
			hasReview = true
		case *models.HostActivityEvent:
			hasActivity = true
		case *models.HostMessage:
			hasMessage = true
		case *models.Favorite:
			hasFavorite = true
		case *models.HostSettings:
			hasHostSettings = true
		}
	}
	assert.True(t, hasListing, "PersistentModels should include Listing")
	assert.True(t, hasReview, "PersistentModels should include Review")
	assert.True(t, hasActivity, "PersistentModels should include HostActivityEvent")
	assert.True(t, hasMessage, "PersistentModels should include HostMessage")
	assert.True(t, hasFavorite, "PersistentModels should include Favorite")
	assert.True(t, hasHostSettings, "PersistentModels should include HostSettings")
}

func TestAutoMigrateAndSeedDefaults_Sqlite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, runAutoMigrate(db))

	ctx := context.Background()
	require.NoError(t, SeedDefaults(ctx, db))
	// Second run is a no-op.
	require.NoError(t, SeedDefaults(ctx, db))

	var rows []models.AdminSettings
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, models.DefaultAdminSettings().Moderation, rows[0].Moderation)
	assert.False(t, rows[0].Moderation.AllowAdminPause)
}

func TestVerifyUniqueIndexes(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, runAutoMigrate(db))

	require.NoError(t, VerifyUniqueIndexes(db))

	require.NoError(t, db.Exec("DROP INDEX idx_reviews_listing_user").Error)
	err = VerifyUniqueIndexes(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "idx_reviews_listing_user")
	assert.NotContains(t, err.Error(), "idx_users_email")

	require.NoError(t, db.Exec("DROP INDEX idx_favorites_user_listing").Error)
	err = VerifyUniqueIndexes(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "idx_favorites_user_listing")
}
