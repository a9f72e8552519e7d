package repository

import (
	"context"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HostSettingsRepository reads and writes per-host settings rows.
type HostSettingsRepository interface {
	// Ensure returns userID's settings, inserting the defaults on first access.
	Ensure(ctx context.Context, userID uint) (*models.HostSettings, error)
	Save(ctx context.Context, s *models.HostSettings) error
}

type hostSettingsRepository struct {
	db *gorm.DB
}

// NewHostSettingsRepository returns a GORM-backed HostSettingsRepository.
func NewHostSettingsRepository(db *gorm.DB) HostSettingsRepository {
	return &hostSettingsRepository{db: db}
}

// Ensure is safe under concurrent first access; the unique user_id index keeps one row.
func (r *hostSettingsRepository) Ensure(ctx context.Context, userID uint) (*models.HostSettings, error) {
	defer observability.TrackQuery("upsert", "host_settings")()
	defaults := models.DefaultHostSettings(userID)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&defaults).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	var s models.HostSettings
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error; err != nil {
		return nil, translate(err, "Host settings", userID)
	}
	return &s, nil
}

func (r *hostSettingsRepository) Save(ctx context.Context, s *models.HostSettings) error {
	defer observability.TrackQuery("update", "host_settings")()
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
