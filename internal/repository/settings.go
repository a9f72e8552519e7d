package repository

import (
	"context"
	"errors"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository reads and writes the singleton AdminSettings row.
type SettingsRepository interface {
	// Get returns the settings, inserting the defaults when the row does not exist yet.
	Get(ctx context.Context) (*models.AdminSettings, error)
	Save(ctx context.Context, s *models.AdminSettings) error
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository returns a GORM-backed SettingsRepository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context) (*models.AdminSettings, error) {
	var s models.AdminSettings
	err := r.db.WithContext(ctx).First(&s, models.AdminSettingsID).Error
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewInternalError(err)
	}

	defaults := models.DefaultAdminSettings()
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&defaults).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := r.db.WithContext(ctx).First(&s, models.AdminSettingsID).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return &s, nil
}

// Save writes every column of s, always against the singleton id.
func (r *settingsRepository) Save(ctx context.Context, s *models.AdminSettings) error {
	s.ID = models.AdminSettingsID
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
