package repository

import (
	"context"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HostProfileRepository defines persistence operations for host profiles.
type HostProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.HostProfile, error)
	// Ensure inserts seed when the user has no profile yet and returns the stored row.
	Ensure(ctx context.Context, seed *models.HostProfile) (*models.HostProfile, error)
	Update(ctx context.Context, userID uint, fields map[string]any) error
	UpdateStats(ctx context.Context, userID uint, stats models.HostStats) error
	SetSuperHost(ctx context.Context, userID uint, superHost bool) error
}

type hostProfileRepository struct {
	db *gorm.DB
}

// NewHostProfileRepository returns a GORM-backed HostProfileRepository.
func NewHostProfileRepository(db *gorm.DB) HostProfileRepository {
	return &hostProfileRepository{db: db}
}

func (r *hostProfileRepository) GetByUserID(ctx context.Context, userID uint) (*models.HostProfile, error) {
	defer observability.TrackQuery("select", "host_profiles")()
	var p models.HostProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, translate(err, "Host profile", userID)
	}
	return &p, nil
}

// Ensure is safe under concurrent callers: the unique user_id index decides the winner
// and every caller reads back the same row.
func (r *hostProfileRepository) Ensure(ctx context.Context, seed *models.HostProfile) (*models.HostProfile, error) {
	defer observability.TrackQuery("upsert", "host_profiles")()
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(seed).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return r.GetByUserID(ctx, seed.UserID)
}

func (r *hostProfileRepository) Update(ctx context.Context, userID uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	defer observability.TrackQuery("update", "host_profiles")()
	res := r.db.WithContext(ctx).Model(&models.HostProfile{}).Where("user_id = ?", userID).Updates(fields)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Host profile", userID)
	}
	return nil
}

// UpdateStats overwrites the derived stats. A nil RatingAvg is written as NULL.
func (r *hostProfileRepository) UpdateStats(ctx context.Context, userID uint, stats models.HostStats) error {
	defer observability.TrackQuery("update", "host_profiles")()
	res := r.db.WithContext(ctx).Model(&models.HostProfile{}).
		Where("user_id = ?", userID).
		UpdateColumns(map[string]any{
			"stats_reviews_count": stats.ReviewsCount,
			"stats_rating_avg":    stats.RatingAvg,
		})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Host profile", userID)
	}
	return nil
}

func (r *hostProfileRepository) SetSuperHost(ctx context.Context, userID uint, superHost bool) error {
	res := r.db.WithContext(ctx).Model(&models.HostProfile{}).
		Where("user_id = ?", userID).
		UpdateColumn("is_super_host", superHost)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Host profile", userID)
	}
	return nil
}
