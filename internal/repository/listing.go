package repository

import (
	"context"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/observability"

	"gorm.io/gorm"
)

// ListingFilter narrows the public catalogue.
type ListingFilter struct {
	City     string
	Type     models.ListingType
	MinPrice int64
	MaxPrice int64
	Limit    int
	Offset   int
}

// ListingRepository defines persistence operations for listings.
type ListingRepository interface {
	Create(ctx context.Context, listing *models.Listing) error
	GetByID(ctx context.Context, id uint) (*models.Listing, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]any) error
	Delete(ctx context.Context, id uint) error
	// ApplyTransition writes cols only while the row is still in status from.
	// It reports false when another writer changed the status first.
	ApplyTransition(ctx context.Context, id uint, from models.ListingStatus, cols map[string]any) (bool, error)
	SetEmbeddingHash(ctx context.Context, id uint, hash string) error
	SetRating(ctx context.Context, id uint, avg float64, count int) error
	CountByHost(ctx context.Context, hostID uint) (int64, error)
	ListByHost(ctx context.Context, hostID uint) ([]models.Listing, error)
	ListPublic(ctx context.Context, f ListingFilter) ([]models.Listing, int64, error)
	ListByStatus(ctx context.Context, status models.ListingStatus, limit, offset int) ([]models.Listing, int64, error)
}

type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository returns a GORM-backed ListingRepository.
func NewListingRepository(db *gorm.DB) ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, listing *models.Listing) error {
	defer observability.TrackQuery("insert", "listings")()
	if err := r.db.WithContext(ctx).Create(listing).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *listingRepository) GetByID(ctx context.Context, id uint) (*models.Listing, error) {
	defer observability.TrackQuery("select", "listings")()
	var listing models.Listing
	if err := r.db.WithContext(ctx).First(&listing, id).Error; err != nil {
		return nil, translate(err, "Listing", id)
	}
	return &listing, nil
}

func (r *listingRepository) UpdateFields(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	defer observability.TrackQuery("update", "listings")()
	res := r.db.WithContext(ctx).Model(&models.Listing{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Listing", id)
	}
	return nil
}

// Delete soft-deletes the listing and hard-deletes its reviews in one transaction.
func (r *listingRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "listings")()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("listing_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return models.NewInternalError(err)
		}
		res := tx.Delete(&models.Listing{}, id)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Listing", id)
		}
		return nil
	})
}

func (r *listingRepository) ApplyTransition(ctx context.Context, id uint, from models.ListingStatus, cols map[string]any) (bool, error) {
	defer observability.TrackQuery("transition", "listings")()
	res := r.db.WithContext(ctx).
		Model(&models.Listing{}).
		Where("id = ? AND status = ?", id, from).
		Updates(cols)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *listingRepository) SetEmbeddingHash(ctx context.Context, id uint, hash string) error {
	err := r.db.WithContext(ctx).Model(&models.Listing{}).
		Where("id = ?", id).
		UpdateColumn("embedding_hash", hash).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// SetRating writes the derived rating columns without touching updated_at.
func (r *listingRepository) SetRating(ctx context.Context, id uint, avg float64, count int) error {
	defer observability.TrackQuery("update", "listings")()
	err := r.db.WithContext(ctx).Model(&models.Listing{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{"rating_avg": avg, "reviews_count": count}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *listingRepository) CountByHost(ctx context.Context, hostID uint) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Listing{}).Where("host_id = ?", hostID).Count(&n).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return n, nil
}

// ListByHost reads from the primary: host stats are computed from it right after writes.
func (r *listingRepository) ListByHost(ctx context.Context, hostID uint) ([]models.Listing, error) {
	defer observability.TrackQuery("select", "listings")()
	var listings []models.Listing
	err := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Find(&listings).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return listings, nil
}

func (r *listingRepository) ListPublic(ctx context.Context, f ListingFilter) ([]models.Listing, int64, error) {
	defer observability.TrackQuery("select", "listings")()
	limit, offset := clampPage(f.Limit, f.Offset, 20, 100)

	q := readDB(r.db).WithContext(ctx).Model(&models.Listing{}).Where("status = ?", models.StatusLive)
	if f.City != "" {
		q = q.Where("LOWER(city) = LOWER(?)", f.City)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.MinPrice > 0 {
		q = q.Where("price_per_night >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price_per_night <= ?", f.MaxPrice)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var listings []models.Listing
	err := q.Order("rating_avg DESC, approved_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&listings).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return listings, total, nil
}

func (r *listingRepository) ListByStatus(ctx context.Context, status models.ListingStatus, limit, offset int) ([]models.Listing, int64, error) {
	defer observability.TrackQuery("select", "listings")()
	limit, offset = clampPage(limit, offset, 50, 100)

	q := readDB(r.db).WithContext(ctx).Model(&models.Listing{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var listings []models.Listing
	err := q.Order("submitted_at ASC, id ASC").Limit(limit).Offset(offset).Find(&listings).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return listings, total, nil
}
