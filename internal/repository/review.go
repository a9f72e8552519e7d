package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/observability"

	"gorm.io/gorm"
)

// RatingAggregate is the mean and count of visible review ratings.
type RatingAggregate struct {
	Avg   float64
	Count int64
}

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	GetByListingAndUser(ctx context.Context, listingID, userID uint) (*models.Review, error)
	Delete(ctx context.Context, id uint) error
	SetStatus(ctx context.Context, id uint, status models.ReviewStatus) error
	VisibleAggregate(ctx context.Context, listingID uint) (RatingAggregate, error)
	ListVisible(ctx context.Context, listingID uint, limit, offset int) ([]models.Review, int64, error)
	AdminList(ctx context.Context, f ReviewAdminFilter) ([]models.Review, int64, error)
}

// ReviewSort orders the admin review list.
type ReviewSort string

const (
	ReviewSortNewest     ReviewSort = "newest"
	ReviewSortOldest     ReviewSort = "oldest"
	ReviewSortRatingDesc ReviewSort = "rating_desc"
	ReviewSortRatingAsc  ReviewSort = "rating_asc"
)

var reviewOrders = map[ReviewSort]string{
	ReviewSortNewest:     "reviews.created_at DESC, reviews.id DESC",
	ReviewSortOldest:     "reviews.created_at ASC, reviews.id ASC",
	ReviewSortRatingDesc: "reviews.rating DESC, reviews.created_at DESC, reviews.id DESC",
	ReviewSortRatingAsc:  "reviews.rating ASC, reviews.created_at DESC, reviews.id DESC",
}

// Valid reports whether s is a known sort key.
func (s ReviewSort) Valid() bool {
	_, ok := reviewOrders[s]
	return ok
}

// ReviewAdminFilter narrows the moderation list. Zero values mean no filter.
type ReviewAdminFilter struct {
	Query  string
	Status models.ReviewStatus
	Rating int
	Sort   ReviewSort
	Limit  int
	Offset int
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository returns a GORM-backed ReviewRepository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts review. A second review by the same user on the same listing is DUPLICATE.
func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	defer observability.TrackQuery("insert", "reviews")()
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewDuplicateError("Review for this listing")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).First(&review, id).Error; err != nil {
		return nil, translate(err, "Review", id)
	}
	return &review, nil
}

func (r *reviewRepository) GetByListingAndUser(ctx context.Context, listingID, userID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Where("listing_id = ? AND user_id = ?", listingID, userID).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &models.AppError{
			Code:    models.CodeNotFound,
			Message: fmt.Sprintf("Review for listing %d not found", listingID),
		}
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &review, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	defer observability.TrackQuery("delete", "reviews")()
	res := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Review", id)
	}
	return nil
}

func (r *reviewRepository) SetStatus(ctx context.Context, id uint, status models.ReviewStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Review{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Review", id)
	}
	return nil
}

// VisibleAggregate always reads the primary so a recompute sees the write that triggered it.
func (r *reviewRepository) VisibleAggregate(ctx context.Context, listingID uint) (RatingAggregate, error) {
	defer observability.TrackQuery("aggregate", "reviews")()
	var agg RatingAggregate
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("listing_id = ? AND status = ?", listingID, models.ReviewVisible).
		Scan(&agg).Error
	if err != nil {
		return RatingAggregate{}, models.NewInternalError(err)
	}
	return agg, nil
}

func (r *reviewRepository) ListVisible(ctx context.Context, listingID uint, limit, offset int) ([]models.Review, int64, error) {
	defer observability.TrackQuery("select", "reviews")()
	limit, offset = clampPage(limit, offset, 20, 100)

	q := readDB(r.db).WithContext(ctx).
		Model(&models.Review{}).
		Where("listing_id = ? AND status = ?", listingID, models.ReviewVisible).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var reviews []models.Review
	err := q.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "name")
	}).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return reviews, total, nil
}

// AdminList searches every review with its author and listing. Query matches the
// comment, the author's name, email or phone and the listing's title, city,
// locality or type.
func (r *reviewRepository) AdminList(ctx context.Context, f ReviewAdminFilter) ([]models.Review, int64, error) {
	defer observability.TrackQuery("select", "reviews")()
	limit, offset := clampPage(f.Limit, f.Offset, 20, 100)

	q := readDB(r.db).WithContext(ctx).
		Model(&models.Review{}).
		Joins("LEFT JOIN users ON users.id = reviews.user_id").
		Joins("LEFT JOIN listings ON listings.id = reviews.listing_id")
	if f.Status != "" {
		q = q.Where("reviews.status = ?", f.Status)
	}
	if f.Rating > 0 {
		q = q.Where("reviews.rating = ?", f.Rating)
	}
	if f.Query != "" {
		p := likePattern(f.Query)
		q = q.Where(`(LOWER(reviews.comment) LIKE ? ESCAPE '\' OR LOWER(users.name) LIKE ? ESCAPE '\'
			OR LOWER(users.email) LIKE ? ESCAPE '\' OR LOWER(users.phone) LIKE ? ESCAPE '\'
			OR LOWER(listings.title) LIKE ? ESCAPE '\' OR LOWER(listings.city) LIKE ? ESCAPE '\'
			OR LOWER(listings.locality) LIKE ? ESCAPE '\' OR LOWER(listings.type) LIKE ? ESCAPE '\')`,
			p, p, p, p, p, p, p, p)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	order, ok := reviewOrders[f.Sort]
	if !ok {
		order = reviewOrders[ReviewSortNewest]
	}

	var reviews []models.Review
	err := q.Select("reviews.*").
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "phone")
		}).
		Preload("Listing", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped().Select("id", "host_id", "title", "city", "locality", "type", "status")
		}).
		Order(order).
		Limit(limit).Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return reviews, total, nil
}
