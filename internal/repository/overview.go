package repository

import (
	"context"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/observability"

	"gorm.io/gorm"
)

// PlatformCounts are the headline totals of the admin overview.
type PlatformCounts struct {
	Users            int64 `json:"users"`
	DisabledUsers    int64 `json:"disabled_users"`
	Hosts            int64 `json:"hosts"`
	Admins           int64 `json:"admins"`
	Listings         int64 `json:"listings"`
	LiveListings     int64 `json:"live_listings"`
	PendingListings  int64 `json:"pending_listings"`
	RejectedListings int64 `json:"rejected_listings"`
	VisibleReviews   int64 `json:"visible_reviews"`
}

// OverviewRepository aggregates platform-wide totals.
type OverviewRepository interface {
	Counts(ctx context.Context) (PlatformCounts, error)
}

type overviewRepository struct {
	db *gorm.DB
}

// NewOverviewRepository returns a GORM-backed OverviewRepository.
func NewOverviewRepository(db *gorm.DB) OverviewRepository {
	return &overviewRepository{db: db}
}

type groupCount struct {
	Bucket string
	Total  int64
}

func (r *overviewRepository) Counts(ctx context.Context) (PlatformCounts, error) {
	defer observability.TrackQuery("aggregate", "overview")()
	db := readDB(r.db).WithContext(ctx)
	var out PlatformCounts

	var roles []groupCount
	if err := db.Model(&models.User{}).Select("role AS bucket, COUNT(*) AS total").Group("role").Scan(&roles).Error; err != nil {
		return out, models.NewInternalError(err)
	}
	for _, g := range roles {
		out.Users += g.Total
		switch models.Role(g.Bucket) {
		case models.RoleHost:
			out.Hosts = g.Total
		case models.RoleAdmin:
			out.Admins = g.Total
		}
	}
	if err := db.Model(&models.User{}).Where("disabled = ?", true).Count(&out.DisabledUsers).Error; err != nil {
		return out, models.NewInternalError(err)
	}

	var statuses []groupCount
	if err := db.Model(&models.Listing{}).Select("status AS bucket, COUNT(*) AS total").Group("status").Scan(&statuses).Error; err != nil {
		return out, models.NewInternalError(err)
	}
	for _, g := range statuses {
		out.Listings += g.Total
		switch models.ListingStatus(g.Bucket) {
		case models.StatusLive:
			out.LiveListings = g.Total
		case models.StatusPending:
			out.PendingListings = g.Total
		case models.StatusRejected:
			out.RejectedListings = g.Total
		}
	}

	err := db.Model(&models.Review{}).Where("status = ?", models.ReviewVisible).Count(&out.VisibleReviews).Error
	if err != nil {
		return out, models.NewInternalError(err)
	}
	return out, nil
}
