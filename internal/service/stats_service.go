package service

import (
	"context"
	"log/slog"
	"math"

	"github.com/RubenLpc/BucovinaStay-backend/internal/cache"
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/observability"
	"github.com/RubenLpc/BucovinaStay-backend/internal/repository"
)

// Recompute kinds for observability.StatsRecomputes.
const (
	kindListingRating = "listing_rating"
	kindHostStats     = "host_stats"
	kindSuperHost     = "superhost"
)

// RoundHalfUp rounds v to places decimals, halves away from zero.
func RoundHalfUp(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	// The epsilon absorbs representation error such as 4.85*10 = 48.499999...
	return math.Floor(v*p+0.5+1e-9) / p
}

// ListingRating is the stored rating for a listing: the mean rounded to one decimal, 0 without reviews.
func ListingRating(avg float64, count int64) float64 {
	if count <= 0 {
		return 0
	}
	return RoundHalfUp(avg, 1)
}

// HostStatsFor is the reviews-weighted mean of the listings' ratings, rounded to two decimals.
// Listings without reviews are skipped. RatingAvg is nil when no listing has reviews.
func HostStatsFor(listings []models.Listing) models.HostStats {
	var sum float64
	var total int
	for _, l := range listings {
		if l.ReviewsCount <= 0 {
			continue
		}
		sum += l.RatingAvg * float64(l.ReviewsCount)
		total += l.ReviewsCount
	}
	if total == 0 {
		return models.HostStats{}
	}
	avg := RoundHalfUp(sum/float64(total), 2)
	return models.HostStats{ReviewsCount: total, RatingAvg: &avg}
}

// IsSuperHost derives the badge from stats alone.
func IsSuperHost(stats models.HostStats) bool {
	return stats.RatingAvg != nil &&
		*stats.RatingAvg >= models.SuperHostMinRating &&
		stats.ReviewsCount >= models.SuperHostMinReviews
}

// StatsService recomputes derived ratings from scratch. Every step is idempotent.
type StatsService struct {
	listings repository.ListingRepository
	reviews  repository.ReviewRepository
	profiles repository.HostProfileRepository
	hosts    *HostProfileService
}

func NewStatsService(
	listings repository.ListingRepository,
	reviews repository.ReviewRepository,
	profiles repository.HostProfileRepository,
	hosts *HostProfileService,
) *StatsService {
	return &StatsService{listings: listings, reviews: reviews, profiles: profiles, hosts: hosts}
}

// RecomputeListingRating writes the rating and count of the listing's visible reviews onto the listing.
func (s *StatsService) RecomputeListingRating(ctx context.Context, listingID uint) (avg float64, count int, err error) {
	ctx, span := observability.StartSpan(ctx, "stats.recomputeListingRating", observability.ListingID(listingID))
	defer func() {
		observability.StatsRecomputes.WithLabelValues(kindListingRating, observability.Outcome(err)).Inc()
		span.End(err)
	}()

	agg, err := s.reviews.VisibleAggregate(ctx, listingID)
	if err != nil {
		return 0, 0, err
	}
	avg, count = ListingRating(agg.Avg, agg.Count), int(agg.Count)
	if err = s.listings.SetRating(ctx, listingID, avg, count); err != nil {
		return 0, 0, err
	}
	cache.InvalidateListing(ctx, listingID)
	return avg, count, nil
}

// RecomputeHostStats aggregates every listing of the host onto its profile.
func (s *StatsService) RecomputeHostStats(ctx context.Context, hostID uint) (stats models.HostStats, err error) {
	ctx, span := observability.StartSpan(ctx, "stats.recomputeHostStats", observability.HostID(hostID))
	defer func() {
		observability.StatsRecomputes.WithLabelValues(kindHostStats, observability.Outcome(err)).Inc()
		span.End(err)
	}()

	listings, err := s.listings.ListByHost(ctx, hostID)
	if err != nil {
		return models.HostStats{}, err
	}
	stats = HostStatsFor(listings)

	if _, err = s.hosts.Ensure(ctx, hostID); err != nil {
		return models.HostStats{}, err
	}
	if err = s.profiles.UpdateStats(ctx, hostID, stats); err != nil {
		return models.HostStats{}, err
	}
	cache.InvalidateHostProfile(ctx, hostID)
	return stats, nil
}

// RecomputeSuperHost derives the badge from the stored host stats.
func (s *StatsService) RecomputeSuperHost(ctx context.Context, hostID uint) (superHost bool, err error) {
	ctx, span := observability.StartSpan(ctx, "stats.recomputeSuperHost", observability.HostID(hostID))
	defer func() {
		observability.StatsRecomputes.WithLabelValues(kindSuperHost, observability.Outcome(err)).Inc()
		span.End(err)
	}()

	p, err := s.profiles.GetByUserID(ctx, hostID)
	if err != nil {
		return false, err
	}
	superHost = IsSuperHost(p.Stats)
	if superHost == p.IsSuperHost {
		return superHost, nil
	}
	if err = s.profiles.SetSuperHost(ctx, hostID, superHost); err != nil {
		return false, err
	}
	cache.InvalidateHostProfile(ctx, hostID)
	return superHost, nil
}

// RefreshHost runs host stats then SuperHost, stopping at the first failure.
func (s *StatsService) RefreshHost(ctx context.Context, hostID uint) error {
	if _, err := s.RecomputeHostStats(ctx, hostID); err != nil {
		return err
	}
	_, err := s.RecomputeSuperHost(ctx, hostID)
	return err
}

// AfterReviewChange is the best-effort chain run once a review write has committed.
// Failures are logged and counted, never returned.
func (s *StatsService) AfterReviewChange(ctx context.Context, listingID, hostID uint) {
	if _, _, err := s.RecomputeListingRating(ctx, listingID); err != nil {
		slog.WarnContext(ctx, "listing rating recompute failed", "listing_id", listingID, "err", err)
		observability.SideEffectFailed("recompute_listing_rating")
		return
	}
	s.refreshHostBestEffort(ctx, hostID)
}

func (s *StatsService) refreshHostBestEffort(ctx context.Context, hostID uint) {
	if err := s.RefreshHost(ctx, hostID); err != nil {
		slog.WarnContext(ctx, "host stats recompute failed", "host_id", hostID, "err", err)
		observability.SideEffectFailed("recompute_host_stats")
	}
}
