package service

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/RubenLpc/BucovinaStay-backend/internal/lifecycle"
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/repository"
)

// CreateReviewInput is the body of POST /listings/:id/reviews.
type CreateReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type ReviewService struct {
	reviews  repository.ReviewRepository
	listings repository.ListingRepository
	stats    *StatsService
}

func NewReviewService(reviews repository.ReviewRepository, listings repository.ListingRepository, stats *StatsService) *ReviewService {
	return &ReviewService{reviews: reviews, listings: listings, stats: stats}
}

// Create stores userID's review of a live listing and refreshes the derived ratings.
// A second review of the same listing by the same user fails with DUPLICATE.
func (s *ReviewService) Create(ctx context.Context, userID, listingID uint, in CreateReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, models.NewValidationError("rating must be between 1 and 5")
	}
	comment := strings.TrimSpace(in.Comment)
	if comment == "" {
		return nil, models.NewValidationError("comment is required")
	}
	if utf8.RuneCountInString(comment) > models.MaxReviewCommentLen {
		return nil, models.NewValidationError("comment too long (max 1200 characters)")
	}

	l, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l.Status != models.StatusLive {
		return nil, models.NewValidationError("only live listings can be reviewed")
	}
	if l.IsOwnedBy(userID) {
		return nil, models.NewForbiddenError("hosts cannot review their own listing")
	}

	review := &models.Review{
		ListingID: listingID,
		UserID:    userID,
		Rating:    in.Rating,
		Comment:   comment,
		Status:    models.ReviewVisible,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	s.stats.AfterReviewChange(ctx, listingID, l.HostID)
	return review, nil
}

// Delete removes a review on behalf of its author or an admin.
func (s *ReviewService) Delete(ctx context.Context, actor lifecycle.Actor, reviewID uint) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.UserID != actor.UserID && !actor.Admin {
		return models.NewForbiddenError("only the author can delete this review")
	}
	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}
	s.afterChange(ctx, review.ListingID)
	return nil
}

// SetStatus hides or shows a review.
func (s *ReviewService) SetStatus(ctx context.Context, reviewID uint, status models.ReviewStatus) (*models.Review, error) {
	if !status.Valid() {
		return nil, models.NewValidationError("status must be visible or hidden")
	}
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if review.Status == status {
		return review, nil
	}
	if err := s.reviews.SetStatus(ctx, reviewID, status); err != nil {
		return nil, err
	}
	review.Status = status
	s.afterChange(ctx, review.ListingID)
	return review, nil
}

// afterChange looks up the host and runs the recompute chain. Nothing is
// recomputed when the listing is already gone.
func (s *ReviewService) afterChange(ctx context.Context, listingID uint) {
	l, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return
	}
	s.stats.AfterReviewChange(ctx, listingID, l.HostID)
}

// ListForListing returns the visible reviews of a live listing, newest first.
func (s *ReviewService) ListForListing(ctx context.Context, listingID uint, limit, offset int) ([]models.Review, int64, error) {
	l, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return nil, 0, err
	}
	if l.Status != models.StatusLive {
		return nil, 0, models.NewNotFoundError("Listing", listingID)
	}
	reviews, total, err := s.reviews.ListVisible(ctx, listingID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, total, nil
}

// Mine returns userID's review of the listing.
func (s *ReviewService) Mine(ctx context.Context, userID, listingID uint) (*models.Review, error) {
	return s.reviews.GetByListingAndUser(ctx, listingID, userID)
}

const (
	defaultAdminReviewLimit = 20
	minAdminReviewLimit     = 5
	maxAdminReviewLimit     = 100
)

// AdminReviewQuery are the moderation list query parameters. Status and Rating
// accept "all"; Sort defaults to newest.
type AdminReviewQuery struct {
	Q      string
	Status string
	Rating string
	Sort   string
	Page   int
	Limit  int
}

// ReviewPage is one page of the moderation list.
type ReviewPage struct {
	Items []models.Review `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (q AdminReviewQuery) filter() (repository.ReviewAdminFilter, int, int, error) {
	var f repository.ReviewAdminFilter

	if st := strings.TrimSpace(q.Status); st != "" && st != "all" {
		f.Status = models.ReviewStatus(st)
		if !f.Status.Valid() {
			return f, 0, 0, models.NewValidationError("status must be all, visible or hidden")
		}
	}
	if r := strings.TrimSpace(q.Rating); r != "" && r != "all" {
		n, err := strconv.Atoi(r)
		if err != nil || n < 1 || n > 5 {
			return f, 0, 0, models.NewValidationError("rating must be all or 1 to 5")
		}
		f.Rating = n
	}
	f.Sort = repository.ReviewSortNewest
	if so := strings.TrimSpace(q.Sort); so != "" {
		f.Sort = repository.ReviewSort(so)
		if !f.Sort.Valid() {
			return f, 0, 0, models.NewValidationError("sort must be newest, oldest, rating_desc or rating_asc")
		}
	}

	limit := q.Limit
	switch {
	case limit <= 0:
		limit = defaultAdminReviewLimit
	case limit < minAdminReviewLimit:
		limit = minAdminReviewLimit
	case limit > maxAdminReviewLimit:
		limit = maxAdminReviewLimit
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	f.Query = strings.TrimSpace(q.Q)
	f.Limit = limit
	f.Offset = (page - 1) * limit
	return f, page, limit, nil
}

// AdminList searches every review for moderation, with author and listing attached.
func (s *ReviewService) AdminList(ctx context.Context, q AdminReviewQuery) (*ReviewPage, error) {
	f, page, limit, err := q.filter()
	if err != nil {
		return nil, err
	}
	items, total, err := s.reviews.AdminList(ctx, f)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Review{}
	}
	return &ReviewPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}
