package server

import (
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetListingReviews handles GET /api/listings/:id/reviews
// @Summary Visible reviews of a listing
// @Tags reviews
// @Produce json
// @Param id path int true "Listing ID"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} listResponse[models.Review]
// @Router /listings/{id}/reviews [get]
func (s *Server) GetListingReviews(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page := parsePagination(c, 10)

	reviews, total, err := s.reviews.ListForListing(c.UserContext(), id, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newListResponse(reviews, total, page))
}

// CreateReview handles POST /api/listings/:id/reviews
// @Summary Review a live listing
// @Description One review per user and listing. Hosts cannot review their own listings.
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Listing ID"
// @Param review body service.CreateReviewInput true "Rating and comment"
// @Success 201 {object} models.Review
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /listings/{id}/reviews [post]
func (s *Server) CreateReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var in service.CreateReviewInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}

	review, err := s.reviews.Create(c.UserContext(), currentActor(c).UserID, id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetMyReview handles GET /api/listings/:id/reviews/me
func (s *Server) GetMyReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	review, err := s.reviews.Mine(c.UserContext(), currentActor(c).UserID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(review)
}

// DeleteReview handles DELETE /api/reviews/:id
func (s *Server) DeleteReview(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.reviews.Delete(c.UserContext(), currentActor(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SetReviewStatus handles PATCH /api/admin/reviews/:id
// @Summary Hide or show a review
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} models.Review
// @Security BearerAuth
// @Router /admin/reviews/{id} [patch]
func (s *Server) SetReviewStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req struct {
		Status models.ReviewStatus `json:"status"`
	}
	if err := parseBody(c, &req); err != nil {
		return nil
	}

	review, err := s.reviews.SetStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(review)
}

// AdminListReviews handles GET /api/admin/reviews
// @Summary Search every review for moderation
// @Description q matches the comment, the author's name, email or phone, and the listing's title, city, locality or type.
// @Tags admin
// @Produce json
// @Param q query string false "Search text"
// @Param status query string false "all, visible or hidden"
// @Param rating query string false "all or 1 to 5"
// @Param sort query string false "newest, oldest, rating_desc or rating_asc"
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size, 5 to 100"
// @Success 200 {object} service.ReviewPage
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/reviews [get]
func (s *Server) AdminListReviews(c *fiber.Ctx) error {
	page, err := s.reviews.AdminList(c.UserContext(), service.AdminReviewQuery{
		Q:      c.Query("q"),
		Status: c.Query("status"),
		Rating: c.Query("rating"),
		Sort:   c.Query("sort"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 0),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}
