package server

import (
	"strings"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

type rejectRequest struct {
	Reason string `json:"reason"`
}

type setStatusRequest struct {
	Status models.ListingStatus `json:"status"`
	Reason string               `json:"reason"`
}

// AdminListListings handles GET /api/admin/listings
// @Summary Moderation queue
// @Description Listings by status, oldest submission first. Empty status lists all.
// @Tags admin
// @Produce json
// @Param status query string false "Listing status"
// @Success 200 {object} listResponse[models.Listing]
// @Security BearerAuth
// @Router /admin/listings [get]
func (s *Server) AdminListListings(c *fiber.Ctx) error {
	page := parsePagination(c, 50)
	status := models.ListingStatus(strings.TrimSpace(c.Query("status")))

	listings, total, err := s.listings.AdminList(c.UserContext(), status, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newListResponse(listings, total, page))
}

// ApproveListing handles POST /api/admin/listings/:id/approve
// @Summary Approve a pending listing
// @Tags admin
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} models.Listing
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/listings/{id}/approve [post]
func (s *Server) ApproveListing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	listing, err := s.listings.Approve(c.UserContext(), currentActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

// RejectListing handles POST /api/admin/listings/:id/reject
// @Summary Reject a pending listing
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Listing ID"
// @Param body body rejectRequest true "Reason"
// @Success 200 {object} models.Listing
// @Security BearerAuth
// @Router /admin/listings/{id}/reject [post]
func (s *Server) RejectListing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req rejectRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	listing, err := s.listings.Reject(c.UserContext(), currentActor(c), id, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

// UnpublishListing handles POST /api/admin/listings/:id/unpublish
func (s *Server) UnpublishListing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	listing, err := s.listings.Unpublish(c.UserContext(), currentActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

// SetListingStatus handles POST /api/admin/listings/:id/status
// @Summary Move a listing to live, rejected or paused
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Listing ID"
// @Param body body setStatusRequest true "Target status"
// @Success 200 {object} models.Listing
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/listings/{id}/status [post]
func (s *Server) SetListingStatus(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req setStatusRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	listing, err := s.listings.SetStatus(c.UserContext(), currentActor(c), id, req.Status, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

// GetSettings handles GET /api/admin/settings
func (s *Server) GetSettings(c *fiber.Ctx) error {
	settings, err := s.settings.Get(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(settings)
}

// SaveSettings handles PUT /api/admin/settings
// @Summary Update admin settings
// @Description Merges the given sections. Omitted fields keep their value.
// @Tags admin
// @Accept json
// @Produce json
// @Param settings body service.SettingsPatch true "Changed settings"
// @Success 200 {object} models.AdminSettings
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/settings [put]
func (s *Server) SaveSettings(c *fiber.Ctx) error {
	var patch service.SettingsPatch
	if err := parseBody(c, &patch); err != nil {
		return nil
	}
	settings, err := s.settings.Save(c.UserContext(), currentActor(c).UserID, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(settings)
}

// AdminListUsers handles GET /api/admin/users
func (s *Server) AdminListUsers(c *fiber.Ctx) error {
	page := parsePagination(c, 50)
	role := models.Role(strings.TrimSpace(c.Query("role")))

	users, total, err := s.users.ListUsers(c.UserContext(), role, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newListResponse(users, total, page))
}

// PatchUser handles PATCH /api/admin/users/:id
// @Summary Change a user's role or disabled flag
// @Description Admins cannot lock themselves out, and the last active admin is protected.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param patch body service.UserPatch true "Changes"
// @Success 200 {object} models.User
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/users/{id} [patch]
func (s *Server) PatchUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var patch service.UserPatch
	if err := parseBody(c, &patch); err != nil {
		return nil
	}
	user, err := s.users.PatchUser(c.UserContext(), currentActor(c).UserID, id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
