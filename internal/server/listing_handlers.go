package server

import (
	"encoding/json"
	"strings"

	"github.com/RubenLpc/BucovinaStay-backend/internal/featureflags"
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/repository"
	"github.com/RubenLpc/BucovinaStay-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListListings handles GET /api/listings
// @Summary Browse live listings
// @Description Live listings filtered by city, type and nightly price range.
// @Tags listings
// @Produce json
// @Param city query string false "City (case-insensitive)"
// @Param type query string false "Listing type"
// @Param min_price query int false "Minimum price per night"
// @Param max_price query int false "Maximum price per night"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} listResponse[models.Listing]
// @Router /listings [get]
func (s *Server) ListListings(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	filter := repository.ListingFilter{
		City:     strings.TrimSpace(c.Query("city")),
		Type:     models.ListingType(strings.TrimSpace(c.Query("type"))),
		MinPrice: int64(c.QueryInt("min_price", 0)),
		MaxPrice: int64(c.QueryInt("max_price", 0)),
		Limit:    page.Limit,
		Offset:   page.Offset,
	}

	listings, total, err := s.listings.ListPublic(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(newListResponse(listings, total, page))
}

// GetListing handles GET /api/listings/:id
// @Summary Get a listing
// @Description Live listings are public. The owner and admins may also read non-live ones.
// @Tags listings
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} models.Listing
// @Failure 404 {object} models.ErrorResponse
// @Router /listings/{id} [get]
func (s *Server) GetListing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	listing, err := s.listings.Get(c.UserContext(), s.optionalActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

// CreateListing handles POST /api/host/listings
// @Summary Create a draft listing
// @Tags host
// @Accept json
// @Produce json
// @Param listing body service.ListingInput true "Listing"
// @Success 201 {object} models.Listing
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /host/listings [post]
func (s *Server) CreateListing(c *fiber.Ctx) error {
	var in service.ListingInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}

	listing, err := s.listings.Create(c.UserContext(), currentActor(c).UserID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(listing)
}

// GetMyListings handles GET /api/host/listings
func (s *Server) GetMyListings(c *fiber.Ctx) error {
	listings, err := s.listings.ListMine(c.UserContext(), currentActor(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	return c.JSON(listings)
}

// UpdateListing handles PATCH /api/host/listings/:id
// @Summary Edit a listing
// @Description Status and moderation timestamps cannot be changed here.
// @Tags host
// @Accept json
// @Produce json
// @Param id path int true "Listing ID"
// @Param patch body service.ListingPatch true "Changed fields"
// @Success 200 {object} models.Listing
// @Security BearerAuth
// @Router /host/listings/{id} [patch]
func (s *Server) UpdateListing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var patch service.ListingPatch
	if err := parseBody(c, &patch); err != nil {
		return nil
	}

	listing, err := s.listings.Update(c.UserContext(), currentActor(c), id, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

// DeleteListing handles DELETE /api/host/listings/:id
func (s *Server) DeleteListing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.listings.Delete(c.UserContext(), currentActor(c), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SubmitListing handles POST /api/host/listings/:id/submit
// @Summary Submit a listing for review
// @Tags host
// @Produce json
// @Param id path int true "Listing ID"
// @Success 200 {object} models.Listing
// @Failure 409 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /host/listings/{id}/submit [post]
func (s *Server) SubmitListing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	listing, err := s.listings.Submit(c.UserContext(), currentActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

// TogglePauseListing handles POST /api/host/listings/:id/toggle-pause
func (s *Server) TogglePauseListing(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	listing, err := s.listings.TogglePause(c.UserContext(), currentActor(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

type trackEventRequest struct {
	Type models.ActivityType `json:"type"`
	Meta json.RawMessage     `json:"meta,omitempty" swaggerignore:"true"`
}

type impressionsRequest struct {
	ListingIDs []uint `json:"listing_ids"`
}

// clientMeta reports whether the caller tried to attach its own event metadata.
func clientMeta(raw json.RawMessage) bool {
	v := strings.TrimSpace(string(raw))
	return v != "" && v != "null"
}

// TrackListingEvent handles POST /api/listings/:id/events
// @Summary Record a guest interaction
// @Description Accepts impression and click_* events for live listings. Event metadata is derived from the request; a client supplied meta is rejected.
// @Tags listings
// @Accept json
// @Param id path int true "Listing ID"
// @Param event body trackEventRequest true "Event type"
// @Success 202
// @Failure 400 {object} models.ErrorResponse
// @Router /listings/{id}/events [post]
func (s *Server) TrackListingEvent(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	var req trackEventRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	if clientMeta(req.Meta) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("meta is not accepted"))
	}

	// Tracking switched off: accept and drop.
	if !s.featureFlags.Enabled(featureflags.GuestTracking, 0) {
		return c.SendStatus(fiber.StatusNoContent)
	}

	if err := s.activity.TrackListingEvent(c.UserContext(), id, req.Type, c.Get(fiber.HeaderUserAgent)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// TrackImpressions handles POST /api/listings/impressions
// @Summary Record impressions for a page of search results
// @Description Duplicates are collapsed and at most 50 listings are counted. Unknown and non-live listings are skipped.
// @Tags listings
// @Accept json
// @Param body body impressionsRequest true "Listing IDs"
// @Success 204
// @Router /listings/impressions [post]
func (s *Server) TrackImpressions(c *fiber.Ctx) error {
	var req impressionsRequest
	if err := parseBody(c, &req); err != nil {
		return nil
	}
	if !s.featureFlags.Enabled(featureflags.GuestTracking, 0) {
		return c.SendStatus(fiber.StatusNoContent)
	}
	if _, err := s.activity.TrackImpressions(c.UserContext(), req.ListingIDs, c.Get(fiber.HeaderUserAgent)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
