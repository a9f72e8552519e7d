package server

import (
	"github.com/RubenLpc/BucovinaStay-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

// listingAnalyticsResponse keys the 30-day stats by listing ID.
type listingAnalyticsResponse struct {
	ByListingID map[uint]service.ListingAnalytics `json:"by_listing_id"`
}

// GetHostAnalytics handles GET /api/host/analytics/overview
// @Summary Guest impressions and clicks across the host's listings
// @Tags host
// @Produce json
// @Param range query string false "Window such as 7d or 30d"
// @Success 200 {object} service.AnalyticsSummary
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /host/analytics/overview [get]
func (s *Server) GetHostAnalytics(c *fiber.Ctx) error {
	summary, err := s.analytics.HostOverview(c.UserContext(), currentActor(c).UserID, c.Query("range"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// GetHostListingAnalytics handles GET /api/host/analytics/listings
// @Summary 30-day views and clicks of each of the host's listings
// @Tags host
// @Produce json
// @Success 200 {object} listingAnalyticsResponse
// @Security BearerAuth
// @Router /host/analytics/listings [get]
func (s *Server) GetHostListingAnalytics(c *fiber.Ctx) error {
	stats, err := s.analytics.ListingStats(c.UserContext(), currentActor(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listingAnalyticsResponse{ByListingID: stats})
}

// GetAdminOverview handles GET /api/admin/overview
// @Summary Platform totals and the last week of guest analytics
// @Tags admin
// @Produce json
// @Success 200 {object} service.AdminOverview
// @Security BearerAuth
// @Router /admin/overview [get]
func (s *Server) GetAdminOverview(c *fiber.Ctx) error {
	overview, err := s.analytics.AdminOverview(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(overview)
}
