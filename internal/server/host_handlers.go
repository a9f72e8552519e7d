package server

import (
	"github.com/RubenLpc/BucovinaStay-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetHostProfile handles GET /api/hosts/:userId
// @Summary Public host profile
// @Tags hosts
// @Produce json
// @Param userId path int true "Host user ID"
// @Success 200 {object} models.PublicHostProfile
// @Failure 404 {object} models.ErrorResponse
// @Router /hosts/{userId} [get]
func (s *Server) GetHostProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}
	profile, err := s.hosts.Public(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// GetMyHostProfile handles GET /api/host/profile. The profile is created on first access.
func (s *Server) GetMyHostProfile(c *fiber.Ctx) error {
	profile, err := s.hosts.Ensure(c.UserContext(), currentActor(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// UpdateMyHostProfile handles PATCH /api/host/profile
// @Summary Edit the caller's host profile
// @Description Stats and SuperHost status are derived and cannot be written.
// @Tags host
// @Accept json
// @Produce json
// @Param patch body service.HostProfilePatch true "Changed fields"
// @Success 200 {object} models.HostProfile
// @Security BearerAuth
// @Router /host/profile [patch]
func (s *Server) UpdateMyHostProfile(c *fiber.Ctx) error {
	var patch service.HostProfilePatch
	if err := parseBody(c, &patch); err != nil {
		return nil
	}
	profile, err := s.hosts.UpdateMine(c.UserContext(), currentActor(c).UserID, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// GetHostActivity handles GET /api/host/activity
// @Summary Host activity feed
// @Tags host
// @Produce json
// @Param range query string false "24h, 7d or 30d"
// @Param type query string false "Event type or all"
// @Param q query string false "Search in property title and type"
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size, 10 to 100"
// @Success 200 {object} service.ActivityPage
// @Security BearerAuth
// @Router /host/activity [get]
func (s *Server) GetHostActivity(c *fiber.Ctx) error {
	q := service.ActivityQuery{
		Range: c.Query("range"),
		Type:  c.Query("type"),
		Q:     c.Query("q"),
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", 0),
	}
	page, err := s.activity.Query(c.UserContext(), currentActor(c).UserID, q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// BecomeHost handles POST /api/me/become-host
func (s *Server) BecomeHost(c *fiber.Ctx) error {
	user, err := s.users.BecomeHost(c.UserContext(), currentActor(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
