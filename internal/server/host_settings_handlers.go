package server

import (
	"github.com/RubenLpc/BucovinaStay-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetHostSettings handles GET /api/host/settings
// @Summary The host's notification and display preferences
// @Description The defaults are created on first read.
// @Tags host
// @Produce json
// @Success 200 {object} models.HostSettings
// @Security BearerAuth
// @Router /host/settings [get]
func (s *Server) GetHostSettings(c *fiber.Ctx) error {
	settings, err := s.hostSettings.Get(c.UserContext(), currentActor(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(settings)
}

// PatchHostSettings handles PATCH /api/host/settings
// @Summary Change some host preferences
// @Tags host
// @Accept json
// @Produce json
// @Param patch body service.HostSettingsPatch true "Fields to change"
// @Success 200 {object} models.HostSettings
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /host/settings [patch]
func (s *Server) PatchHostSettings(c *fiber.Ctx) error {
	var patch service.HostSettingsPatch
	if err := parseBody(c, &patch); err != nil {
		return nil
	}
	settings, err := s.hostSettings.Patch(c.UserContext(), currentActor(c).UserID, patch)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(settings)
}
