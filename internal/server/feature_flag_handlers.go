package server

import (
	"github.com/RubenLpc/BucovinaStay-backend/internal/featureflags"
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// featureFlagsResponse is the admin view of FEATURE_FLAGS.
type featureFlagsResponse struct {
	Subject   uint                     `json:"subject"`
	Raw       map[string]string        `json:"raw"`
	Evaluated []featureflags.FlagState `json:"evaluated"`
}

// GetFeatureFlags handles GET /api/admin/feature-flags
// @Summary Feature flag values and their evaluation
// @Description Percentage rollouts are evaluated for the subject user, the calling admin by default.
// @Tags admin
// @Produce json
// @Param subject query int false "User ID to evaluate rollouts for"
// @Success 200 {object} featureFlagsResponse
// @Failure 400 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /admin/feature-flags [get]
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	subject := currentActor(c).UserID
	if c.Query("subject") != "" {
		id := c.QueryInt("subject", 0)
		if id <= 0 {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("subject must be a positive user ID"))
		}
		subject = uint(id)
	}

	return c.JSON(featureFlagsResponse{
		Subject:   subject,
		Raw:       s.featureFlags.Raw(),
		Evaluated: s.featureFlags.Snapshot(subject),
	})
}
