package server

import (
	"context"
	"errors"
	"log/slog"

	"github.com/RubenLpc/BucovinaStay-backend/internal/lifecycle"
	"github.com/RubenLpc/BucovinaStay-backend/internal/middleware"
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

const defaultMaintenanceMessage = "BucovinaStay is undergoing maintenance. Please try again later."

// authenticate verifies token and loads the user it names. The database role
// is authoritative; the role claim is only informational.
func (s *Server) authenticate(ctx context.Context, token string) (*models.User, error) {
	identity, err := s.verifier.Verify(token)
	if err != nil {
		if errors.Is(err, middleware.ErrMissingToken) {
			return nil, models.NewUnauthorizedError("Authorization required")
		}
		return nil, models.NewUnauthorizedError("Invalid or expired token")
	}

	user, err := s.users.GetUserByID(ctx, identity.UserID)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return nil, models.NewUnauthorizedError("Unknown user")
		}
		return nil, err
	}
	if user.Disabled {
		return nil, models.NewForbiddenError("Account disabled")
	}
	return user, nil
}

func setIdentity(c *fiber.Ctx, user *models.User) {
	c.Locals("userID", user.ID)
	c.Locals("userRole", user.Role)
	c.SetUserContext(middleware.WithUserID(c.UserContext(), user.ID))
}

// AuthRequired returns the authentication middleware. Browsers cannot set headers
// on a websocket handshake, so upgrade requests may pass the token as ?token=.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
		if err != nil && websocket.IsWebSocketUpgrade(c) {
			token = c.Query("token")
		}

		user, err := s.authenticate(c.UserContext(), token)
		if err != nil {
			return respondError(c, err)
		}
		setIdentity(c, user)
		return c.Next()
	}
}

// optionalUser resolves the caller on public routes. Any failure means anonymous.
func (s *Server) optionalUser(c *fiber.Ctx) (*models.User, bool) {
	token, err := middleware.BearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return nil, false
	}
	user, err := s.authenticate(c.UserContext(), token)
	if err != nil {
		return nil, false
	}
	return user, true
}

func (s *Server) optionalActor(c *fiber.Ctx) lifecycle.Actor {
	user, ok := s.optionalUser(c)
	if !ok {
		return lifecycle.Actor{}
	}
	return lifecycle.Actor{UserID: user.ID, Admin: user.IsAdmin()}
}

// HostRequired admits hosts and admins. Must run after AuthRequired.
func (s *Server) HostRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("userRole").(models.Role)
		if role != models.RoleHost && role != models.RoleAdmin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Host account required"))
		}
		return c.Next()
	}
}

// AdminRequired returns middleware that rejects non-admin users with 403.
// Must be placed after AuthRequired so that userRole is available in locals.
func (s *Server) AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("userRole").(models.Role)
		if role != models.RoleAdmin {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Admin access required"))
		}
		return c.Next()
	}
}

// MaintenanceGuard answers 503 to non-admin writes while maintenance mode is on.
// Reads always pass. A settings lookup failure lets the request through.
func (s *Server) MaintenanceGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		switch c.Method() {
		case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
			return c.Next()
		}

		settings, err := s.settings.Current(c.UserContext(), s.config.PolicyMaxStaleness())
		if err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "maintenance check skipped",
				slog.String("error", err.Error()))
			return c.Next()
		}
		if !settings.Branding.MaintenanceMode {
			return c.Next()
		}
		if user, ok := s.optionalUser(c); ok && user.IsAdmin() {
			return c.Next()
		}

		msg := settings.Branding.MaintenanceMessage
		if msg == "" {
			msg = defaultMaintenanceMessage
		}
		return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
			Error: msg,
			Code:  "MAINTENANCE",
		})
	}
}
