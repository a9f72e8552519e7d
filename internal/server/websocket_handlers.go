package server

import (
	"log/slog"

	"github.com/RubenLpc/BucovinaStay-backend/internal/featureflags"
	"github.com/RubenLpc/BucovinaStay-backend/internal/middleware"
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ActivityWebSocketHandler serves GET /api/ws/activity, the live feed of the
// caller's host activity. Events arrive through Redis pub/sub via the hub.
func (s *Server) ActivityWebSocketHandler() fiber.Handler {
	upgrade := websocket.New(func(conn *websocket.Conn) {
		hostID, ok := conn.Locals("userID").(uint)
		if !ok || hostID == 0 {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			_ = conn.Close()
			return
		}

		client, err := s.hub.Register(hostID, conn)
		if err != nil {
			middleware.Logger.Warn("activity socket rejected",
				slog.Uint64("host_id", uint64(hostID)), slog.String("error", err.Error()))
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		client.Ready()
		go client.WritePump()
		client.ReadPump()
	})

	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("userID").(uint)
		if !s.featureFlags.Enabled(featureflags.ActivityWebSocket, userID) {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Feature", featureflags.ActivityWebSocket))
		}
		if s.hub == nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse{
				Error: "live activity feed unavailable",
			})
		}
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return upgrade(c)
	}
}
