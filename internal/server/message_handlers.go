package server

import (
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SendHostMessage handles POST /api/host-messages
// @Summary Contact the host of a live listing
// @Description Anonymous senders must give an email. Signed-in senders are identified by their account.
// @Tags messages
// @Accept json
// @Produce json
// @Param message body service.SendMessageInput true "Message"
// @Success 201 {object} models.HostMessage
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /host-messages [post]
func (s *Server) SendHostMessage(c *fiber.Ctx) error {
	var in service.SendMessageInput
	if err := parseBody(c, &in); err != nil {
		return nil
	}
	sender, _ := s.optionalUser(c)

	msg, err := s.messages.Send(c.UserContext(), sender, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// GetHostInbox handles GET /api/host/messages
// @Summary The host's inbox, newest first
// @Tags messages
// @Produce json
// @Param status query string false "all, new or read"
// @Param page query int false "Page, from 1"
// @Param limit query int false "Page size, at most 50"
// @Success 200 {object} service.InboxPage
// @Security BearerAuth
// @Router /host/messages [get]
func (s *Server) GetHostInbox(c *fiber.Ctx) error {
	page, err := s.messages.Inbox(c.UserContext(), currentActor(c).UserID, service.InboxQuery{
		Status: c.Query("status"),
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", 0),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(page)
}

// GetUnreadMessageCount handles GET /api/host/messages/unread-count
func (s *Server) GetUnreadMessageCount(c *fiber.Ctx) error {
	n, err := s.messages.UnreadCount(c.UserContext(), currentActor(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"count": n})
}

// MarkAllMessagesRead handles PATCH /api/host/messages/read-all
func (s *Server) MarkAllMessagesRead(c *fiber.Ctx) error {
	n, err := s.messages.MarkAllRead(c.UserContext(), currentActor(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"updated": n})
}

// MarkMessageRead handles PATCH /api/host/messages/:id/read
// @Summary Mark one inbox message as read
// @Tags messages
// @Produce json
// @Param id path int true "Message ID"
// @Success 200 {object} models.HostMessage
// @Failure 403 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /host/messages/{id}/read [patch]
func (s *Server) MarkMessageRead(c *fiber.Ctx) error {
	return s.setMessageStatus(c, models.MessageRead)
}

// MarkMessageUnread handles PATCH /api/host/messages/:id/unread
func (s *Server) MarkMessageUnread(c *fiber.Ctx) error {
	return s.setMessageStatus(c, models.MessageNew)
}

func (s *Server) setMessageStatus(c *fiber.Ctx, status models.MessageStatus) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	msg, err := s.messages.SetStatus(c.UserContext(), currentActor(c), id, status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(msg)
}
