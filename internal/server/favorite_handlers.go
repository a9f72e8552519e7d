package server

import (
	"github.com/gofiber/fiber/v2"
)

// favoritesResponse lists the saved listing IDs, newest first.
type favoritesResponse struct {
	Items []uint `json:"items"`
}

// GetMyFavorites handles GET /api/favorites/me
// @Summary IDs of the listings the caller saved
// @Tags favorites
// @Produce json
// @Success 200 {object} favoritesResponse
// @Security BearerAuth
// @Router /favorites/me [get]
func (s *Server) GetMyFavorites(c *fiber.Ctx) error {
	ids, err := s.favorites.Mine(c.UserContext(), currentActor(c).UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(favoritesResponse{Items: ids})
}

// AddFavorite handles POST /api/favorites/:listingId
// @Summary Save a live listing
// @Description Saving the same listing twice is a no-op.
// @Tags favorites
// @Param listingId path int true "Listing ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /favorites/{listingId} [post]
func (s *Server) AddFavorite(c *fiber.Ctx) error {
	id, err := s.parseID(c, "listingId")
	if err != nil {
		return nil
	}
	if err := s.favorites.Add(c.UserContext(), currentActor(c).UserID, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveFavorite handles DELETE /api/favorites/:listingId
func (s *Server) RemoveFavorite(c *fiber.Ctx) error {
	id, err := s.parseID(c, "listingId")
	if err != nil {
		return nil
	}
	if err := s.favorites.Remove(c.UserContext(), currentActor(c).UserID, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
