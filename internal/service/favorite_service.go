package service

import (
	"context"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/repository"
)

// FavoriteService keeps each user's saved listings.
type FavoriteService struct {
	favorites repository.FavoriteRepository
	listings  repository.ListingRepository
}

func NewFavoriteService(favorites repository.FavoriteRepository, listings repository.ListingRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites, listings: listings}
}

// Add saves a live listing. Saving it again is a no-op.
func (s *FavoriteService) Add(ctx context.Context, userID, listingID uint) error {
	l, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		return err
	}
	if l.Status != models.StatusLive {
		return models.NewNotFoundError("Listing", listingID)
	}
	return s.favorites.Add(ctx, userID, listingID)
}

// Remove forgets a saved listing. Removing one that was never saved is a no-op.
func (s *FavoriteService) Remove(ctx context.Context, userID, listingID uint) error {
	return s.favorites.Remove(ctx, userID, listingID)
}

// Mine returns the IDs of userID's saved listings, most recent first.
func (s *FavoriteService) Mine(ctx context.Context, userID uint) ([]uint, error) {
	return s.favorites.ListingIDs(ctx, userID)
}
