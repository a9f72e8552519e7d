package models

import "time"

// Favorite marks a listing saved by a user. One per (user, listing).
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorites_user_listing" json:"user_id"`
	ListingID uint      `gorm:"not null;uniqueIndex:idx_favorites_user_listing;index" json:"listing_id"`
	CreatedAt time.Time `json:"created_at"`
}
