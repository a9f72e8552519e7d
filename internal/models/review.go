package models

import "time"

// ReviewStatus is the moderation visibility of a review.
type ReviewStatus string

const (
	ReviewVisible ReviewStatus = "visible"
	ReviewHidden  ReviewStatus = "hidden"
)

// Valid reports whether s is visible or hidden.
func (s ReviewStatus) Valid() bool {
	return s == ReviewVisible || s == ReviewHidden
}

const MaxReviewCommentLen = 1200

// Review is a guest's rating of a listing. One per (listing, user).
type Review struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	ListingID uint         `gorm:"not null;uniqueIndex:idx_reviews_listing_user;index" json:"listing_id"`
	UserID    uint         `gorm:"not null;uniqueIndex:idx_reviews_listing_user" json:"user_id"`
	User      *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Listing   *Listing     `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	Rating    int          `gorm:"not null" json:"rating"`
	Comment   string       `gorm:"size:1200;not null" json:"comment"`
	Status    ReviewStatus `gorm:"size:16;not null;default:visible;index" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
