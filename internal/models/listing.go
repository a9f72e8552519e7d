package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ListingStatus is the moderation state of a listing.
type ListingStatus string

const (
	StatusDraft    ListingStatus = "draft"
	StatusPending  ListingStatus = "pending"
	StatusLive     ListingStatus = "live"
	StatusPaused   ListingStatus = "paused"
	StatusRejected ListingStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s ListingStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPending, StatusLive, StatusPaused, StatusRejected:
		return true
	}
	return false
}

// ListingType enumerates accommodation kinds.
type ListingType string

const (
	TypePensiune   ListingType = "pensiune"
	TypeCabana     ListingType = "cabana"
	TypeHotel      ListingType = "hotel"
	TypeApartament ListingType = "apartament"
	TypeVila       ListingType = "vila"
	TypeTinyHouse  ListingType = "tiny_house"
)

var listingTypes = map[ListingType]struct{}{
	TypePensiune: {}, TypeCabana: {}, TypeHotel: {}, TypeApartament: {}, TypeVila: {}, TypeTinyHouse: {},
}

// Valid reports whether t is a known listing type.
func (t ListingType) Valid() bool {
	_, ok := listingTypes[t]
	return ok
}

var facilities = map[string]struct{}{
	"wifi": {}, "parking": {}, "breakfast": {}, "petFriendly": {}, "spa": {},
	"kitchen": {}, "ac": {}, "sauna": {}, "fireplace": {},
}

// ValidFacility reports whether f is an accepted facility key.
func ValidFacility(f string) bool {
	_, ok := facilities[f]
	return ok
}

const (
	MaxTitleLen           = 90
	MaxSubtitleLen        = 60
	MaxDescriptionLen     = 4000
	MaxRejectionReasonLen = 300
)

// Listing is a rentable property owned by a host.
type Listing struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	HostID      uint        `gorm:"not null;index" json:"host_id"`
	Host        *User       `gorm:"foreignKey:HostID" json:"host,omitempty"`
	Title       string      `gorm:"size:90;not null" json:"title"`
	Subtitle    string      `gorm:"size:60" json:"subtitle"`
	Description string      `gorm:"type:text" json:"description"`
	Type        ListingType `gorm:"size:24;not null" json:"type"`
	City        string      `gorm:"size:80;not null;index" json:"city"`
	Locality    string      `gorm:"size:80" json:"locality"`
	County      string      `gorm:"size:80;default:Suceava" json:"county"`
	Region      string      `gorm:"size:80;default:Bucovina" json:"region"`
	Price       int64       `gorm:"column:price_per_night;not null" json:"price_per_night"`
	Currency    string      `gorm:"size:3;not null;default:RON" json:"currency"`
	Capacity    int         `gorm:"not null;default:1" json:"capacity"`

	Facilities datatypes.JSONSlice[string] `json:"facilities"`

	Status          ListingStatus `gorm:"size:16;not null;default:draft;index" json:"status"`
	SubmittedAt     *time.Time    `json:"submitted_at"`
	ApprovedAt      *time.Time    `json:"approved_at"`
	RejectedAt      *time.Time    `json:"rejected_at"`
	PausedAt        *time.Time    `json:"paused_at"`
	RejectionReason string        `gorm:"size:300" json:"rejection_reason,omitempty"`

	RatingAvg    float64 `gorm:"not null;default:0" json:"rating_avg"`
	ReviewsCount int     `gorm:"not null;default:0" json:"reviews_count"`

	EmbeddingHash string `gorm:"size:16" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsOwnedBy reports whether userID is the listing's host.
func (l *Listing) IsOwnedBy(userID uint) bool {
	return l != nil && l.HostID == userID
}
