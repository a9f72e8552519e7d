package models

import "time"

// MessageStatus is the read state of a host message.
type MessageStatus string

const (
	MessageNew  MessageStatus = "new"
	MessageRead MessageStatus = "read"
)

// Valid reports whether s is new or read.
func (s MessageStatus) Valid() bool {
	return s == MessageNew || s == MessageRead
}

const (
	MinMessageLen    = 10
	MaxMessageLen    = 1200
	MaxGuestNameLen  = 80
	MaxGuestEmailLen = 120
	MaxGuestPhoneLen = 24
)

// HostMessage is an enquiry sent to a host about one of their listings.
// FromUserID is nil for anonymous senders.
type HostMessage struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	HostID     uint          `gorm:"not null;index:idx_host_messages_inbox,priority:1" json:"host_id"`
	ListingID  uint          `gorm:"not null;index" json:"listing_id"`
	Listing    *Listing      `gorm:"foreignKey:ListingID" json:"listing,omitempty"`
	FromUserID *uint         `gorm:"index" json:"from_user_id,omitempty"`
	GuestName  string        `gorm:"size:80" json:"guest_name"`
	GuestEmail string        `gorm:"size:120" json:"guest_email"`
	GuestPhone string        `gorm:"size:24" json:"guest_phone,omitempty"`
	Message    string        `gorm:"size:1200;not null" json:"message"`
	Status     MessageStatus `gorm:"size:8;not null;default:new;index:idx_host_messages_inbox,priority:2" json:"status"`
	CreatedAt  time.Time     `gorm:"index:idx_host_messages_inbox,priority:3" json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}
