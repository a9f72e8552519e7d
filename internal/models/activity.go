package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityType names a host-relevant occurrence.
type ActivityType string

const (
	ActivityPropertyCreated   ActivityType = "property_created"
	ActivityPropertyUpdated   ActivityType = "property_updated"
	ActivityPropertySubmitted ActivityType = "property_submitted"
	ActivityPropertyPublished ActivityType = "property_published"
	ActivityPropertyPaused    ActivityType = "property_paused"
	ActivityPropertyResumed   ActivityType = "property_resumed"
	ActivityPropertyRejected  ActivityType = "property_rejected"
	ActivityPropertyDeleted   ActivityType = "property_deleted"

	ActivityMessageReceived ActivityType = "message_received"
	ActivityMessageSent     ActivityType = "message_sent"

	ActivityImpression    ActivityType = "impression"
	ActivityClickPhone    ActivityType = "click_contact_phone"
	ActivityClickWhatsApp ActivityType = "click_contact_whatsapp"
	ActivityClickSMS      ActivityType = "click_contact_sms"
	ActivityClickShare    ActivityType = "click_share"
	ActivityClickGallery  ActivityType = "click_gallery"
)

var activityTypes = map[ActivityType]struct{}{
	ActivityPropertyCreated: {}, ActivityPropertyUpdated: {}, ActivityPropertySubmitted: {},
	ActivityPropertyPublished: {}, ActivityPropertyPaused: {}, ActivityPropertyResumed: {},
	ActivityPropertyRejected: {}, ActivityPropertyDeleted: {},
	ActivityMessageReceived: {}, ActivityMessageSent: {},
	ActivityImpression: {}, ActivityClickPhone: {}, ActivityClickWhatsApp: {},
	ActivityClickSMS: {}, ActivityClickShare: {}, ActivityClickGallery: {},
}

// Valid reports whether t is a known activity type.
func (t ActivityType) Valid() bool {
	_, ok := activityTypes[t]
	return ok
}

// GuestTrackable reports whether guests may record t from the public site.
func (t ActivityType) GuestTrackable() bool {
	return t == ActivityImpression || strings.HasPrefix(string(t), "click_")
}

// ActivityActor is who caused the event.
type ActivityActor string

const (
	ActorHost   ActivityActor = "host"
	ActorGuest  ActivityActor = "guest"
	ActorSystem ActivityActor = "system"
)

const MaxActivityTitleLen = 140

// HostActivityEvent is an append-only dashboard record. Never authoritative for derived state.
type HostActivityEvent struct {
	ID            uint              `gorm:"primaryKey" json:"-"`
	EventID       uuid.UUID         `gorm:"type:uuid;uniqueIndex;not null" json:"id"`
	HostID        uint              `gorm:"not null;index:idx_activity_host_created,priority:1" json:"host_id"`
	Type          ActivityType      `gorm:"size:40;not null;index" json:"type"`
	Actor         ActivityActor     `gorm:"size:16;not null" json:"actor"`
	ListingID     *uint             `gorm:"index" json:"listing_id,omitempty"`
	PropertyTitle string            `gorm:"size:140" json:"property_title"`
	Meta          datatypes.JSONMap `json:"meta"`
	CreatedAt     time.Time         `gorm:"index:idx_activity_host_created,priority:2" json:"created_at"`
}

// BeforeCreate assigns the public event id.
func (e *HostActivityEvent) BeforeCreate(_ *gorm.DB) error {
	if e.EventID == uuid.Nil {
		e.EventID = uuid.New()
	}
	return nil
}

// CleanTitle collapses whitespace and caps a cached property title.
func CleanTitle(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) > MaxActivityTitleLen {
		return string(r[:MaxActivityTitleLen])
	}
	return s
}

// ActivityKPI is the per-category rollup shown above the activity feed.
type ActivityKPI struct {
	Impressions     int64 `json:"impressions"`
	Clicks          int64 `json:"clicks"`
	Messages        int64 `json:"messages"`
	PropertyActions int64 `json:"property_actions"`
}

// Add counts n events of type t into the matching bucket.
func (k *ActivityKPI) Add(t ActivityType, n int64) {
	s := string(t)
	switch {
	case t == ActivityImpression:
		k.Impressions += n
	case strings.HasPrefix(s, "click_"):
		k.Clicks += n
	case strings.HasPrefix(s, "message_"):
		k.Messages += n
	case strings.HasPrefix(s, "property_"):
		k.PropertyActions += n
	}
}
