package models

import (
	"time"

	"gorm.io/datatypes"
)

// ResponseTimeBucket is a coarse self-declared response time.
type ResponseTimeBucket string

const (
	ResponseWithinHour ResponseTimeBucket = "within_hour"
	ResponseWithinDay  ResponseTimeBucket = "within_day"
	ResponseFewDays    ResponseTimeBucket = "few_days"
	ResponseUnknown    ResponseTimeBucket = "unknown"
)

// Valid reports whether b is a known bucket.
func (b ResponseTimeBucket) Valid() bool {
	switch b {
	case ResponseWithinHour, ResponseWithinDay, ResponseFewDays, ResponseUnknown:
		return true
	}
	return false
}

// DefaultHostDisplayName is used when the user has no usable name.
const DefaultHostDisplayName = "Gazdă"

// SuperHost thresholds.
const (
	SuperHostMinRating  = 4.8
	SuperHostMinReviews = 20
)

// HostStats are aggregated over every listing of the host. Never client-writable.
type HostStats struct {
	ReviewsCount int      `gorm:"column:stats_reviews_count;not null;default:0" json:"reviews_count"`
	RatingAvg    *float64 `gorm:"column:stats_rating_avg" json:"rating_avg"`
}

// HostProfile is the 1:1 public face of a host user, created lazily.
type HostProfile struct {
	ID                 uint                        `gorm:"primaryKey" json:"id"`
	UserID             uint                        `gorm:"uniqueIndex;not null" json:"user_id"`
	DisplayName        string                      `gorm:"size:60;not null" json:"display_name"`
	AvatarURL          string                      `gorm:"size:500" json:"avatar_url"`
	Bio                string                      `gorm:"size:1200" json:"bio"`
	Verified           bool                        `gorm:"not null;default:false" json:"verified"`
	IsSuperHost        bool                        `gorm:"not null;default:false" json:"is_superhost"`
	HostingSince       time.Time                   `json:"hosting_since"`
	ResponseRate       int                         `gorm:"not null;default:0" json:"response_rate"`
	ResponseTimeBucket ResponseTimeBucket          `gorm:"size:16;not null;default:unknown" json:"response_time_bucket"`
	Languages          datatypes.JSONSlice[string] `json:"languages"`
	Stats              HostStats                   `gorm:"embedded" json:"stats"`
	CreatedAt          time.Time                   `json:"created_at"`
	UpdatedAt          time.Time                   `json:"updated_at"`
}

// PublicHostProfile is the shape served to guests.
type PublicHostProfile struct {
	UserID             uint               `json:"user_id"`
	DisplayName        string             `json:"display_name"`
	AvatarURL          string             `json:"avatar_url"`
	Bio                string             `json:"bio"`
	Verified           bool               `json:"verified"`
	IsSuperHost        bool               `json:"is_superhost"`
	HostingSince       time.Time          `json:"hosting_since"`
	MonthsHosting      int                `json:"months_hosting"`
	ResponseRate       int                `json:"response_rate"`
	ResponseTimeBucket ResponseTimeBucket `json:"response_time_bucket"`
	Languages          []string           `json:"languages"`
	Stats              HostStats          `json:"stats"`
}

// Public maps the profile to its guest-facing view as of now.
func (p *HostProfile) Public(now time.Time) PublicHostProfile {
	langs := []string(p.Languages)
	if langs == nil {
		langs = []string{}
	}
	return PublicHostProfile{
		UserID:             p.UserID,
		DisplayName:        p.DisplayName,
		AvatarURL:          p.AvatarURL,
		Bio:                p.Bio,
		Verified:           p.Verified,
		IsSuperHost:        p.IsSuperHost,
		HostingSince:       p.HostingSince,
		MonthsHosting:      MonthsBetween(p.HostingSince, now),
		ResponseRate:       p.ResponseRate,
		ResponseTimeBucket: p.ResponseTimeBucket,
		Languages:          langs,
		Stats:              p.Stats,
	}
}

// MonthsBetween counts whole calendar months from since to now, never negative.
func MonthsBetween(since, now time.Time) int {
	if since.IsZero() || !now.After(since) {
		return 0
	}
	months := (now.Year()-since.Year())*12 + int(now.Month()) - int(since.Month())
	if now.Day() < since.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}
