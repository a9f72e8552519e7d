package models

import "time"

// HostNotifications are the e-mail categories a host opted into.
type HostNotifications struct {
	Messages      bool `gorm:"column:messages;not null" json:"messages"`
	ListingStatus bool `gorm:"column:listing_status;not null" json:"listing_status"`
	WeeklyReport  bool `gorm:"column:weekly_report;not null" json:"weekly_report"`
	Marketing     bool `gorm:"column:marketing;not null" json:"marketing"`
}

// HostPreferences are display preferences of the host dashboard.
type HostPreferences struct {
	Currency     string `gorm:"column:currency;size:3;not null" json:"currency"`
	Locale       string `gorm:"column:locale;size:16;not null" json:"locale"`
	Timezone     string `gorm:"column:timezone;size:64;not null" json:"timezone"`
	ReduceMotion bool   `gorm:"column:reduce_motion;not null" json:"reduce_motion"`
}

// HostSettings is the per-host settings row, created on first access.
type HostSettings struct {
	ID            uint              `gorm:"primaryKey" json:"-"`
	UserID        uint              `gorm:"not null;uniqueIndex:idx_host_settings_user_id" json:"user_id"`
	Notifications HostNotifications `gorm:"embedded;embeddedPrefix:notify_" json:"notifications"`
	Preferences   HostPreferences   `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// DefaultHostSettings returns the settings a host starts with.
func DefaultHostSettings(userID uint) HostSettings {
	return HostSettings{
		UserID: userID,
		Notifications: HostNotifications{
			Messages:      true,
			ListingStatus: true,
		},
		Preferences: HostPreferences{
			Currency: "RON",
			Locale:   "ro-RO",
			Timezone: "Europe/Bucharest",
		},
	}
}
