package models

import "time"

// AdminSettingsID is the primary key of the singleton settings row.
const AdminSettingsID uint = 1

// ModerationSettings gate admin-side listing transitions.
type ModerationSettings struct {
	RequireSubmitToPublish   bool `gorm:"column:require_submit_to_publish;not null" json:"require_submit_to_publish"`
	AllowAdminPause          bool `gorm:"column:allow_admin_pause;not null" json:"allow_admin_pause"`
	AllowAdminReject         bool `gorm:"column:allow_admin_reject;not null" json:"allow_admin_reject"`
	AllowAdminUnpublish      bool `gorm:"column:allow_admin_unpublish;not null" json:"allow_admin_unpublish"`
	MinRejectionReasonLength int  `gorm:"column:min_rejection_reason_length;not null" json:"min_rejection_reason_length"`
}

// LimitSettings bound host inventory.
type LimitSettings struct {
	MaxListingsPerHost  int `gorm:"column:max_listings_per_host;not null" json:"max_listings_per_host"`
	MaxImagesPerListing int `gorm:"column:max_images_per_listing;not null" json:"max_images_per_listing"`
}

// BrandingSettings are operator-facing site switches.
type BrandingSettings struct {
	SupportEmail       string `gorm:"column:support_email;size:160" json:"support_email"`
	MaintenanceMode    bool   `gorm:"column:maintenance_mode;not null" json:"maintenance_mode"`
	MaintenanceMessage string `gorm:"column:maintenance_message;size:300" json:"maintenance_message"`
}

// AdminSettings is the singleton configuration row.
type AdminSettings struct {
	ID         uint               `gorm:"primaryKey" json:"-"`
	Moderation ModerationSettings `gorm:"embedded" json:"moderation"`
	Limits     LimitSettings      `gorm:"embedded" json:"limits"`
	Branding   BrandingSettings   `gorm:"embedded" json:"branding"`
	UpdatedBy  *uint              `json:"updated_by"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

// DefaultAdminSettings returns the settings used before an admin saves any.
func DefaultAdminSettings() AdminSettings {
	return AdminSettings{
		ID: AdminSettingsID,
		Moderation: ModerationSettings{
			RequireSubmitToPublish:   true,
			AllowAdminPause:          false,
			AllowAdminReject:         true,
			AllowAdminUnpublish:      true,
			MinRejectionReasonLength: 10,
		},
		Limits: LimitSettings{
			MaxListingsPerHost:  0,
			MaxImagesPerListing: 20,
		},
	}
}
