package service

import (
	"context"
	"strings"
	"time"
	_ "time/tzdata" // timezone names are validated without relying on the host's zoneinfo

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/repository"
)

var hostCurrencies = map[string]struct{}{"RON": {}, "EUR": {}, "USD": {}}

// NotificationsPatch updates e-mail opt-ins. Nil fields are left unchanged.
type NotificationsPatch struct {
	Messages      *bool `json:"messages"`
	ListingStatus *bool `json:"listing_status"`
	WeeklyReport  *bool `json:"weekly_report"`
	Marketing     *bool `json:"marketing"`
}

type PreferencesPatch struct {
	Currency     *string `json:"currency"`
	Locale       *string `json:"locale"`
	Timezone     *string `json:"timezone"`
	ReduceMotion *bool   `json:"reduce_motion"`
}

// HostSettingsPatch is the body of PATCH /host/settings.
type HostSettingsPatch struct {
	Notifications *NotificationsPatch `json:"notifications"`
	Preferences   *PreferencesPatch   `json:"preferences"`
}

type HostSettingsService struct {
	repo repository.HostSettingsRepository
}

func NewHostSettingsService(repo repository.HostSettingsRepository) *HostSettingsService {
	return &HostSettingsService{repo: repo}
}

// Get returns userID's settings, creating the defaults on first access.
func (s *HostSettingsService) Get(ctx context.Context, userID uint) (*models.HostSettings, error) {
	return s.repo.Ensure(ctx, userID)
}

// Patch merges patch into userID's settings. Nothing is written when a field is invalid.
func (s *HostSettingsService) Patch(ctx context.Context, userID uint, patch HostSettingsPatch) (*models.HostSettings, error) {
	current, err := s.repo.Ensure(ctx, userID)
	if err != nil {
		return nil, err
	}

	if n := patch.Notifications; n != nil {
		setBool(&current.Notifications.Messages, n.Messages)
		setBool(&current.Notifications.ListingStatus, n.ListingStatus)
		setBool(&current.Notifications.WeeklyReport, n.WeeklyReport)
		setBool(&current.Notifications.Marketing, n.Marketing)
	}
	if p := patch.Preferences; p != nil {
		if p.Currency != nil {
			c := strings.ToUpper(strings.TrimSpace(*p.Currency))
			if _, ok := hostCurrencies[c]; !ok {
				return nil, models.NewValidationError("currency must be RON, EUR or USD")
			}
			current.Preferences.Currency = c
		}
		if p.Locale != nil {
			l := strings.TrimSpace(*p.Locale)
			if l == "" || len(l) > 16 {
				return nil, models.NewValidationError("locale must be 1 to 16 characters")
			}
			current.Preferences.Locale = l
		}
		if p.Timezone != nil {
			tz := strings.TrimSpace(*p.Timezone)
			if tz == "" || len(tz) > 64 {
				return nil, models.NewValidationError("timezone is required")
			}
			if _, err := time.LoadLocation(tz); err != nil {
				return nil, models.NewValidationError("unknown timezone")
			}
			current.Preferences.Timezone = tz
		}
		setBool(&current.Preferences.ReduceMotion, p.ReduceMotion)
	}

	if err := s.repo.Save(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
