package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/RubenLpc/BucovinaStay-backend/internal/cache"
	"github.com/RubenLpc/BucovinaStay-backend/internal/lifecycle"
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/repository"
)

// DefaultPolicyStaleness bounds how old a cached settings snapshot may be.
const DefaultPolicyStaleness = 10 * time.Second

// PolicyProvider hands out immutable moderation policy snapshots.
type PolicyProvider interface {
	// Snapshot returns a policy no older than maxStaleness. Zero always reads the database.
	Snapshot(ctx context.Context, maxStaleness time.Duration) (lifecycle.Policy, error)
}

// SettingsSource is a PolicyProvider that also exposes the full settings row.
type SettingsSource interface {
	PolicyProvider
	Current(ctx context.Context, maxStaleness time.Duration) (models.AdminSettings, error)
}

// ModerationPatch updates moderation settings. Nil fields are left unchanged.
type ModerationPatch struct {
	RequireSubmitToPublish   *bool `json:"require_submit_to_publish"`
	AllowAdminPause          *bool `json:"allow_admin_pause"`
	AllowAdminReject         *bool `json:"allow_admin_reject"`
	AllowAdminUnpublish      *bool `json:"allow_admin_unpublish"`
	MinRejectionReasonLength *int  `json:"min_rejection_reason_length"`
}

type LimitsPatch struct {
	MaxListingsPerHost  *int `json:"max_listings_per_host"`
	MaxImagesPerListing *int `json:"max_images_per_listing"`
}

type BrandingPatch struct {
	SupportEmail       *string `json:"support_email"`
	MaintenanceMode    *bool   `json:"maintenance_mode"`
	MaintenanceMessage *string `json:"maintenance_message"`
}

// SettingsPatch is the body of PUT /admin/settings.
type SettingsPatch struct {
	Moderation *ModerationPatch `json:"moderation"`
	Limits     *LimitsPatch     `json:"limits"`
	Branding   *BrandingPatch   `json:"branding"`
}

type settingsSnapshot struct {
	Settings  models.AdminSettings `json:"settings"`
	FetchedAt time.Time            `json:"fetched_at"`
}

// SettingsService owns the AdminSettings singleton and its snapshot cache.
// Snapshots live in process memory and in Redis under cache.ModerationPolicyKey.
type SettingsService struct {
	repo repository.SettingsRepository
	now  func() time.Time

	mu    sync.RWMutex
	local *settingsSnapshot
}

func NewSettingsService(repo repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo, now: time.Now}
}

func (s *SettingsService) Get(ctx context.Context) (*models.AdminSettings, error) {
	return s.repo.Get(ctx)
}

// Current returns the settings, served from a cache entry younger than maxStaleness when one exists.
func (s *SettingsService) Current(ctx context.Context, maxStaleness time.Duration) (models.AdminSettings, error) {
	now := s.now()
	if maxStaleness > 0 {
		s.mu.RLock()
		local := s.local
		s.mu.RUnlock()
		if local != nil && now.Sub(local.FetchedAt) < maxStaleness {
			return local.Settings, nil
		}

		var shared settingsSnapshot
		found, err := cache.GetJSON(ctx, cache.ModerationPolicyKey, &shared)
		if err != nil {
			slog.WarnContext(ctx, "settings cache read failed", "err", err)
		}
		if found && now.Sub(shared.FetchedAt) < maxStaleness {
			s.remember(&shared)
			return shared.Settings, nil
		}
	}

	fresh, err := s.repo.Get(ctx)
	if err != nil {
		return models.AdminSettings{}, err
	}
	snap := &settingsSnapshot{Settings: *fresh, FetchedAt: now}
	s.remember(snap)
	if err := cache.SetJSON(ctx, cache.ModerationPolicyKey, snap, cache.SettingsTTL); err != nil {
		slog.WarnContext(ctx, "settings cache write failed", "err", err)
	}
	return *fresh, nil
}

// Snapshot implements PolicyProvider.
func (s *SettingsService) Snapshot(ctx context.Context, maxStaleness time.Duration) (lifecycle.Policy, error) {
	settings, err := s.Current(ctx, maxStaleness)
	if err != nil {
		return lifecycle.Policy{}, err
	}
	return lifecycle.PolicyFrom(settings.Moderation), nil
}

func (s *SettingsService) remember(snap *settingsSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.local == nil || !snap.FetchedAt.Before(s.local.FetchedAt) {
		s.local = snap
	}
}

// Invalidate drops every cached snapshot.
func (s *SettingsService) Invalidate(ctx context.Context) {
	s.mu.Lock()
	s.local = nil
	s.mu.Unlock()
	cache.Invalidate(ctx, cache.ModerationPolicyKey)
}

// Save merges patch into the stored settings, validates the result and persists it.
func (s *SettingsService) Save(ctx context.Context, adminID uint, patch SettingsPatch) (*models.AdminSettings, error) {
	current, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	next := *current
	patch.applyTo(&next)
	if err := validateSettings(&next); err != nil {
		return nil, err
	}
	next.UpdatedBy = &adminID

	if err := s.repo.Save(ctx, &next); err != nil {
		return nil, err
	}
	s.Invalidate(ctx)
	slog.InfoContext(ctx, "admin settings updated", "admin_id", adminID)
	return &next, nil
}

func (p SettingsPatch) applyTo(s *models.AdminSettings) {
	if m := p.Moderation; m != nil {
		setIf(&s.Moderation.RequireSubmitToPublish, m.RequireSubmitToPublish)
		setIf(&s.Moderation.AllowAdminPause, m.AllowAdminPause)
		setIf(&s.Moderation.AllowAdminReject, m.AllowAdminReject)
		setIf(&s.Moderation.AllowAdminUnpublish, m.AllowAdminUnpublish)
		setIf(&s.Moderation.MinRejectionReasonLength, m.MinRejectionReasonLength)
	}
	if l := p.Limits; l != nil {
		setIf(&s.Limits.MaxListingsPerHost, l.MaxListingsPerHost)
		setIf(&s.Limits.MaxImagesPerListing, l.MaxImagesPerListing)
	}
	if b := p.Branding; b != nil {
		if b.SupportEmail != nil {
			s.Branding.SupportEmail = strings.TrimSpace(*b.SupportEmail)
		}
		setIf(&s.Branding.MaintenanceMode, b.MaintenanceMode)
		if b.MaintenanceMessage != nil {
			s.Branding.MaintenanceMessage = strings.TrimSpace(*b.MaintenanceMessage)
		}
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func validateSettings(s *models.AdminSettings) error {
	if n := s.Moderation.MinRejectionReasonLength; n < 0 || n > models.MaxRejectionReasonLen {
		return models.NewValidationError(fmt.Sprintf("min_rejection_reason_length must be between 0 and %d", models.MaxRejectionReasonLen))
	}
	if n := s.Limits.MaxListingsPerHost; n < 0 || n > 100000 {
		return models.NewValidationError("max_listings_per_host must be between 0 and 100000")
	}
	if n := s.Limits.MaxImagesPerListing; n < 1 || n > 200 {
		return models.NewValidationError("max_images_per_listing must be between 1 and 200")
	}
	if e := s.Branding.SupportEmail; e != "" {
		if _, err := mail.ParseAddress(e); err != nil {
			return models.NewValidationError("support_email is not a valid address")
		}
	}
	if len([]rune(s.Branding.MaintenanceMessage)) > 300 {
		return models.NewValidationError("maintenance_message too long (max 300 characters)")
	}
	return nil
}
