package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/RubenLpc/BucovinaStay-backend/internal/cache"
	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/repository"
	"github.com/RubenLpc/BucovinaStay-backend/internal/validation"

	"gorm.io/datatypes"
)

const (
	minDisplayNameLen = 2
	maxDisplayNameLen = 60
	maxBioLen         = 1200
	maxLanguages      = 10
)

// HostProfilePatch is the body of PATCH /host/profile. Stats and SuperHost are not writable.
type HostProfilePatch struct {
	DisplayName        *string                    `json:"display_name"`
	Bio                *string                    `json:"bio"`
	AvatarURL          *string                    `json:"avatar_url"`
	Languages          *[]string                  `json:"languages"`
	ResponseRate       *int                       `json:"response_rate"`
	ResponseTimeBucket *models.ResponseTimeBucket `json:"response_time_bucket"`
}

type HostProfileService struct {
	repo  repository.HostProfileRepository
	users repository.UserRepository
	now   func() time.Time
}

func NewHostProfileService(repo repository.HostProfileRepository, users repository.UserRepository) *HostProfileService {
	return &HostProfileService{repo: repo, users: users, now: time.Now}
}

// Ensure returns the host's profile, creating it on first use.
func (s *HostProfileService) Ensure(ctx context.Context, userID uint) (*models.HostProfile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !models.HasCode(err, models.CodeNotFound) {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.Ensure(ctx, &models.HostProfile{
		UserID:             userID,
		DisplayName:        displayNameFor(user.Name),
		HostingSince:       s.now().UTC(),
		ResponseTimeBucket: models.ResponseUnknown,
		Languages:          datatypes.JSONSlice[string]{},
	})
}

func displayNameFor(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if utf8.RuneCountInString(name) < minDisplayNameLen {
		return models.DefaultHostDisplayName
	}
	if r := []rune(name); len(r) > maxDisplayNameLen {
		return string(r[:maxDisplayNameLen])
	}
	return name
}

// UpdateMine validates and applies patch to the caller's own profile.
func (s *HostProfileService) UpdateMine(ctx context.Context, userID uint, patch HostProfilePatch) (*models.HostProfile, error) {
	fields, err := patch.fields()
	if err != nil {
		return nil, err
	}
	if _, err := s.Ensure(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, userID, fields); err != nil {
		return nil, err
	}
	cache.InvalidateHostProfile(ctx, userID)
	return s.repo.GetByUserID(ctx, userID)
}

func (p HostProfilePatch) fields() (map[string]any, error) {
	fields := map[string]any{}
	if p.DisplayName != nil {
		name := strings.Join(strings.Fields(*p.DisplayName), " ")
		if n := utf8.RuneCountInString(name); n < minDisplayNameLen || n > maxDisplayNameLen {
			return nil, models.NewValidationError("display_name must be between 2 and 60 characters")
		}
		fields["display_name"] = name
	}
	if p.Bio != nil {
		bio := strings.TrimSpace(*p.Bio)
		if utf8.RuneCountInString(bio) > maxBioLen {
			return nil, models.NewValidationError("bio too long (max 1200 characters)")
		}
		fields["bio"] = bio
	}
	if p.AvatarURL != nil {
		avatar := strings.TrimSpace(*p.AvatarURL)
		if err := validation.ValidateImageURL(avatar); err != nil {
			return nil, models.NewValidationError("avatar_url " + err.Error())
		}
		fields["avatar_url"] = avatar
	}
	if p.Languages != nil {
		langs := make([]string, 0, len(*p.Languages))
		seen := map[string]bool{}
		for _, l := range *p.Languages {
			l = strings.ToLower(strings.TrimSpace(l))
			if l == "" || seen[l] {
				continue
			}
			if err := validation.ValidateLanguageCode(l); err != nil {
				return nil, models.NewValidationError(err.Error())
			}
			seen[l] = true
			langs = append(langs, l)
		}
		if len(langs) > maxLanguages {
			return nil, models.NewValidationError("at most 10 languages")
		}
		fields["languages"] = datatypes.JSONSlice[string](langs)
	}
	if p.ResponseRate != nil {
		if *p.ResponseRate < 0 || *p.ResponseRate > 100 {
			return nil, models.NewValidationError("response_rate must be between 0 and 100")
		}
		fields["response_rate"] = *p.ResponseRate
	}
	if p.ResponseTimeBucket != nil {
		if !p.ResponseTimeBucket.Valid() {
			return nil, models.NewValidationError("invalid response_time_bucket")
		}
		fields["response_time_bucket"] = *p.ResponseTimeBucket
	}
	return fields, nil
}

// Public returns the guest-facing profile through the host profile cache.
func (s *HostProfileService) Public(ctx context.Context, userID uint) (*models.PublicHostProfile, error) {
	var p models.HostProfile
	err := cache.Aside(ctx, cache.HostProfileKey(userID), &p, cache.HostProfileTTL, func() error {
		found, err := s.repo.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		p = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	pub := p.Public(s.now())
	return &pub, nil
}
