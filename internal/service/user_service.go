package service

import (
	"context"
	"log/slog"

	"github.com/RubenLpc/BucovinaStay-backend/internal/models"
	"github.com/RubenLpc/BucovinaStay-backend/internal/repository"
)

// OperatorID is the actor id used by operator tooling that acts outside any user account.
const OperatorID uint = 0

type UserService struct {
	userRepo repository.UserRepository
	hosts    *HostProfileService
}

// UserPatch is the body of PATCH /admin/users/:id. Nil fields are left unchanged.
type UserPatch struct {
	Role     *models.Role `json:"role"`
	Disabled *bool        `json:"disabled"`
}

func NewUserService(userRepo repository.UserRepository, hosts *HostProfileService) *UserService {
	return &UserService{userRepo: userRepo, hosts: hosts}
}

func (s *UserService) ListUsers(ctx context.Context, role models.Role, limit, offset int) ([]models.User, int64, error) {
	if role != "" && !role.Valid() {
		return nil, 0, models.NewValidationError("unknown role")
	}
	return s.userRepo.List(ctx, role, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// IsAdmin reports whether userID is an active admin.
func (s *UserService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.IsAdmin(), nil
}

// PatchUser changes a user's role or disabled flag on behalf of actorID.
// Admins cannot disable themselves or change their own role, and the last
// active admin can be neither demoted nor disabled.
func (s *UserService) PatchUser(ctx context.Context, actorID, targetID uint, patch UserPatch) (*models.User, error) {
	fields := map[string]any{}
	if patch.Role != nil {
		if !patch.Role.Valid() {
			return nil, models.NewValidationError("unknown role")
		}
		fields["role"] = *patch.Role
	}
	if patch.Disabled != nil {
		fields["disabled"] = *patch.Disabled
	}
	if len(fields) == 0 {
		return nil, models.NewValidationError("nothing to update")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if actorID == targetID {
		if patch.Disabled != nil && *patch.Disabled {
			return nil, models.NewForbiddenError("you cannot disable your own account")
		}
		if patch.Role != nil && *patch.Role != target.Role {
			return nil, models.NewForbiddenError("you cannot change your own role")
		}
	}

	losesAdmin := target.IsAdmin() &&
		((patch.Role != nil && *patch.Role != models.RoleAdmin) || (patch.Disabled != nil && *patch.Disabled))
	if losesAdmin {
		ok, err := s.userRepo.UpdateKeepingAdmin(ctx, targetID, fields)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, models.NewForbiddenError("cannot remove the last active admin")
		}
	} else if err := s.userRepo.UpdateFields(ctx, targetID, fields); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user updated by admin", "actor_id", actorID, "target_id", targetID, "fields", len(fields))

	if patch.Role != nil && *patch.Role == models.RoleHost && s.hosts != nil {
		if _, err := s.hosts.Ensure(ctx, targetID); err != nil {
			slog.WarnContext(ctx, "host profile creation failed", "user_id", targetID, "err", err)
		}
	}
	return s.userRepo.GetByID(ctx, targetID)
}

// BecomeHost upgrades a guest to host and creates the host profile. Hosts and admins are unchanged.
func (s *UserService) BecomeHost(ctx context.Context, userID uint) (*models.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Disabled {
		return nil, models.NewForbiddenError("account is disabled")
	}
	if u.Role == models.RoleGuest {
		if err := s.userRepo.UpdateFields(ctx, userID, map[string]any{"role": models.RoleHost}); err != nil {
			return nil, err
		}
		u.Role = models.RoleHost
	}
	if _, err := s.hosts.Ensure(ctx, userID); err != nil {
		return nil, err
	}
	return u, nil
}
